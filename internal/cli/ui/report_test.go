package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taxconfig "github.com/weisyn/taxledger/internal/config/taxledger"
	"github.com/weisyn/taxledger/internal/core/infrastructure/clock"
	"github.com/weisyn/taxledger/internal/core/taxledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/ledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/testutil"
	"github.com/weisyn/taxledger/pkg/types"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, "5.00%", Percent(500))
	assert.Equal(t, "0.25%", Percent(25))
	assert.Equal(t, "40.00%", Percent(4000))
	assert.Equal(t, "0.00%", Percent(0))
}

func TestFeeRows(t *testing.T) {
	rows := FeeRows(types.FeeSchedule{
		Buy:  types.FeeRates{Liquidity: 100, Marketing: 400},
		Sell: types.FeeRates{Liquidity: 200, Marketing: 300},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"buy", "1.00%", "4.00%", "5.00%"}, rows[0])
	assert.Equal(t, []string{"sell", "2.00%", "3.00%", "5.00%"}, rows[1])
	assert.Equal(t, []string{"transfer", "0.00%", "0.00%", "0.00%"}, rows[2])
}

func TestReport_Overview(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	authority, supply := testutil.Authority.Hex(), "1000000"
	venueAddr := testutil.Pool.Hex()
	engine, err := taxledger.New(taxconfig.New(&types.UserTaxLedgerConfig{
		Authority:    &authority,
		TotalSupply:  &supply,
		VenueAddress: &venueAddr,
	}), taxledger.Deps{
		Ledger: ledger.NewMemory(),
		Venue:  testutil.NewFakeVenue(testutil.Pool),
		Logger: &testutil.MockLogger{},
		Clock:  clock.NewMockClock(time.Unix(0, 0)),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReport(&buf).Overview(engine, []common.Address{testutil.Authority}))

	out := buf.String()
	assert.Contains(t, out, "Tax Ledger Token")
	assert.Contains(t, out, "1000000")
	assert.Contains(t, out, testutil.Pool.Hex())
	assert.Contains(t, out, "5.00%")
	assert.Contains(t, out, "开启")
}

func TestReport_EmptyTable(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	require.NoError(t, NewReport(&buf).Table([]string{"a"}, nil))
	assert.Contains(t, buf.String(), "(空)")
}
