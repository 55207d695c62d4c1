package governance

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventconfig "github.com/weisyn/taxledger/internal/config/event"
	"github.com/weisyn/taxledger/internal/core/infrastructure/clock"
	eventbus "github.com/weisyn/taxledger/internal/core/infrastructure/event"
	"github.com/weisyn/taxledger/internal/core/taxledger/ledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/state"
	"github.com/weisyn/taxledger/internal/core/taxledger/testutil"
	"github.com/weisyn/taxledger/internal/core/taxledger/trigger"
	"github.com/weisyn/taxledger/pkg/constants/events"
	"github.com/weisyn/taxledger/pkg/types"
)

var stranger = common.HexToAddress("0xbad")

type fixture struct {
	st     *state.State
	ledger *ledger.Memory
	bus    *eventbus.EventBus
	gate   *Gate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := state.New(testutil.Self, testutil.Authority)
	st.Schedule = types.FeeSchedule{
		Buy:  types.FeeRates{Liquidity: 100, Marketing: 400},
		Sell: types.FeeRates{Liquidity: 100, Marketing: 400},
	}
	st.Swap = types.SwapConfig{Threshold: *uint256.NewInt(1000), Enabled: true}
	st.MarketingWallet = testutil.Marketing

	l := ledger.NewMemory()
	bus := eventbus.New(eventconfig.New(nil))
	logger := &testutil.MockLogger{}
	trig := trigger.New(l, testutil.NewFakeVenue(testutil.Pool), bus, logger, clock.NewMockClock(time.Unix(0, 0)))
	return &fixture{st: st, ledger: l, bus: bus, gate: New(st, l, trig, bus, logger)}
}

func TestAuthorization(t *testing.T) {
	f := newFixture(t)

	calls := map[string]func() error{
		"buy":       func() error { return f.gate.UpdateBuyFees(stranger, 1, 1) },
		"sell":      func() error { return f.gate.UpdateSellFees(stranger, 1, 1) },
		"transfer":  func() error { return f.gate.UpdateTransferFees(stranger, 1, 1) },
		"marketing": func() error { return f.gate.SetMarketingWallet(stranger, testutil.Trader1) },
		"threshold": func() error { return f.gate.SetSwapThreshold(stranger, uint256.NewInt(5)) },
		"toggle":    func() error { return f.gate.ToggleAutoConversion(stranger, false) },
		"exclusion": func() error { return f.gate.SetExclusion(stranger, testutil.Trader1, true) },
		"venue":     func() error { return f.gate.SetVenue(stranger, testutil.Pool2, 1, true) },
		"manual": func() error {
			_, err := f.gate.ManualConversion(context.Background(), stranger)
			return err
		},
		"transfer_authority": func() error { return f.gate.TransferAuthority(stranger, stranger) },
		"renounce":           func() error { return f.gate.RenounceAuthority(stranger) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.Equal(t, "Ownable: caller is not the owner", err.Error())
			assert.ErrorIs(t, err, types.ErrAuthorization)
		})
	}
	assert.Equal(t, testutil.Authority, f.st.Authority)
	assert.Equal(t, testutil.Marketing, f.st.MarketingWallet)
}

func TestUpdateFees_Bounds(t *testing.T) {
	f := newFixture(t)
	owner := testutil.Authority

	err := f.gate.UpdateBuyFees(owner, 2001, 2000)
	require.Error(t, err)
	assert.Equal(t, "Total fees cannot be more than 40%", err.Error())
	assert.Equal(t, types.FeeRates{Liquidity: 100, Marketing: 400}, f.st.Schedule.Buy)

	require.NoError(t, f.gate.UpdateBuyFees(owner, 2000, 2000))
	assert.Equal(t, types.FeeRates{Liquidity: 2000, Marketing: 2000}, f.st.Schedule.Buy)

	assert.ErrorIs(t, f.gate.UpdateSellFees(owner, 4000, 1), types.ErrSellFeesTooHigh)
	require.NoError(t, f.gate.UpdateSellFees(owner, 0, 4000))

	err = f.gate.UpdateTransferFees(owner, 501, 500)
	assert.Equal(t, "Total fees cannot be more than 10%", err.Error())
	require.NoError(t, f.gate.UpdateTransferFees(owner, 500, 500))

	history := f.bus.GetEventHistory(events.EventTypeUpdateBuyFees)
	require.Len(t, history, 1)
	assert.Equal(t, []interface{}{uint16(2000), uint16(2000)}, history[0].Args)
}

func TestUpdateFees_Duplicate(t *testing.T) {
	f := newFixture(t)
	err := f.gate.UpdateBuyFees(testutil.Authority, 100, 400)
	assert.ErrorIs(t, err, types.ErrBuyFeesUnchanged)
	assert.ErrorIs(t, f.gate.UpdateSellFees(testutil.Authority, 100, 400), types.ErrDuplicateState)
	assert.ErrorIs(t, f.gate.UpdateTransferFees(testutil.Authority, 0, 0), types.ErrTransferFeesUnchanged)

	// 上限校验先于重复校验
	assert.ErrorIs(t, f.gate.UpdateTransferFees(testutil.Authority, 2000, 0), types.ErrBoundViolation)
	assert.Nil(t, f.bus.GetEventHistory(events.EventTypeUpdateBuyFees))
}

func TestSetMarketingWallet(t *testing.T) {
	f := newFixture(t)
	owner := testutil.Authority

	assert.Equal(t, "Marketing wallet cannot be the zero address", f.gate.SetMarketingWallet(owner, common.Address{}).Error())
	assert.Equal(t, "Marketing wallet cannot be a contract", f.gate.SetMarketingWallet(owner, testutil.Self).Error())

	f.ledger.MarkContract(testutil.Pool2)
	assert.ErrorIs(t, f.gate.SetMarketingWallet(owner, testutil.Pool2), types.ErrInvalidAddress)

	assert.Equal(t, "Marketing wallet is already that address", f.gate.SetMarketingWallet(owner, testutil.Marketing).Error())

	require.NoError(t, f.gate.SetMarketingWallet(owner, testutil.Trader1))
	assert.Equal(t, testutil.Trader1, f.st.MarketingWallet)
	history := f.bus.GetEventHistory(events.EventTypeUpdateMarketingWallet)
	require.Len(t, history, 1)
	assert.Equal(t, testutil.Trader1, history[0].Args[0])
}

func TestSetSwapThreshold(t *testing.T) {
	f := newFixture(t)
	owner := testutil.Authority

	err := f.gate.SetSwapThreshold(owner, uint256.NewInt(0))
	require.Error(t, err)
	assert.Equal(t, "Amount must be equal or greater than 1 Wei", err.Error())
	assert.ErrorIs(t, err, types.ErrInvalidAmount)

	err = f.gate.SetSwapThreshold(owner, uint256.NewInt(1000))
	assert.Equal(t, "SwapTokensAtAmount already on that amount", err.Error())

	require.NoError(t, f.gate.SetSwapThreshold(owner, uint256.NewInt(1)))
	assert.Equal(t, uint64(1), f.st.Swap.Threshold.Uint64())
}

func TestToggleAutoConversion(t *testing.T) {
	f := newFixture(t)
	err := f.gate.ToggleAutoConversion(testutil.Authority, true)
	assert.Equal(t, "SwapBack already on status", err.Error())

	require.NoError(t, f.gate.ToggleAutoConversion(testutil.Authority, false))
	assert.False(t, f.st.Swap.Enabled)
	assert.Len(t, f.bus.GetEventHistory(events.EventTypeUpdateSwapBackStatus), 1)
}

func TestSetExclusionAndVenue(t *testing.T) {
	f := newFixture(t)
	owner := testutil.Authority

	require.NoError(t, f.gate.SetExclusion(owner, testutil.Trader1, true))
	assert.True(t, f.st.Exclusions.IsExcluded(testutil.Trader1))
	assert.ErrorIs(t, f.gate.SetExclusion(owner, testutil.Trader1, true), types.ErrExclusionUnchanged)

	require.NoError(t, f.gate.SetVenue(owner, testutil.Pool2, 500, true))
	assert.True(t, f.st.Venues.IsAnyMember(testutil.Pool2))
	err := f.gate.SetVenue(owner, testutil.Pool2, 500, true)
	assert.Equal(t, "Pool already in this status", err.Error())

	history := f.bus.GetEventHistory(events.EventTypeUpdateVenue)
	require.Len(t, history, 1)
	assert.Equal(t, []interface{}{testutil.Pool2, uint32(500), true}, history[0].Args)
}

func TestManualConversion_Empty(t *testing.T) {
	f := newFixture(t)
	outcome, err := f.gate.ManualConversion(context.Background(), testutil.Authority)
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, types.ErrNothingToSwap)
}

func TestAuthorityTransferAndRenounce(t *testing.T) {
	f := newFixture(t)

	err := f.gate.TransferAuthority(testutil.Authority, common.Address{})
	assert.Equal(t, "Ownable: new owner is the zero address", err.Error())

	require.NoError(t, f.gate.TransferAuthority(testutil.Authority, testutil.Trader1))
	assert.ErrorIs(t, f.gate.ToggleAutoConversion(testutil.Authority, false), types.ErrNotAuthority)
	require.NoError(t, f.gate.ToggleAutoConversion(testutil.Trader1, false))

	require.NoError(t, f.gate.RenounceAuthority(testutil.Trader1))
	assert.Equal(t, common.Address{}, f.st.Authority)
	assert.ErrorIs(t, f.gate.ToggleAutoConversion(testutil.Trader1, true), types.ErrNotAuthority)
	assert.ErrorIs(t, f.gate.ToggleAutoConversion(common.Address{}, true), types.ErrNotAuthority)

	history := f.bus.GetEventHistory(events.EventTypeOwnershipTransferred)
	require.Len(t, history, 2)
	assert.Equal(t, []interface{}{testutil.Trader1, common.Address{}}, history[1].Args)
}
