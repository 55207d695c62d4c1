package taxledger

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	appconfig "github.com/weisyn/taxledger/internal/config"
	taxconfig "github.com/weisyn/taxledger/internal/config/taxledger"
	"github.com/weisyn/taxledger/internal/core/infrastructure/clock"
	"github.com/weisyn/taxledger/internal/core/taxledger/persistence"
	"github.com/weisyn/taxledger/internal/core/taxledger/testutil"
	"github.com/weisyn/taxledger/internal/core/taxledger/venue"
	"github.com/weisyn/taxledger/pkg/interfaces/config"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/taxledger/pkg/types"
)

func TestOpenEngine_GenesisThenRestore(t *testing.T) {
	ctx := context.Background()
	cfg := taxconfig.New(&types.UserTaxLedgerConfig{
		Authority:   ptr(testutil.Authority.Hex()),
		TotalSupply: ptr("1000"),
	})
	fixed, err := venue.NewFixedRate(cfg.GetOptions().VenueAddress, 1, 1)
	require.NoError(t, err)
	deps := Deps{Venue: fixed, Logger: &testutil.MockLogger{}, Clock: clock.NewSystemClock()}
	store := persistence.New(testutil.NewMockBadgerStore(), &testutil.MockLogger{})

	first, err := openEngine(ctx, cfg, deps, store)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), first.BalanceOf(testutil.Authority).Uint64())
	_, err = first.Transfer(ctx, testutil.Authority, testutil.Trader1, uint256.NewInt(10))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, first.Checkpoint(ctx)))

	second, err := openEngine(ctx, cfg, deps, store)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), second.BalanceOf(testutil.Trader1).Uint64())
	assert.Equal(t, uint64(1000), second.TotalSupply().Uint64())
}

func TestModule_SavesCheckpointOnStop(t *testing.T) {
	db := testutil.NewMockBadgerStore()
	authority := testutil.Authority.Hex()
	supply := "5000"

	var engine *Engine
	app := fxtest.New(t,
		fx.Provide(func() config.Provider {
			return appconfig.NewProvider(&types.AppConfig{
				TaxLedger: &types.UserTaxLedgerConfig{Authority: &authority, TotalSupply: &supply},
			})
		}),
		fx.Provide(func() storage.BadgerStore { return db }),
		Module(),
		fx.Populate(&engine),
	)
	app.RequireStart()
	require.NotNil(t, engine)
	_, err := engine.Transfer(context.Background(), testutil.Authority, testutil.Trader2, uint256.NewInt(42))
	require.NoError(t, err)
	app.RequireStop()

	cp, err := persistence.New(db, &testutil.MockLogger{}).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, "42", cp.Balances[testutil.Trader2])
}
