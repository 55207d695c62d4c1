package app

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/taxledger/pkg/types"
)

func testAppConfig() *types.AppConfig {
	authority := "0x00000000000000000000000000000000000a11ce"
	supply := "1000000"
	level := "error"
	return &types.AppConfig{
		Log:       &types.UserLogConfig{Level: &level},
		TaxLedger: &types.UserTaxLedgerConfig{Authority: &authority, TotalSupply: &supply},
	}
}

func TestStart_InMemoryWithoutAPI(t *testing.T) {
	a, err := Start(WithAppConfig(testAppConfig()), WithInMemoryStorage(), WithoutAPI())
	require.NoError(t, err)

	engine := a.Engine()
	require.NotNil(t, engine)
	assert.Equal(t, uint64(1000000), engine.TotalSupply().Uint64())

	trader := engine.SelfAddress()
	_, err = engine.Transfer(context.Background(), engine.Authority(), trader, uint256.NewInt(5))
	require.NoError(t, err)

	require.NoError(t, a.Stop())
}

func TestLoadConfig_EmbeddedDefault(t *testing.T) {
	b := NewBootstrap(newOptions(WithInMemoryStorage()))
	require.NoError(t, b.loadConfig())
	require.NotNil(t, b.opts.appConfig)
	require.NotNil(t, b.opts.appConfig.Storage)
	assert.True(t, *b.opts.appConfig.Storage.InMemory)
}
