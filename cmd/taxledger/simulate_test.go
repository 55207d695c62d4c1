package main

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/taxledger/internal/scenario"
	"github.com/weisyn/taxledger/pkg/types"
)

func TestStepRows(t *testing.T) {
	results := []scenario.Result{
		{
			Index: 1,
			Step:  scenario.Step{Op: scenario.OpTransfer},
			Receipt: &types.TransferReceipt{
				Amount:       uint256.NewInt(1000),
				Direction:    types.DirectionSell,
				Fee:          uint256.NewInt(50),
				Net:          uint256.NewInt(950),
				LiquidityFee: uint256.NewInt(10),
				MarketingFee: uint256.NewInt(40),
			},
			Outcome: &types.ConversionOutcome{Succeeded: true, AmountIn: uint256.NewInt(120)},
		},
		{
			Index: 2,
			Step:  scenario.Step{Op: scenario.OpSetThreshold},
			Err:   errors.New("Amount must be equal or greater than 1 Wei"),
		},
		{
			Index:   3,
			Step:    scenario.Step{Op: scenario.OpManualConversion},
			Outcome: &types.ConversionOutcome{Manual: true, Reason: "venue paused"},
		},
	}

	rows := stepRows(results)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "transfer", "sell", "1000", "10", "40", "950", "120", "ok"}, rows[0])
	assert.Equal(t, "set_threshold", rows[1][1])
	assert.Equal(t, "Amount must be equal or greater than 1 Wei", rows[1][8])
	assert.Equal(t, "失败: venue paused", rows[2][7])
}

func TestParseAddresses(t *testing.T) {
	addrs, err := parseAddresses([]string{"0x0000000000000000000000000000000000007001"})
	require.NoError(t, err)
	require.Len(t, addrs, 1)

	_, err = parseAddresses([]string{"bad"})
	assert.Error(t, err)
}

func TestScenarioFilesParse(t *testing.T) {
	for _, path := range []string{
		"../../configs/scenarios/sell_and_convert.json",
		"../../configs/scenarios/governance.json",
	} {
		_, err := scenario.Load(path)
		assert.NoError(t, err, path)
	}
}
