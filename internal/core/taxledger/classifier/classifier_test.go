package classifier

import (
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/taxledger/internal/core/taxledger/state"
	"github.com/weisyn/taxledger/pkg/types"
)

var (
	self   = common.HexToAddress("0x5e1f")
	owner  = common.HexToAddress("0xa11ce")
	pool   = common.HexToAddress("0x9001")
	pool2  = common.HexToAddress("0x9002")
	trader = common.HexToAddress("0x7001")
	friend = common.HexToAddress("0x7002")
)

func newState(t *testing.T) *state.State {
	t.Helper()
	st := state.New(self, owner)
	st.Schedule = types.FeeSchedule{
		Buy:      types.FeeRates{Liquidity: 500, Marketing: 2000},
		Sell:     types.FeeRates{Liquidity: 100, Marketing: 400},
		Transfer: types.FeeRates{},
	}
	require.NoError(t, st.Venues.Register(pool, 3000, true))
	require.NoError(t, st.Exclusions.Set(owner, true))
	require.NoError(t, st.Exclusions.Set(self, true))
	return st
}

func TestClassify_Directions(t *testing.T) {
	st := newState(t)
	amount := uint256.NewInt(1000)

	tests := []struct {
		name     string
		from, to common.Address
		amount   *uint256.Int
		want     types.Direction
	}{
		{"零金额", pool, trader, uint256.NewInt(0), types.DirectionNoFee},
		{"发送方免费", owner, pool, amount, types.DirectionNoFee},
		{"接收方免费", pool, owner, amount, types.DirectionNoFee},
		{"买入", pool, trader, amount, types.DirectionBuy},
		{"卖出", trader, pool, amount, types.DirectionSell},
		{"普通转账", trader, friend, amount, types.DirectionTransfer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(st, tt.from, tt.to, tt.amount).Direction)
		})
	}
}

func TestClassify_VenueToVenueIsBuy(t *testing.T) {
	st := newState(t)
	require.NoError(t, st.Venues.Register(pool2, 500, true))
	assert.Equal(t, types.DirectionBuy, Direction(st, pool, pool2, uint256.NewInt(1)))
	assert.Equal(t, types.DirectionBuy, Direction(st, pool2, pool, uint256.NewInt(1)))
}

func TestClassify_DeregisteredTierIgnored(t *testing.T) {
	st := newState(t)
	require.NoError(t, st.Venues.Register(pool, 3000, false))
	assert.Equal(t, types.DirectionTransfer, Direction(st, trader, pool, uint256.NewInt(1)))
}

func TestClassify_BuyAmounts(t *testing.T) {
	st := newState(t)

	d := Classify(st, pool, trader, uint256.NewInt(1000))
	assert.Equal(t, types.DirectionBuy, d.Direction)
	assert.Equal(t, uint64(250), d.Fee.Uint64())
	assert.Equal(t, uint64(750), d.Net.Uint64())
	assert.Equal(t, uint64(50), d.LiquidityFee.Uint64())
	assert.Equal(t, uint64(200), d.MarketingFee.Uint64())
	assert.True(t, d.Charged())
}

func TestClassify_ZeroTransferRates(t *testing.T) {
	st := newState(t)
	d := Classify(st, trader, friend, uint256.NewInt(1000))
	assert.Equal(t, types.DirectionTransfer, d.Direction)
	assert.False(t, d.Charged())
	assert.Equal(t, uint64(1000), d.Net.Uint64())
}

func TestCompute_Floor(t *testing.T) {
	fee, net, liq, mkt := Compute(types.FeeRates{Liquidity: 100, Marketing: 400}, uint256.NewInt(199))
	// 199 * 500 / 10000 = 9.95 → 9
	assert.Equal(t, uint64(9), fee.Uint64())
	assert.Equal(t, uint64(190), net.Uint64())
	// 9 * 100 / 500 = 1.8 → 1
	assert.Equal(t, uint64(1), liq.Uint64())
	assert.Equal(t, uint64(8), mkt.Uint64())
}

func TestCompute_MaxAmount(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	fee, net, _, _ := Compute(types.FeeRates{Liquidity: 2000, Marketing: 2000}, max)
	assert.Equal(t, max, new(uint256.Int).Add(fee, net))
}

func genRates(maxTotal uint16) gopter.Gen {
	return gen.UInt16Range(0, maxTotal).FlatMap(func(v interface{}) gopter.Gen {
		l := v.(uint16)
		return gen.UInt16Range(0, maxTotal-l).Map(func(m uint16) types.FeeRates {
			return types.FeeRates{Liquidity: l, Marketing: m}
		})
	}, reflect.TypeOf(types.FeeRates{}))
}

// TestCompute_Properties 费用拆分的守恒性质
func TestCompute_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fee + net == amount", prop.ForAll(
		func(rates types.FeeRates, raw uint64) bool {
			amount := uint256.NewInt(raw)
			fee, net, _, _ := Compute(rates, amount)
			return new(uint256.Int).Add(fee, net).Eq(amount)
		},
		genRates(4000),
		gen.UInt64(),
	))

	properties.Property("liquidity + marketing == fee", prop.ForAll(
		func(rates types.FeeRates, raw uint64) bool {
			fee, _, liq, mkt := Compute(rates, uint256.NewInt(raw))
			return new(uint256.Int).Add(liq, mkt).Eq(fee)
		},
		genRates(4000),
		gen.UInt64(),
	))

	properties.Property("fee never exceeds 40% of amount", prop.ForAll(
		func(rates types.FeeRates, raw uint64) bool {
			amount := uint256.NewInt(raw)
			fee, _, _, _ := Compute(rates, amount)
			limit, _ := new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(4000), uint256.NewInt(10000))
			return !fee.Gt(limit)
		},
		genRates(4000),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestClassify_ExcludedProperty 免费名单内的账户永不收费
func TestClassify_ExcludedProperty(t *testing.T) {
	st := newState(t)
	properties := gopter.NewProperties(nil)

	properties.Property("excluded party pays zero fee", prop.ForAll(
		func(raw uint64, toPool bool) bool {
			amount := uint256.NewInt(raw)
			to := friend
			if toPool {
				to = pool
			}
			a := Classify(st, owner, to, amount)
			b := Classify(st, pool, self, amount)
			return a.Direction == types.DirectionNoFee && a.Fee.IsZero() && a.Net.Eq(amount) &&
				b.Direction == types.DirectionNoFee && b.Fee.IsZero()
		},
		gen.UInt64(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
