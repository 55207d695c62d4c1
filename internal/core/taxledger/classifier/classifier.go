// Package classifier 转账费用分类
//
// 判定顺序：
//  1. 金额为零 → 不收费
//  2. 任一方在免费名单 → 不收费
//  3. 发送方是任一档位的交易场所 → 买入
//  4. 接收方是任一档位的交易场所 → 卖出
//  5. 其余 → 普通转账（费率可以为零）
//
// 双方都是交易场所时按买入处理。
package classifier

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/taxledger/internal/core/taxledger/state"
	"github.com/weisyn/taxledger/pkg/constants"
	"github.com/weisyn/taxledger/pkg/types"
)

var denominator = uint256.NewInt(constants.FeeDenominator)

// Decision 一次转账的分类结果
type Decision struct {
	Direction    types.Direction
	Rates        types.FeeRates
	Fee          *uint256.Int
	Net          *uint256.Int
	LiquidityFee *uint256.Int
	MarketingFee *uint256.Int
}

// Charged 是否需要向国库划转费用
func (d Decision) Charged() bool {
	return !d.Fee.IsZero()
}

// Direction 只判定方向，不计算金额
func Direction(st *state.State, from, to common.Address, amount *uint256.Int) types.Direction {
	switch {
	case amount.IsZero():
		return types.DirectionNoFee
	case st.Exclusions.IsExcluded(from) || st.Exclusions.IsExcluded(to):
		return types.DirectionNoFee
	case st.Venues.IsAnyMember(from):
		return types.DirectionBuy
	case st.Venues.IsAnyMember(to):
		return types.DirectionSell
	default:
		return types.DirectionTransfer
	}
}

// Classify 判定方向并按当前费率计算费用
func Classify(st *state.State, from, to common.Address, amount *uint256.Int) Decision {
	d := Direction(st, from, to, amount)
	rates := st.Schedule.Rates(d)
	fee, net, liq, mkt := Compute(rates, amount)
	return Decision{
		Direction:    d,
		Rates:        rates,
		Fee:          fee,
		Net:          net,
		LiquidityFee: liq,
		MarketingFee: mkt,
	}
}

// Compute 计算费用拆分
//
//	fee          = amount * (l+m) / 10000   向下取整
//	net          = amount - fee
//	liquidityFee = fee * l / (l+m)          向下取整
//	marketingFee = fee - liquidityFee
func Compute(rates types.FeeRates, amount *uint256.Int) (fee, net, liquidityFee, marketingFee *uint256.Int) {
	total := rates.Total()
	if total == 0 || amount.IsZero() {
		return new(uint256.Int), new(uint256.Int).Set(amount), new(uint256.Int), new(uint256.Int)
	}

	// 512 位中间结果，大额不会溢出；fee <= amount
	fee, _ = new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(uint64(total)), denominator)
	net = new(uint256.Int).Sub(amount, fee)

	liquidityFee = new(uint256.Int).Mul(fee, uint256.NewInt(uint64(rates.Liquidity)))
	liquidityFee.Div(liquidityFee, uint256.NewInt(uint64(total)))
	marketingFee = new(uint256.Int).Sub(fee, liquidityFee)
	return fee, net, liquidityFee, marketingFee
}
