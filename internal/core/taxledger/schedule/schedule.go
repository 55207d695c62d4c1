// Package schedule 费率表
//
// 每个方向保存一组 (流动性, 营销) 基点费率，分母为 10000。
// 买入与卖出合计不超过 4000，普通转账合计不超过 1000。
// 单个方向整体替换，不会出现只更新一半的中间态。
package schedule

import (
	"github.com/weisyn/taxledger/pkg/constants"
	"github.com/weisyn/taxledger/pkg/types"
)

// MaxTotal 返回方向的费率上限（基点）
func MaxTotal(d types.Direction) uint32 {
	switch d {
	case types.DirectionBuy, types.DirectionSell:
		return constants.MaxTradeFeeBps
	case types.DirectionTransfer:
		return constants.MaxTransferFeeBps
	default:
		return 0
	}
}

// CheckBound 校验费率是否在方向上限之内
func CheckBound(d types.Direction, rates types.FeeRates) error {
	if rates.Total() <= MaxTotal(d) {
		return nil
	}
	switch d {
	case types.DirectionBuy:
		return types.ErrBuyFeesTooHigh
	case types.DirectionSell:
		return types.ErrSellFeesTooHigh
	default:
		return types.ErrTransferFeesTooHigh
	}
}

// Validate 校验整张费率表
func Validate(s types.FeeSchedule) error {
	for _, d := range []types.Direction{types.DirectionBuy, types.DirectionSell, types.DirectionTransfer} {
		if err := CheckBound(d, s.Rates(d)); err != nil {
			return err
		}
	}
	return nil
}

// Set 替换指定方向的费率，调用方负责先做上限校验
func Set(s *types.FeeSchedule, d types.Direction, rates types.FeeRates) {
	switch d {
	case types.DirectionBuy:
		s.Buy = rates
	case types.DirectionSell:
		s.Sell = rates
	case types.DirectionTransfer:
		s.Transfer = rates
	}
}

// UnchangedError 返回方向对应的重复状态错误
func UnchangedError(d types.Direction) error {
	switch d {
	case types.DirectionBuy:
		return types.ErrBuyFeesUnchanged
	case types.DirectionSell:
		return types.ErrSellFeesUnchanged
	default:
		return types.ErrTransferFeesUnchanged
	}
}
