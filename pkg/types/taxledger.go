// Package types 定义费用账本的核心数据类型
package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ==================== 费用方向 ====================

// Direction 转账的费用方向
type Direction uint8

const (
	// DirectionNoFee 不收费（零金额或排除名单）
	DirectionNoFee Direction = iota
	// DirectionBuy 发送方为交易场所
	DirectionBuy
	// DirectionSell 接收方为交易场所
	DirectionSell
	// DirectionTransfer 普通钱包间转账
	DirectionTransfer
)

// String 返回方向名称
func (d Direction) String() string {
	switch d {
	case DirectionNoFee:
		return "no_fee"
	case DirectionBuy:
		return "buy"
	case DirectionSell:
		return "sell"
	case DirectionTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection 解析方向名称
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "buy":
		return DirectionBuy, nil
	case "sell":
		return DirectionSell, nil
	case "transfer":
		return DirectionTransfer, nil
	case "no_fee":
		return DirectionNoFee, nil
	default:
		return DirectionNoFee, fmt.Errorf("unknown direction %q", s)
	}
}

// ==================== 费率 ====================

// FeeRates 单一方向的费率，单位为基点（分母10000）
type FeeRates struct {
	Liquidity uint16 `json:"liquidity"`
	Marketing uint16 `json:"marketing"`
}

// Total 返回两部分费率之和
func (r FeeRates) Total() uint32 {
	return uint32(r.Liquidity) + uint32(r.Marketing)
}

// IsZero 是否为零费率
func (r FeeRates) IsZero() bool {
	return r.Liquidity == 0 && r.Marketing == 0
}

// FeeSchedule 三个方向的费率表
type FeeSchedule struct {
	Buy      FeeRates `json:"buy"`
	Sell     FeeRates `json:"sell"`
	Transfer FeeRates `json:"transfer"`
}

// Rates 返回指定方向的费率，NoFee 方向恒为零
func (s FeeSchedule) Rates(d Direction) FeeRates {
	switch d {
	case DirectionBuy:
		return s.Buy
	case DirectionSell:
		return s.Sell
	case DirectionTransfer:
		return s.Transfer
	default:
		return FeeRates{}
	}
}

// ==================== 自动兑换 ====================

// SwapConfig 自动兑换配置
type SwapConfig struct {
	Threshold uint256.Int // 触发阈值，恒大于0
	Enabled   bool
}

// FeeShares 自上次兑换以来累计的费用份额
type FeeShares struct {
	Liquidity uint256.Int
	Marketing uint256.Int
}

// Total 返回两部分之和
func (s FeeShares) Total() *uint256.Int {
	return new(uint256.Int).Add(&s.Liquidity, &s.Marketing)
}

// ConversionRequest 交给交易场所的一次兑换请求
// 代币在调用前已由国库转入交易场所
type ConversionRequest struct {
	CycleID           string
	AmountIn          *uint256.Int // 本次兑换的全部代币
	LiquidityTokens   *uint256.Int // 其中流动性份额
	MarketingTokens   *uint256.Int // 其中营销份额
	MarketingWallet   common.Address
	LiquidityReceiver common.Address
}

// ConversionResult 交易场所返回的参考货币收益
type ConversionResult struct {
	LiquidityProceeds *uint256.Int
	MarketingProceeds *uint256.Int
}

// ConversionOutcome 一次兑换周期的结果
type ConversionOutcome struct {
	CycleID   string            `json:"cycle_id"`
	Manual    bool              `json:"manual"`
	Succeeded bool              `json:"succeeded"`
	AmountIn  *uint256.Int      `json:"-"`
	Result    *ConversionResult `json:"-"`
	Reason    string            `json:"reason,omitempty"`
}

// ==================== 转账回执 ====================

// TransferReceipt 一次转账的结算结果
type TransferReceipt struct {
	From         common.Address
	To           common.Address
	Amount       *uint256.Int
	Direction    Direction
	Fee          *uint256.Int
	Net          *uint256.Int
	LiquidityFee *uint256.Int
	MarketingFee *uint256.Int

	// Conversion 若本次转账触发了兑换周期则非空
	Conversion *ConversionOutcome
}

// TokenMetadata 代币元数据
type TokenMetadata struct {
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply *uint256.Int
}

// VenueKey 交易场所注册键
type VenueKey struct {
	Address common.Address `json:"address"`
	Tier    uint32         `json:"tier"`
}
