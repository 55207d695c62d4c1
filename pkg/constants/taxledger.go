// Package constants 定义费用账本的全局常量
package constants

// ==================== 费率常量 ====================

const (
	// FeeDenominator 费率分母（基点）
	FeeDenominator uint64 = 10000

	// MaxTradeFeeBps 买入/卖出方向费率上限（40%）
	MaxTradeFeeBps uint32 = 4000

	// MaxTransferFeeBps 普通转账方向费率上限（10%）
	MaxTransferFeeBps uint32 = 1000
)

// ==================== 代币默认元数据 ====================

const (
	DefaultTokenName   = "Tax Ledger Token"
	DefaultTokenSymbol = "TAX"

	// DefaultDecimals 默认精度
	DefaultDecimals uint8 = 9

	// DefaultSupplyUnits 默认总量（整数单位，乘以 10^Decimals 得到最小单位）
	DefaultSupplyUnits uint64 = 690_000_000_000

	// DefaultSwapThresholdDivisor 默认兑换阈值 = 总供应量 / 2000
	DefaultSwapThresholdDivisor uint64 = 2000
)
