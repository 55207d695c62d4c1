package taxledger

// 费用账本默认配置值
const (
	// defaultAuthoritySeed 默认治理地址的派生种子
	defaultAuthoritySeed = "taxledger/authority"

	// === 费率（基点） ===

	// 买入：流动性1% + 营销4%
	defaultBuyLiquidityFee uint16 = 100
	defaultBuyMarketingFee uint16 = 400

	// 卖出：流动性1% + 营销4%
	defaultSellLiquidityFee uint16 = 100
	defaultSellMarketingFee uint16 = 400

	// 普通转账默认不收费
	defaultTransferLiquidityFee uint16 = 0
	defaultTransferMarketingFee uint16 = 0

	// === 自动兑换 ===
	defaultSwapEnabled = true

	// === 参考交易场所 ===

	// defaultVenueTier 默认注册的费率档位
	defaultVenueTier uint32 = 3000

	// 默认汇率 1:1000（1000 个最小单位代币换 1 个参考货币单位）
	defaultVenueRateNum uint64 = 1
	defaultVenueRateDen uint64 = 1000
)
