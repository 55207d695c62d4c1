// Package events 提供费用账本事件类型常量定义
//
// 🎯 **事件常量归口管理**
//
// 命名规范：taxledger.<事件名>，事件名与对外日志条目保持一致。
//
// 🏗️ **使用方式**
// ```go
// import "github.com/weisyn/taxledger/pkg/constants/events"
//
// eventBus.Subscribe(events.EventTypeTransfer, func(from, to common.Address, amount *uint256.Int) {})
// ```
package events

import (
	"github.com/weisyn/taxledger/pkg/types"
)

// EventType 全局事件类型别名
type EventType = types.EventType

// ============================================================================
//                           治理事件
// ============================================================================

const (
	// EventTypeUpdateBuyFees 参数: liquidity uint16, marketing uint16
	EventTypeUpdateBuyFees EventType = "taxledger.UpdateBuyFees"
	// EventTypeUpdateSellFees 参数: liquidity uint16, marketing uint16
	EventTypeUpdateSellFees EventType = "taxledger.UpdateSellFees"
	// EventTypeUpdateTransferFees 参数: liquidity uint16, marketing uint16
	EventTypeUpdateTransferFees EventType = "taxledger.UpdateTransferFees"
	// EventTypeUpdateMarketingWallet 参数: wallet common.Address
	EventTypeUpdateMarketingWallet EventType = "taxledger.UpdateMarketingWallet"
	// EventTypeUpdateSwapTokensAtAmount 参数: amount *uint256.Int
	EventTypeUpdateSwapTokensAtAmount EventType = "taxledger.UpdateSwapTokensAtAmount"
	// EventTypeUpdateSwapBackStatus 参数: enabled bool
	EventTypeUpdateSwapBackStatus EventType = "taxledger.UpdateSwapBackStatus"
	// EventTypeUpdateExcludeFromFees 参数: account common.Address, excluded bool
	EventTypeUpdateExcludeFromFees EventType = "taxledger.UpdateExcludeFromFees"
	// EventTypeUpdateVenue 参数: venue common.Address, tier uint32, present bool
	EventTypeUpdateVenue EventType = "taxledger.UpdateVenue"
	// EventTypeOwnershipTransferred 参数: previous common.Address, next common.Address
	EventTypeOwnershipTransferred EventType = "taxledger.OwnershipTransferred"
)

// ============================================================================
//                           账本事件
// ============================================================================

const (
	// EventTypeTransfer 参数: from common.Address, to common.Address, amount *uint256.Int
	// 收费转账会产生两条：from→self 的费用与 from→to 的净额
	EventTypeTransfer EventType = "taxledger.Transfer"
	// EventTypeConversionCompleted 参数: outcome *types.ConversionOutcome
	EventTypeConversionCompleted EventType = "taxledger.ConversionCompleted"
	// EventTypeConversionFailed 参数: outcome *types.ConversionOutcome
	EventTypeConversionFailed EventType = "taxledger.ConversionFailed"
)

// All 全部事件类型
func All() []EventType {
	return []EventType{
		EventTypeUpdateBuyFees,
		EventTypeUpdateSellFees,
		EventTypeUpdateTransferFees,
		EventTypeUpdateMarketingWallet,
		EventTypeUpdateSwapTokensAtAmount,
		EventTypeUpdateSwapBackStatus,
		EventTypeUpdateExcludeFromFees,
		EventTypeUpdateVenue,
		EventTypeOwnershipTransferred,
		EventTypeTransfer,
		EventTypeConversionCompleted,
		EventTypeConversionFailed,
	}
}
