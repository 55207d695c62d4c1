package taxledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/taxledger/pkg/types"
)

// Engine 费用账本引擎
//
// 每个写入口都是一个原子单元：要么全部生效，要么不留下任何部分状态。
// 兑换失败是唯一的例外，失败会被记录并吞掉，外层转账仍然成功。
type Engine interface {
	TransferService
	GovernanceService
	QueryService
}

// TransferService 转账入口
type TransferService interface {
	// Transfer 从 from 向 to 转账，按方向收取费用并在满足条件时触发兑换
	Transfer(ctx context.Context, from, to common.Address, amount *uint256.Int) (*types.TransferReceipt, error)
}

// GovernanceService 治理入口，所有方法都要求 caller 为当前治理地址
type GovernanceService interface {
	UpdateBuyFees(ctx context.Context, caller common.Address, liquidity, marketing uint16) error
	UpdateSellFees(ctx context.Context, caller common.Address, liquidity, marketing uint16) error
	UpdateTransferFees(ctx context.Context, caller common.Address, liquidity, marketing uint16) error
	SetMarketingWallet(ctx context.Context, caller, wallet common.Address) error
	SetSwapThreshold(ctx context.Context, caller common.Address, amount *uint256.Int) error
	ToggleAutoConversion(ctx context.Context, caller common.Address, enabled bool) error
	SetExclusion(ctx context.Context, caller, account common.Address, excluded bool) error
	SetVenue(ctx context.Context, caller, venue common.Address, tier uint32, present bool) error

	// ManualConversion 手动触发兑换，忽略阈值，国库为空时返回 ErrNothingToSwap
	ManualConversion(ctx context.Context, caller common.Address) (*types.ConversionOutcome, error)

	TransferAuthority(ctx context.Context, caller, next common.Address) error
	RenounceAuthority(ctx context.Context, caller common.Address) error
}

// QueryService 只读查询
type QueryService interface {
	FeeSchedule() types.FeeSchedule
	Rates(d types.Direction) types.FeeRates
	IsExcluded(addr common.Address) bool
	IsVenue(addr common.Address, tier uint32) bool
	IsAnyVenue(addr common.Address) bool
	Venues() []types.VenueKey
	TreasuryBalance() *uint256.Int
	AccruedShares() types.FeeShares
	SwapConfig() types.SwapConfig
	MarketingWallet() common.Address
	BalanceOf(addr common.Address) *uint256.Int
	TotalSupply() *uint256.Int
	Authority() common.Address
	SelfAddress() common.Address
	Metadata() types.TokenMetadata
}
