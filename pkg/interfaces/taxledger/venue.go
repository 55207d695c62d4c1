package taxledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/taxledger/pkg/types"
)

// Venue 外部交易场所端口
//
// 调用 Convert 之前，国库已把 AmountIn 全部转入 Address()。
// 返回错误时账本会回滚本次兑换周期的全部账本变更。
// ctx 携带当前原子单元的令牌，交易场所可以用它回调 Engine 而不会死锁。
type Venue interface {
	// Address 交易场所在账本中的地址
	Address() common.Address

	// Convert 执行一次兑换
	Convert(ctx context.Context, req *types.ConversionRequest) (*types.ConversionResult, error)
}
