// Package venue 参考交易场所
//
// FixedRate 按固定汇率把代币兑换为参考货币，收益记在场所内部的参考货币账上。
// 兑换得到的代币留在场所地址名下。
package venue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// ErrVenuePaused 场所暂停兑换
var ErrVenuePaused = errors.New("venue paused")

// FixedRate 固定汇率交易场所
type FixedRate struct {
	addr     common.Address
	num, den *uint256.Int

	mu       sync.RWMutex
	paused   bool
	proceeds map[common.Address]*uint256.Int
	cycles   int
}

var _ iface.Venue = (*FixedRate)(nil)

// NewFixedRate 创建场所，rate = num/den
func NewFixedRate(addr common.Address, num, den uint64) (*FixedRate, error) {
	if den == 0 {
		return nil, fmt.Errorf("汇率分母不能为零")
	}
	return &FixedRate{
		addr:     addr,
		num:      uint256.NewInt(num),
		den:      uint256.NewInt(den),
		proceeds: make(map[common.Address]*uint256.Int),
	}, nil
}

// Address 场所地址
func (v *FixedRate) Address() common.Address {
	return v.addr
}

// SetPaused 暂停或恢复兑换
func (v *FixedRate) SetPaused(paused bool) {
	v.mu.Lock()
	v.paused = paused
	v.mu.Unlock()
}

// Quote 按汇率折算
func (v *FixedRate) Quote(tokens *uint256.Int) *uint256.Int {
	out, overflow := new(uint256.Int).MulDivOverflow(tokens, v.num, v.den)
	if overflow {
		return new(uint256.Int).SetAllOne()
	}
	return out
}

// Convert 执行兑换
func (v *FixedRate) Convert(ctx context.Context, req *types.ConversionRequest) (*types.ConversionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.paused {
		return nil, ErrVenuePaused
	}

	result := &types.ConversionResult{
		LiquidityProceeds: v.Quote(req.LiquidityTokens),
		MarketingProceeds: v.Quote(req.MarketingTokens),
	}
	v.credit(req.LiquidityReceiver, result.LiquidityProceeds)
	v.credit(req.MarketingWallet, result.MarketingProceeds)
	v.cycles++
	return result, nil
}

func (v *FixedRate) credit(addr common.Address, amount *uint256.Int) {
	if amount.IsZero() {
		return
	}
	cur, ok := v.proceeds[addr]
	if !ok {
		cur = new(uint256.Int)
	}
	v.proceeds[addr] = new(uint256.Int).Add(cur, amount)
}

// Proceeds 查询地址累计获得的参考货币
func (v *FixedRate) Proceeds(addr common.Address) *uint256.Int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if p, ok := v.proceeds[addr]; ok {
		return new(uint256.Int).Set(p)
	}
	return new(uint256.Int)
}

// Cycles 成功兑换次数
func (v *FixedRate) Cycles() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cycles
}
