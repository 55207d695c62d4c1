package taxledger

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/taxledger/internal/core/taxledger/ledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/schedule"
	"github.com/weisyn/taxledger/internal/core/taxledger/state"
	"github.com/weisyn/taxledger/pkg/types"
)

// Checkpoint 导出当前完整状态
//
// 在单元门内执行，不会看到执行到一半的单元。
func (e *Engine) Checkpoint(ctx context.Context) *types.Checkpoint {
	_, release := e.gate.Enter(ctx)
	defer release()

	e.st.RLock()
	defer e.st.RUnlock()

	cp := &types.Checkpoint{
		Version:           types.CheckpointVersion,
		Authority:         e.st.Authority,
		Self:              e.st.Self,
		MarketingWallet:   e.st.MarketingWallet,
		LiquidityReceiver: e.st.LiquidityReceiver,
		Schedule:          e.st.Schedule,
		SwapThreshold:     e.st.Swap.Threshold.Dec(),
		SwapEnabled:       e.st.Swap.Enabled,
		AccruedLiquidity:  e.st.Accrued.Liquidity.Dec(),
		AccruedMarketing:  e.st.Accrued.Marketing.Dec(),
		Venues:            e.st.Venues.List(),
		Exclusions:        e.st.Exclusions.List(),
		TotalSupply:       e.ledger.TotalSupply().Dec(),
		Balances:          make(map[common.Address]string),
		Contracts:         e.ledger.Contracts(),
	}
	cp.Metadata.Name = e.st.Metadata.Name
	cp.Metadata.Symbol = e.st.Metadata.Symbol
	cp.Metadata.Decimals = e.st.Metadata.Decimals
	for addr, bal := range e.ledger.Accounts() {
		cp.Balances[addr] = bal.Dec()
	}
	return cp
}

// Restore 从检查点重建引擎
//
// deps.Ledger 为空时按检查点余额构建内存账本。
func Restore(cp *types.Checkpoint, deps Deps) (*Engine, error) {
	if cp == nil {
		return nil, fmt.Errorf("检查点为空")
	}
	if cp.Version != types.CheckpointVersion {
		return nil, fmt.Errorf("不支持的检查点版本: %d", cp.Version)
	}
	if err := schedule.Validate(cp.Schedule); err != nil {
		return nil, fmt.Errorf("检查点费率无效: %w", err)
	}

	threshold, err := parseAmount("swap_threshold", cp.SwapThreshold)
	if err != nil {
		return nil, err
	}
	if threshold.IsZero() {
		return nil, fmt.Errorf("检查点阈值无效: %w", types.ErrThresholdZero)
	}
	accruedLiq, err := parseAmount("accrued_liquidity", cp.AccruedLiquidity)
	if err != nil {
		return nil, err
	}
	accruedMkt, err := parseAmount("accrued_marketing", cp.AccruedMarketing)
	if err != nil {
		return nil, err
	}

	if deps.Ledger == nil {
		balances := make(map[common.Address]*uint256.Int, len(cp.Balances))
		for addr, raw := range cp.Balances {
			bal, err := parseAmount("balance "+addr.Hex(), raw)
			if err != nil {
				return nil, err
			}
			balances[addr] = bal
		}
		deps.Ledger = ledger.Restore(balances, cp.Contracts)
	}
	if cp.TotalSupply != "" && deps.Ledger.TotalSupply().Dec() != cp.TotalSupply {
		return nil, fmt.Errorf("检查点总量不一致: 记录=%s 余额合计=%s", cp.TotalSupply, deps.Ledger.TotalSupply().Dec())
	}

	st := state.New(cp.Self, cp.Authority)
	st.Metadata = types.TokenMetadata{
		Name:     cp.Metadata.Name,
		Symbol:   cp.Metadata.Symbol,
		Decimals: cp.Metadata.Decimals,
	}
	st.Schedule = cp.Schedule
	st.Swap = types.SwapConfig{Threshold: *threshold, Enabled: cp.SwapEnabled}
	st.MarketingWallet = cp.MarketingWallet
	st.LiquidityReceiver = cp.LiquidityReceiver
	st.Accrued = types.FeeShares{Liquidity: *accruedLiq, Marketing: *accruedMkt}
	for _, v := range cp.Venues {
		if !st.Venues.IsMember(v.Address, v.Tier) {
			_ = st.Venues.Register(v.Address, v.Tier, true)
		}
	}
	for _, addr := range cp.Exclusions {
		if !st.Exclusions.IsExcluded(addr) {
			_ = st.Exclusions.Set(addr, true)
		}
	}

	e := newEngine(st, deps)
	e.logger.Infof("费用账本已从检查点恢复: accounts=%d supply=%s", len(cp.Balances), cp.TotalSupply)
	return e, nil
}

func parseAmount(field, raw string) (*uint256.Int, error) {
	if raw == "" {
		return new(uint256.Int), nil
	}
	v, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, fmt.Errorf("检查点字段 %s 无效: %w", field, err)
	}
	return v, nil
}
