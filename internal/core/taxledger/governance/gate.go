// Package governance 治理入口
//
// 每个变更都按固定顺序处理：
//
//	鉴权 → 上限/合法性校验 → 重复状态校验 → 应用 → 事件与日志
//
// 任一步失败都不会留下部分状态。
package governance

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/taxledger/internal/core/taxledger/metrics"
	"github.com/weisyn/taxledger/internal/core/taxledger/schedule"
	"github.com/weisyn/taxledger/internal/core/taxledger/state"
	"github.com/weisyn/taxledger/internal/core/taxledger/trigger"
	"github.com/weisyn/taxledger/pkg/constants/events"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// Gate 治理门
type Gate struct {
	st      *state.State
	ledger  iface.Ledger
	trigger *trigger.Trigger
	bus     event.EventBus
	logger  log.Logger
}

// New 创建治理门，bus 可以为 nil
func New(st *state.State, ledger iface.Ledger, trig *trigger.Trigger, bus event.EventBus, logger log.Logger) *Gate {
	return &Gate{st: st, ledger: ledger, trigger: trig, bus: bus, logger: logger}
}

// authorize 校验调用方为当前治理地址；放弃治理权后所有调用都失败
func (g *Gate) authorize(caller common.Address) error {
	if g.st.Authority == (common.Address{}) || caller != g.st.Authority {
		return types.ErrNotAuthority
	}
	return nil
}

// compareAndSet 值未变化时返回 dup，否则在写锁内应用
func compareAndSet[T comparable](st *state.State, current, next T, dup error, apply func(T)) error {
	if current == next {
		return dup
	}
	st.Lock()
	apply(next)
	st.Unlock()
	return nil
}

// UpdateBuyFees 更新买入费率
func (g *Gate) UpdateBuyFees(caller common.Address, liquidity, marketing uint16) error {
	return g.updateFees(caller, types.DirectionBuy, "update_buy_fees", events.EventTypeUpdateBuyFees, liquidity, marketing)
}

// UpdateSellFees 更新卖出费率
func (g *Gate) UpdateSellFees(caller common.Address, liquidity, marketing uint16) error {
	return g.updateFees(caller, types.DirectionSell, "update_sell_fees", events.EventTypeUpdateSellFees, liquidity, marketing)
}

// UpdateTransferFees 更新普通转账费率
func (g *Gate) UpdateTransferFees(caller common.Address, liquidity, marketing uint16) error {
	return g.updateFees(caller, types.DirectionTransfer, "update_transfer_fees", events.EventTypeUpdateTransferFees, liquidity, marketing)
}

func (g *Gate) updateFees(caller common.Address, d types.Direction, op string, eventType event.EventType, liquidity, marketing uint16) (err error) {
	defer func() { metrics.RecordGovernance(op, err) }()

	if err = g.authorize(caller); err != nil {
		return err
	}
	next := types.FeeRates{Liquidity: liquidity, Marketing: marketing}
	if err = schedule.CheckBound(d, next); err != nil {
		return err
	}
	err = compareAndSet(g.st, g.st.Schedule.Rates(d), next, schedule.UnchangedError(d), func(r types.FeeRates) {
		schedule.Set(&g.st.Schedule, d, r)
	})
	if err != nil {
		return err
	}

	g.logger.Infof("%s费率已更新: liquidity=%d marketing=%d", d, liquidity, marketing)
	g.publish(eventType, liquidity, marketing)
	return nil
}

// SetMarketingWallet 更新营销钱包
func (g *Gate) SetMarketingWallet(caller, wallet common.Address) (err error) {
	defer func() { metrics.RecordGovernance("set_marketing_wallet", err) }()

	if err = g.authorize(caller); err != nil {
		return err
	}
	if wallet == (common.Address{}) {
		return types.ErrMarketingZero
	}
	if wallet == g.st.Self || g.ledger.IsContract(wallet) {
		return types.ErrMarketingContract
	}
	err = compareAndSet(g.st, g.st.MarketingWallet, wallet, types.ErrMarketingUnchanged, func(a common.Address) {
		g.st.MarketingWallet = a
	})
	if err != nil {
		return err
	}

	g.logger.Infof("营销钱包已更新: %s", wallet.Hex())
	g.publish(events.EventTypeUpdateMarketingWallet, wallet)
	return nil
}

// SetSwapThreshold 更新兑换阈值
func (g *Gate) SetSwapThreshold(caller common.Address, amount *uint256.Int) (err error) {
	defer func() { metrics.RecordGovernance("set_swap_threshold", err) }()

	if err = g.authorize(caller); err != nil {
		return err
	}
	if amount == nil || amount.IsZero() {
		return types.ErrThresholdZero
	}
	err = compareAndSet(g.st, g.st.Swap.Threshold, *amount, types.ErrThresholdUnchanged, func(v uint256.Int) {
		g.st.Swap.Threshold = v
	})
	if err != nil {
		return err
	}

	g.logger.Infof("兑换阈值已更新: %s", amount.Dec())
	g.publish(events.EventTypeUpdateSwapTokensAtAmount, new(uint256.Int).Set(amount))
	return nil
}

// ToggleAutoConversion 开关自动兑换
func (g *Gate) ToggleAutoConversion(caller common.Address, enabled bool) (err error) {
	defer func() { metrics.RecordGovernance("toggle_auto_conversion", err) }()

	if err = g.authorize(caller); err != nil {
		return err
	}
	err = compareAndSet(g.st, g.st.Swap.Enabled, enabled, types.ErrSwapStatusUnchanged, func(v bool) {
		g.st.Swap.Enabled = v
	})
	if err != nil {
		return err
	}

	g.logger.Infof("自动兑换开关: %v", enabled)
	g.publish(events.EventTypeUpdateSwapBackStatus, enabled)
	return nil
}

// SetExclusion 设置免费名单
func (g *Gate) SetExclusion(caller, account common.Address, excluded bool) (err error) {
	defer func() { metrics.RecordGovernance("set_exclusion", err) }()

	if err = g.authorize(caller); err != nil {
		return err
	}
	err = compareAndSet(g.st, g.st.Exclusions.IsExcluded(account), excluded, types.ErrExclusionUnchanged, func(v bool) {
		_ = g.st.Exclusions.Set(account, v)
	})
	if err != nil {
		return err
	}

	g.logger.Infof("免费名单已更新: account=%s excluded=%v", account.Hex(), excluded)
	g.publish(events.EventTypeUpdateExcludeFromFees, account, excluded)
	return nil
}

// SetVenue 设置交易场所注册状态
func (g *Gate) SetVenue(caller, venue common.Address, tier uint32, present bool) (err error) {
	defer func() { metrics.RecordGovernance("set_venue", err) }()

	if err = g.authorize(caller); err != nil {
		return err
	}
	err = compareAndSet(g.st, g.st.Venues.IsMember(venue, tier), present, types.ErrVenueUnchanged, func(v bool) {
		_ = g.st.Venues.Register(venue, tier, v)
	})
	if err != nil {
		return err
	}

	g.logger.Infof("交易场所已更新: venue=%s tier=%d present=%v", venue.Hex(), tier, present)
	g.publish(events.EventTypeUpdateVenue, venue, tier, present)
	return nil
}

// ManualConversion 手动触发兑换
func (g *Gate) ManualConversion(ctx context.Context, caller common.Address) (outcome *types.ConversionOutcome, err error) {
	defer func() { metrics.RecordGovernance("manual_conversion", err) }()

	if err = g.authorize(caller); err != nil {
		return nil, err
	}
	return g.trigger.Manual(ctx, g.st)
}

// TransferAuthority 转移治理权
func (g *Gate) TransferAuthority(caller, next common.Address) (err error) {
	defer func() { metrics.RecordGovernance("transfer_authority", err) }()

	if err = g.authorize(caller); err != nil {
		return err
	}
	if next == (common.Address{}) {
		return types.ErrZeroAuthority
	}
	g.setAuthority(next)
	return nil
}

// RenounceAuthority 放弃治理权，之后所有治理调用都失败
func (g *Gate) RenounceAuthority(caller common.Address) (err error) {
	defer func() { metrics.RecordGovernance("renounce_authority", err) }()

	if err = g.authorize(caller); err != nil {
		return err
	}
	g.setAuthority(common.Address{})
	return nil
}

func (g *Gate) setAuthority(next common.Address) {
	g.st.Lock()
	prev := g.st.Authority
	g.st.Authority = next
	g.st.Unlock()

	g.logger.Infof("治理权已转移: %s → %s", prev.Hex(), next.Hex())
	g.publish(events.EventTypeOwnershipTransferred, prev, next)
}

func (g *Gate) publish(eventType event.EventType, args ...interface{}) {
	if g.bus != nil {
		g.bus.Publish(eventType, args...)
	}
}
