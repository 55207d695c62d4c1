// Package taxledger 费用账本引擎
//
// 📋 **职责**
//
// Engine 是原子单元的组合根：
//   - 转账：分类 → 收取费用入国库 → 净额到账 → 评估自动兑换
//   - 治理：鉴权后的参数变更与手动兑换
//   - 查询：费率、名单、国库、余额与元数据
//
// 所有写入口都经过单元门串行化；失败时回滚到单元开始时的账本快照。
package taxledger

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	taxconfig "github.com/weisyn/taxledger/internal/config/taxledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/classifier"
	"github.com/weisyn/taxledger/internal/core/taxledger/governance"
	"github.com/weisyn/taxledger/internal/core/taxledger/metrics"
	"github.com/weisyn/taxledger/internal/core/taxledger/state"
	"github.com/weisyn/taxledger/internal/core/taxledger/trigger"
	"github.com/weisyn/taxledger/internal/core/taxledger/unit"
	"github.com/weisyn/taxledger/pkg/constants/events"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// Engine 费用账本引擎
type Engine struct {
	st     *state.State
	ledger iface.Ledger
	venue  iface.Venue

	gate    *unit.Gate
	trigger *trigger.Trigger
	gov     *governance.Gate

	bus    event.EventBus
	logger log.Logger
}

var _ iface.Engine = (*Engine)(nil)

// Deps 引擎依赖
type Deps struct {
	Ledger iface.Ledger
	Venue  iface.Venue
	Bus    event.EventBus // 可选
	Logger log.Logger
	Clock  clock.Clock
}

func newEngine(st *state.State, deps Deps) *Engine {
	trig := trigger.New(deps.Ledger, deps.Venue, deps.Bus, deps.Logger, deps.Clock)
	return &Engine{
		st:      st,
		ledger:  deps.Ledger,
		venue:   deps.Venue,
		gate:    unit.New(deps.Ledger),
		trigger: trig,
		gov:     governance.New(st, deps.Ledger, trig, deps.Bus, deps.Logger),
		bus:     deps.Bus,
		logger:  deps.Logger,
	}
}

// New 按配置创建引擎并执行创世
//
// 创世：总量增发给治理地址；自身与治理地址默认免费；注册配置中的交易场所与免费名单。
// 账本已有余额时跳过增发。
func New(cfg *taxconfig.Config, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := cfg.GetOptions()

	st := state.New(opts.SelfAddress, opts.Authority)
	st.Metadata = cfg.GetMetadata()
	st.Schedule = opts.Schedule
	st.Swap = cfg.GetSwapConfig()
	st.MarketingWallet = opts.MarketingWallet
	st.LiquidityReceiver = opts.LiquidityReceiver

	for _, addr := range append([]common.Address{opts.SelfAddress, opts.Authority}, opts.Exclusions...) {
		if !st.Exclusions.IsExcluded(addr) {
			_ = st.Exclusions.Set(addr, true)
		}
	}
	for _, v := range opts.Venues {
		if !st.Venues.IsMember(v.Address, v.Tier) {
			_ = st.Venues.Register(v.Address, v.Tier, true)
		}
	}

	if deps.Ledger.TotalSupply().IsZero() && !opts.TotalSupply.IsZero() {
		supply := opts.TotalSupply
		if err := deps.Ledger.Mint(opts.Authority, &supply); err != nil {
			return nil, fmt.Errorf("创世增发失败: %w", err)
		}
		deps.Ledger.Commit()
	}

	e := newEngine(st, deps)
	e.logger.Infof("费用账本已创建: self=%s authority=%s supply=%s",
		st.Self.Hex(), st.Authority.Hex(), deps.Ledger.TotalSupply().Dec())
	return e, nil
}

// ==================== 转账 ====================

// Transfer 转账
func (e *Engine) Transfer(ctx context.Context, from, to common.Address, amount *uint256.Int) (receipt *types.TransferReceipt, err error) {
	if from == (common.Address{}) {
		return nil, types.ErrTransferFromZero
	}
	if to == (common.Address{}) {
		return nil, types.ErrTransferToZero
	}
	if amount == nil {
		amount = new(uint256.Int)
	}

	ctx, release := e.gate.Enter(ctx)
	defer release()

	decision := classifier.Classify(e.st, from, to, amount)
	defer func() {
		direction, failed := decision.Direction, err
		e.trigger.Emit(func() { metrics.RecordTransfer(direction, failed) })
	}()

	snapshot := e.ledger.Snapshot()
	if decision.Charged() {
		if err = e.ledger.Move(from, e.st.Self, decision.Fee); err != nil {
			e.ledger.RevertToSnapshot(snapshot)
			return nil, err
		}
	}
	if err = e.ledger.Move(from, to, decision.Net); err != nil {
		e.ledger.RevertToSnapshot(snapshot)
		return nil, err
	}

	receipt = &types.TransferReceipt{
		From:         from,
		To:           to,
		Amount:       new(uint256.Int).Set(amount),
		Direction:    decision.Direction,
		Fee:          decision.Fee,
		Net:          decision.Net,
		LiquidityFee: decision.LiquidityFee,
		MarketingFee: decision.MarketingFee,
	}

	if decision.Charged() {
		e.st.Lock()
		e.st.Accrue(decision.LiquidityFee, decision.MarketingFee)
		e.st.Unlock()
		direction, fee, self := decision.Direction, new(uint256.Int).Set(decision.Fee), e.st.Self
		e.trigger.Emit(func() {
			metrics.RecordFee(direction, fee)
			e.publish(events.EventTypeTransfer, from, self, fee)
		})
	}
	net := new(uint256.Int).Set(decision.Net)
	e.trigger.Emit(func() { e.publish(events.EventTypeTransfer, from, to, net) })
	e.logger.Debugf("转账: from=%s to=%s direction=%s amount=%s fee=%s",
		from.Hex(), to.Hex(), decision.Direction, amount.Dec(), decision.Fee.Dec())

	if decision.Direction != types.DirectionNoFee {
		receipt.Conversion = e.trigger.Evaluate(ctx, e.st)
	}
	e.trigger.Emit(func() { metrics.SetTreasuryBalance(e.ledger.BalanceOf(e.st.Self)) })
	return receipt, nil
}

// ==================== 治理 ====================

// UpdateBuyFees 更新买入费率
func (e *Engine) UpdateBuyFees(ctx context.Context, caller common.Address, liquidity, marketing uint16) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.UpdateBuyFees(caller, liquidity, marketing)
}

// UpdateSellFees 更新卖出费率
func (e *Engine) UpdateSellFees(ctx context.Context, caller common.Address, liquidity, marketing uint16) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.UpdateSellFees(caller, liquidity, marketing)
}

// UpdateTransferFees 更新普通转账费率
func (e *Engine) UpdateTransferFees(ctx context.Context, caller common.Address, liquidity, marketing uint16) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.UpdateTransferFees(caller, liquidity, marketing)
}

// SetMarketingWallet 更新营销钱包
func (e *Engine) SetMarketingWallet(ctx context.Context, caller, wallet common.Address) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.SetMarketingWallet(caller, wallet)
}

// SetSwapThreshold 更新兑换阈值
func (e *Engine) SetSwapThreshold(ctx context.Context, caller common.Address, amount *uint256.Int) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.SetSwapThreshold(caller, amount)
}

// ToggleAutoConversion 开关自动兑换
func (e *Engine) ToggleAutoConversion(ctx context.Context, caller common.Address, enabled bool) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.ToggleAutoConversion(caller, enabled)
}

// SetExclusion 设置免费名单
func (e *Engine) SetExclusion(ctx context.Context, caller, account common.Address, excluded bool) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.SetExclusion(caller, account, excluded)
}

// SetVenue 设置交易场所
func (e *Engine) SetVenue(ctx context.Context, caller, venue common.Address, tier uint32, present bool) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.SetVenue(caller, venue, tier, present)
}

// ManualConversion 手动兑换
func (e *Engine) ManualConversion(ctx context.Context, caller common.Address) (*types.ConversionOutcome, error) {
	ctx, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.ManualConversion(ctx, caller)
}

// TransferAuthority 转移治理权
func (e *Engine) TransferAuthority(ctx context.Context, caller, next common.Address) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.TransferAuthority(caller, next)
}

// RenounceAuthority 放弃治理权
func (e *Engine) RenounceAuthority(ctx context.Context, caller common.Address) error {
	_, release := e.gate.Enter(ctx)
	defer release()
	return e.gov.RenounceAuthority(caller)
}

func (e *Engine) publish(eventType event.EventType, args ...interface{}) {
	if e.bus != nil {
		e.bus.Publish(eventType, args...)
	}
}
