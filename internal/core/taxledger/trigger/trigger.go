// Package trigger 自动兑换触发器
//
// 状态机：Idle → Converting → Idle。
// 进入 Converting 的条件：兑换已启用、国库余额 ≥ 阈值、且当前不在兑换中。
// 兑换期间国库全部余额转入交易场所并调用 Convert；
// Convert 失败时回滚本周期全部账本变更与累计份额，记录日志后吞掉错误。
// 兑换期间产生的事件与指标经 Emit 暂存，周期成功后依次执行，失败时丢弃。
// Converting → Idle 无条件发生。
package trigger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/weisyn/taxledger/internal/core/taxledger/metrics"
	"github.com/weisyn/taxledger/internal/core/taxledger/state"
	"github.com/weisyn/taxledger/pkg/constants/events"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// Trigger 兑换触发器
type Trigger struct {
	ledger iface.Ledger
	venue  iface.Venue
	bus    event.EventBus
	logger log.Logger
	clock  clock.Clock

	// converting 执行守卫，只在原子单元内读写
	converting bool
	// held 本周期暂存的副作用
	held []func()
}

// New 创建触发器，bus 可以为 nil
func New(ledger iface.Ledger, venue iface.Venue, bus event.EventBus, logger log.Logger, clk clock.Clock) *Trigger {
	return &Trigger{
		ledger: ledger,
		venue:  venue,
		bus:    bus,
		logger: logger,
		clock:  clk,
	}
}

// Converting 是否处于兑换中
func (t *Trigger) Converting() bool {
	return t.converting
}

// Emit 执行一项对外可见的副作用
// 兑换进行中时暂存到周期结束，否则立即执行。
func (t *Trigger) Emit(fn func()) {
	if t.converting {
		t.held = append(t.held, fn)
		return
	}
	fn()
}

// Evaluate 在一次收费转账之后评估是否进入兑换
// 未进入兑换时返回 nil
func (t *Trigger) Evaluate(ctx context.Context, st *state.State) *types.ConversionOutcome {
	if t.converting || !st.Swap.Enabled {
		return nil
	}
	if t.ledger.BalanceOf(st.Self).Lt(&st.Swap.Threshold) {
		return nil
	}
	return t.run(ctx, st, false)
}

// Manual 忽略阈值与启用开关立即兑换，调用方负责鉴权
//
// 国库为空时返回 ErrNothingToSwap；兑换进行中的重入调用返回 nil, nil。
func (t *Trigger) Manual(ctx context.Context, st *state.State) (*types.ConversionOutcome, error) {
	if t.converting {
		return nil, nil
	}
	if t.ledger.BalanceOf(st.Self).IsZero() {
		return nil, types.ErrNothingToSwap
	}
	return t.run(ctx, st, true), nil
}

func (t *Trigger) run(ctx context.Context, st *state.State, manual bool) *types.ConversionOutcome {
	t.converting = true
	t.held = nil
	defer func() {
		t.converting = false
		t.held = nil
	}()

	start := t.clock.Now()
	amount := t.ledger.BalanceOf(st.Self)
	liquidity, marketing := Split(amount, st.Accrued)

	outcome := &types.ConversionOutcome{
		CycleID:  uuid.NewString(),
		Manual:   manual,
		AmountIn: amount,
	}
	logger := t.logger.With("cycle_id", outcome.CycleID, "manual", manual)
	logger.Infof("开始兑换: amount=%s liquidity=%s marketing=%s", amount.Dec(), liquidity.Dec(), marketing.Dec())

	snapshot := t.ledger.Snapshot()
	st.RLock()
	accrued := st.Accrued
	st.RUnlock()
	result, err := t.convert(ctx, st, &types.ConversionRequest{
		CycleID:           outcome.CycleID,
		AmountIn:          amount,
		LiquidityTokens:   liquidity,
		MarketingTokens:   marketing,
		MarketingWallet:   st.MarketingWallet,
		LiquidityReceiver: st.LiquidityReceiver,
	})
	elapsed := t.clock.Since(start)

	if err != nil {
		t.ledger.RevertToSnapshot(snapshot)
		st.Lock()
		st.Accrued = accrued
		st.Unlock()
		t.held = nil
		outcome.Reason = err.Error()
		logger.Warnf("兑换失败，已回滚本周期账本变更: %v", err)
		metrics.RecordConversion(manual, false, elapsed)
		t.publish(events.EventTypeConversionFailed, outcome)
		return outcome
	}

	if result == nil {
		result = &types.ConversionResult{}
	}
	if result.LiquidityProceeds == nil {
		result.LiquidityProceeds = new(uint256.Int)
	}
	if result.MarketingProceeds == nil {
		result.MarketingProceeds = new(uint256.Int)
	}
	outcome.Succeeded = true
	outcome.Result = result

	st.Lock()
	st.ResetAccrued()
	st.Unlock()

	logger.Infof("兑换完成: liquidity_proceeds=%s marketing_proceeds=%s elapsed=%s",
		result.LiquidityProceeds.Dec(), result.MarketingProceeds.Dec(), elapsed.Round(time.Microsecond))
	metrics.RecordConversion(manual, true, elapsed)
	metrics.SetTreasuryBalance(t.ledger.BalanceOf(st.Self))
	t.publish(events.EventTypeTransfer, st.Self, t.venue.Address(), amount)
	for _, fn := range t.held {
		fn()
	}
	t.publish(events.EventTypeConversionCompleted, outcome)
	return outcome
}

func (t *Trigger) convert(ctx context.Context, st *state.State, req *types.ConversionRequest) (*types.ConversionResult, error) {
	if err := t.ledger.Move(st.Self, t.venue.Address(), req.AmountIn); err != nil {
		return nil, err
	}
	return t.venue.Convert(ctx, req)
}

func (t *Trigger) publish(eventType event.EventType, args ...interface{}) {
	if t.bus != nil {
		t.bus.Publish(eventType, args...)
	}
}

// Split 按累计份额拆分兑换数量
// 两项累计都为零时全部计入营销份额
func Split(amount *uint256.Int, accrued types.FeeShares) (liquidity, marketing *uint256.Int) {
	total := accrued.Total()
	if total.IsZero() {
		return new(uint256.Int), new(uint256.Int).Set(amount)
	}
	liquidity, _ = new(uint256.Int).MulDivOverflow(amount, &accrued.Liquidity, total)
	marketing = new(uint256.Int).Sub(amount, liquidity)
	return liquidity, marketing
}
