package trigger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventconfig "github.com/weisyn/taxledger/internal/config/event"
	"github.com/weisyn/taxledger/internal/core/infrastructure/clock"
	eventbus "github.com/weisyn/taxledger/internal/core/infrastructure/event"
	"github.com/weisyn/taxledger/internal/core/taxledger/ledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/state"
	"github.com/weisyn/taxledger/internal/core/taxledger/testutil"
	"github.com/weisyn/taxledger/pkg/constants/events"
	"github.com/weisyn/taxledger/pkg/types"
)

type fixture struct {
	st     *state.State
	ledger *ledger.Memory
	venue  *testutil.FakeVenue
	bus    *eventbus.EventBus
	logger *testutil.BehavioralMockLogger
	trig   *Trigger
}

func newFixture(t *testing.T, treasury uint64) *fixture {
	t.Helper()
	st := state.New(testutil.Self, testutil.Authority)
	st.Swap = types.SwapConfig{Threshold: *uint256.NewInt(100), Enabled: true}
	st.MarketingWallet = testutil.Marketing
	st.LiquidityReceiver = testutil.Authority
	st.Accrued = types.FeeShares{Liquidity: *uint256.NewInt(1), Marketing: *uint256.NewInt(4)}

	l := ledger.NewMemory()
	if treasury > 0 {
		require.NoError(t, l.Mint(testutil.Self, uint256.NewInt(treasury)))
	}
	l.Commit()

	f := &fixture{
		st:     st,
		ledger: l,
		venue:  testutil.NewFakeVenue(testutil.Pool),
		bus:    eventbus.New(eventconfig.New(nil)),
		logger: &testutil.BehavioralMockLogger{},
	}
	f.trig = New(l, f.venue, f.bus, f.logger, clock.NewSteppingClock(time.Unix(0, 0), time.Millisecond))
	return f
}

func TestEvaluate_BelowThreshold(t *testing.T) {
	f := newFixture(t, 99)
	assert.Nil(t, f.trig.Evaluate(context.Background(), f.st))
	assert.Empty(t, f.venue.Requests())
}

func TestEvaluate_Disabled(t *testing.T) {
	f := newFixture(t, 1000)
	f.st.Swap.Enabled = false
	assert.Nil(t, f.trig.Evaluate(context.Background(), f.st))
}

func TestEvaluate_ConvertsWholeTreasury(t *testing.T) {
	f := newFixture(t, 100)

	outcome := f.trig.Evaluate(context.Background(), f.st)
	require.NotNil(t, outcome)
	assert.True(t, outcome.Succeeded)
	assert.False(t, outcome.Manual)
	assert.NotEmpty(t, outcome.CycleID)
	assert.False(t, f.trig.Converting())

	assert.True(t, f.ledger.BalanceOf(testutil.Self).IsZero())
	assert.Equal(t, uint64(100), f.ledger.BalanceOf(testutil.Pool).Uint64())
	assert.True(t, f.st.Accrued.Total().IsZero())

	reqs := f.venue.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, uint64(20), reqs[0].LiquidityTokens.Uint64())
	assert.Equal(t, uint64(80), reqs[0].MarketingTokens.Uint64())
	assert.Equal(t, testutil.Marketing, reqs[0].MarketingWallet)
	assert.Equal(t, uint64(80), outcome.Result.MarketingProceeds.Uint64())

	history := f.bus.GetEventHistory(events.EventTypeConversionCompleted)
	require.Len(t, history, 1)
	assert.Same(t, outcome, history[0].Args[0])
}

func TestEvaluate_VenueFailureRollsBack(t *testing.T) {
	f := newFixture(t, 500)
	f.venue.Err = errors.New("insufficient liquidity")

	outcome := f.trig.Evaluate(context.Background(), f.st)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Succeeded)
	assert.Equal(t, "insufficient liquidity", outcome.Reason)
	assert.False(t, f.trig.Converting(), "失败后回到 Idle")

	assert.Equal(t, uint64(500), f.ledger.BalanceOf(testutil.Self).Uint64())
	assert.True(t, f.ledger.BalanceOf(testutil.Pool).IsZero())
	assert.Equal(t, uint64(5), f.st.Accrued.Total().Uint64(), "失败不清零累计份额")

	assert.Len(t, f.bus.GetEventHistory(events.EventTypeConversionFailed), 1)
	assert.Nil(t, f.bus.GetEventHistory(events.EventTypeConversionCompleted))
	assert.True(t, f.logger.Contains("WARN", "insufficient liquidity"))
}

func TestEvaluate_ReentrantIsNoop(t *testing.T) {
	f := newFixture(t, 300)
	var nested *types.ConversionOutcome
	calls := 0
	f.venue.OnConvert = func(ctx context.Context, req *types.ConversionRequest) error {
		calls++
		assert.True(t, f.trig.Converting())
		// 兑换中再次满足阈值也不会进入第二个周期
		require.NoError(t, f.ledger.Mint(testutil.Self, uint256.NewInt(1000)))
		nested = f.trig.Evaluate(ctx, f.st)
		manual, err := f.trig.Manual(ctx, f.st)
		assert.NoError(t, err)
		assert.Nil(t, manual)
		return nil
	}

	outcome := f.trig.Evaluate(context.Background(), f.st)
	require.NotNil(t, outcome)
	assert.True(t, outcome.Succeeded)
	assert.Nil(t, nested)
	assert.Equal(t, 1, calls)
	assert.Len(t, f.venue.Requests(), 1)
}

func TestEmit_HeldUntilCycleEnds(t *testing.T) {
	t.Run("周期外立即执行", func(t *testing.T) {
		f := newFixture(t, 0)
		ran := false
		f.trig.Emit(func() { ran = true })
		assert.True(t, ran)
	})

	t.Run("周期成功后执行", func(t *testing.T) {
		f := newFixture(t, 100)
		ran := false
		f.venue.OnConvert = func(ctx context.Context, req *types.ConversionRequest) error {
			f.trig.Emit(func() { ran = true })
			assert.False(t, ran, "兑换中暂存")
			return nil
		}
		outcome := f.trig.Evaluate(context.Background(), f.st)
		require.NotNil(t, outcome)
		assert.True(t, outcome.Succeeded)
		assert.True(t, ran)
	})

	t.Run("周期失败时丢弃并恢复累计份额", func(t *testing.T) {
		f := newFixture(t, 100)
		ran := false
		f.venue.OnConvert = func(ctx context.Context, req *types.ConversionRequest) error {
			f.st.Lock()
			f.st.Accrue(uint256.NewInt(10), uint256.NewInt(40))
			f.st.Unlock()
			f.trig.Emit(func() { ran = true })
			return errors.New("venue offline")
		}
		outcome := f.trig.Evaluate(context.Background(), f.st)
		require.NotNil(t, outcome)
		assert.False(t, outcome.Succeeded)
		assert.False(t, ran)
		assert.Equal(t, uint64(1), f.st.Accrued.Liquidity.Uint64())
		assert.Equal(t, uint64(4), f.st.Accrued.Marketing.Uint64())

		// 下一次周期外调用不受影响
		f.trig.Emit(func() { ran = true })
		assert.True(t, ran)
	})
}

func TestManual(t *testing.T) {
	t.Run("国库为空", func(t *testing.T) {
		f := newFixture(t, 0)
		outcome, err := f.trig.Manual(context.Background(), f.st)
		assert.Nil(t, outcome)
		require.Error(t, err)
		assert.Equal(t, "Cant Swap Back 0 Token!", err.Error())
		assert.ErrorIs(t, err, types.ErrEmptyTreasury)
	})

	t.Run("忽略阈值与开关", func(t *testing.T) {
		f := newFixture(t, 7)
		f.st.Swap.Enabled = false
		outcome, err := f.trig.Manual(context.Background(), f.st)
		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.True(t, outcome.Manual)
		assert.True(t, outcome.Succeeded)
		assert.True(t, f.ledger.BalanceOf(testutil.Self).IsZero())
	})

	t.Run("交易场所失败仍返回结果", func(t *testing.T) {
		f := newFixture(t, 7)
		f.venue.Err = errors.New("paused")
		outcome, err := f.trig.Manual(context.Background(), f.st)
		require.NoError(t, err)
		assert.False(t, outcome.Succeeded)
		assert.Equal(t, uint64(7), f.ledger.BalanceOf(testutil.Self).Uint64())
	})
}

func TestSplit(t *testing.T) {
	liq, mkt := Split(uint256.NewInt(1000), types.FeeShares{})
	assert.True(t, liq.IsZero())
	assert.Equal(t, uint64(1000), mkt.Uint64())

	liq, mkt = Split(uint256.NewInt(1000), types.FeeShares{Liquidity: *uint256.NewInt(1), Marketing: *uint256.NewInt(2)})
	assert.Equal(t, uint64(333), liq.Uint64())
	assert.Equal(t, uint64(667), mkt.Uint64())
}

func TestSplit_Property(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("liquidity + marketing == amount", prop.ForAll(
		func(amount, l, m uint64) bool {
			liq, mkt := Split(uint256.NewInt(amount), types.FeeShares{Liquidity: *uint256.NewInt(l), Marketing: *uint256.NewInt(m)})
			return new(uint256.Int).Add(liq, mkt).Eq(uint256.NewInt(amount)) && !liq.Gt(uint256.NewInt(amount))
		},
		gen.UInt64(),
		gen.UInt64Range(0, 1<<40),
		gen.UInt64Range(0, 1<<40),
	))
	properties.TestingRun(t)
}
