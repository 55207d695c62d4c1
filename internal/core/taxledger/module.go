package taxledger

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap/zapcore"

	taxconfig "github.com/weisyn/taxledger/internal/config/taxledger"
	"github.com/weisyn/taxledger/internal/core/infrastructure/clock"
	infralog "github.com/weisyn/taxledger/internal/core/infrastructure/log"
	"github.com/weisyn/taxledger/internal/core/taxledger/ledger"
	"github.com/weisyn/taxledger/internal/core/taxledger/persistence"
	"github.com/weisyn/taxledger/internal/core/taxledger/venue"
	"github.com/weisyn/taxledger/pkg/interfaces/config"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/storage"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
)

// ModuleInput 费用账本模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider
	Logger    log.Logger          `optional:"true"`
	EventBus  event.EventBus      `optional:"true"`
	Store     storage.BadgerStore `optional:"true"`
	Lifecycle fx.Lifecycle
}

// ModuleOutput 费用账本模块输出服务
type ModuleOutput struct {
	fx.Out

	Engine     *Engine
	Service    iface.Engine
	Venue      *venue.FixedRate
	StateStore iface.StateStore
}

// Module 返回费用账本模块
func Module() fx.Option {
	return fx.Module("taxledger",
		fx.Provide(ProvideEngine),
	)
}

// ProvideEngine 创建引擎
//
// 存储中已有检查点时从检查点恢复，否则按配置执行创世。
// 停止时把当前状态写回存储。
func ProvideEngine(input ModuleInput) (ModuleOutput, error) {
	logger := input.Logger
	if logger == nil {
		logger = infralog.NewWithCore(zapcore.NewNopCore(), nil)
	}
	logger = logger.With("module", "taxledger")

	cfg := taxconfig.NewFromOptions(input.Provider.GetTaxLedger())
	if err := cfg.Validate(); err != nil {
		return ModuleOutput{}, err
	}
	opts := cfg.GetOptions()

	fixed, err := venue.NewFixedRate(opts.VenueAddress, opts.VenueRateNum, opts.VenueRateDen)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建交易场所失败: %w", err)
	}
	deps := Deps{
		Venue:  fixed,
		Bus:    input.EventBus,
		Logger: logger,
		Clock:  clock.NewSystemClock(),
	}

	var stateStore *persistence.Store
	if input.Store != nil {
		stateStore = persistence.New(input.Store, logger)
	}

	engine, err := openEngine(context.Background(), cfg, deps, stateStore)
	if err != nil {
		return ModuleOutput{}, err
	}

	out := ModuleOutput{Engine: engine, Service: engine, Venue: fixed}
	if stateStore != nil {
		out.StateStore = stateStore
		input.Lifecycle.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if err := stateStore.Save(ctx, engine.Checkpoint(ctx)); err != nil {
					return fmt.Errorf("保存费用账本检查点失败: %w", err)
				}
				logger.Info("费用账本检查点已保存")
				return nil
			},
		})
	}
	return out, nil
}

// openEngine 从检查点恢复或执行创世
func openEngine(ctx context.Context, cfg *taxconfig.Config, deps Deps, store iface.StateStore) (*Engine, error) {
	if store != nil {
		cp, err := store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("读取费用账本检查点失败: %w", err)
		}
		if cp != nil {
			return Restore(cp, deps)
		}
	}

	mem := ledger.NewMemory()
	opts := cfg.GetOptions()
	mem.MarkContract(opts.SelfAddress)
	mem.MarkContract(opts.VenueAddress)
	deps.Ledger = mem
	return New(cfg, deps)
}
