// Package event 提供事件管理功能
package event

import (
	"context"

	"go.uber.org/fx"

	eventconfig "github.com/weisyn/taxledger/internal/config/event"
	"github.com/weisyn/taxledger/pkg/interfaces/config"
	eventInterface "github.com/weisyn/taxledger/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider // 配置提供者
	Logger    log.Logger      `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle    // 生命周期管理
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus // 基础事件总线
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideEventBus),
	)
}

// ProvideEventBus 创建事件总线并注册生命周期
func ProvideEventBus(input ModuleInput) (ModuleOutput, error) {
	bus := New(eventconfig.NewFromOptions(input.Provider.GetEvent()))

	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "event")
		logger.Info("事件总线已初始化")
	}

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return bus.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			if logger != nil {
				logger.Info("事件总线停止，等待异步处理完成")
			}
			return bus.Stop(ctx)
		},
	})

	return ModuleOutput{EventBus: bus}, nil
}
