package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/weisyn/taxledger/internal/api"
	config "github.com/weisyn/taxledger/internal/config"
	"github.com/weisyn/taxledger/internal/core/infrastructure/event"
	log "github.com/weisyn/taxledger/internal/core/infrastructure/log"
	"github.com/weisyn/taxledger/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/taxledger/internal/core/taxledger"
	configiface "github.com/weisyn/taxledger/pkg/interfaces/config"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts   *options
	fxApp  *fx.App
	engine iface.Engine
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configiface.AppOptions { return b.opts }),
		config.Module(), // 1. 配置(不依赖其他)
		log.Module(),    // 2. 日志(依赖配置)
	}
}

// SetupCommunicationLayer 设置事件与存储模块
func (b *Bootstrap) SetupCommunicationLayer() []fx.Option {
	return []fx.Option{
		event.Module(),  // 事件(依赖基础设施)
		badger.Module(), // 存储(依赖基础设施)
	}
}

// SetupBusinessLayer 设置业务逻辑层模块
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		taxledger.Module(),
		fx.Populate(&b.engine),
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	if !b.opts.enableAPI {
		return nil
	}
	return []fx.Option{api.Module()}
}

// SetupModules 按依赖顺序组装所有模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var all []fx.Option
	all = append(all, b.SetupInfrastructureLayer()...)
	all = append(all, b.SetupCommunicationLayer()...)
	all = append(all, b.SetupBusinessLayer()...)
	all = append(all, b.SetupApplicationLayer()...)
	return all
}

// CreateFxApp 创建并配置fx应用
func (b *Bootstrap) CreateFxApp() error {
	if err := b.loadConfig(); err != nil {
		return err
	}
	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
	)
	return b.fxApp.Err()
}

// loadConfig 未直接给定配置时从文件或内嵌默认值加载
func (b *Bootstrap) loadConfig() error {
	if b.opts.appConfig == nil {
		cfg, err := config.LoadAppConfig(b.opts.configFilePath)
		if err != nil {
			return err
		}
		b.opts.appConfig = cfg
	}
	if b.opts.inMemory {
		inMemory := true
		if b.opts.appConfig.Storage == nil {
			b.opts.appConfig.Storage = &types.UserStorageConfig{}
		}
		b.opts.appConfig.Storage.InMemory = &inMemory
	}
	return nil
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}
