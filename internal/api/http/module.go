package http

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	infraclock "github.com/weisyn/taxledger/internal/core/infrastructure/clock"
	"github.com/weisyn/taxledger/pkg/interfaces/config"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
)

// ModuleInput HTTP模块输入依赖
type ModuleInput struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider
	Logger    log.Logger
	Query     iface.Engine
}

// Module 返回HTTP模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
	)
}

// ProvideServer 创建服务器并注册生命周期
// http.enabled 为 false 时返回 nil，不监听端口
func ProvideServer(input ModuleInput) *Server {
	options := input.Provider.GetAPI().HTTP
	logger := input.Logger.With("module", "api")
	if !options.Enabled {
		logger.Info("HTTP API 已在配置中禁用")
		return nil
	}

	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	router := NewRouter(RouterOptions{
		Query:    input.Query,
		Logger:   logger,
		Clock:    infraclock.NewSystemClock(),
		HTTP:     options,
		Registry: prometheus.DefaultRegisterer,
		Gatherer: prometheus.DefaultGatherer,
	})
	server := NewServer(router, options, logger)

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server
}
