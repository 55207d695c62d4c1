// Package http 费用账本只读 HTTP 接口
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weisyn/taxledger/internal/api/http/handlers"
	"github.com/weisyn/taxledger/internal/api/http/middleware"
	apiconfig "github.com/weisyn/taxledger/internal/config/api"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
)

// Server HTTP服务器
// 提供费用账本的只读查询、健康检查与 Prometheus 指标
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	options    apiconfig.HTTPConfig
	logger     log.Logger

	listener net.Listener
}

// RouterOptions 路由构建参数
type RouterOptions struct {
	Query    iface.QueryService
	Logger   log.Logger
	Clock    clock.Clock
	HTTP     apiconfig.HTTPConfig
	Registry prometheus.Registerer // 请求指标注册器
	Gatherer prometheus.Gatherer   // /metrics 数据源
}

// NewRouter 创建路由引擎
func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(opts.Logger))
	if opts.HTTP.CORSEnabled {
		router.Use(middleware.CORS(opts.HTTP.CORSOrigins))
	}
	router.Use(middleware.ErrorHandler(opts.Logger.GetZapLogger()))
	if opts.Registry != nil {
		router.Use(middleware.NewMetrics(opts.Registry).Middleware())
	}

	router.GET("/health", handlers.NewHealthHandler(opts.Clock).Health)
	if opts.HTTP.MetricsEnabled && opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	handlers.NewTaxLedgerHandlers(opts.Query, opts.Logger).RegisterRoutes(v1)
	return router
}

// NewServer 创建服务器
func NewServer(router *gin.Engine, options apiconfig.HTTPConfig, logger log.Logger) *Server {
	return &Server{
		router:  router,
		options: options,
		logger:  logger,
	}
}

// Addr 实际监听地址，未启动时为空
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start 监听端口并在后台提供服务
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.options.Host, s.options.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("HTTP服务器监听 %s 失败: %w", addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器运行失败: %v", err)
		}
	}()

	s.logger.Infof("HTTP服务器已启动: http://%s/api/v1/", ln.Addr())
	return nil
}

// Stop 优雅关闭，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("正在关闭HTTP服务器")

	stopCtx, cancel := context.WithTimeout(ctx, s.options.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(stopCtx); err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}

	s.logger.Info("HTTP服务器已关闭")
	return nil
}
