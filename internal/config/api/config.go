package api

import (
	"fmt"
	"time"

	"github.com/weisyn/taxledger/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	// HTTP API配置
	HTTP HTTPConfig `json:"http"`
}

// HTTPConfig HTTP API配置
type HTTPConfig struct {
	// 基础配置
	Enabled bool   `json:"enabled"` // 是否启用HTTP服务（总开关）
	Host    string `json:"host"`    // 监听地址
	Port    int    `json:"port"`    // 监听端口

	// 超时配置
	ReadTimeout     time.Duration `json:"read_timeout"`     // 读取超时时间
	WriteTimeout    time.Duration `json:"write_timeout"`    // 写入超时时间
	ShutdownTimeout time.Duration `json:"shutdown_timeout"` // 优雅关闭超时

	// CORS配置
	CORSEnabled bool     `json:"cors_enabled"` // 是否启用CORS
	CORSOrigins []string `json:"cors_origins"` // 允许的CORS源

	// 指标端点
	MetricsEnabled bool `json:"metrics_enabled"` // 是否暴露 /metrics
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig interface{}) *Config {
	options := createDefaultAPIOptions()
	if userConfig != nil {
		applyUserConfig(options, userConfig)
	}
	return &Config{options: options}
}

// createDefaultAPIOptions 创建默认API配置
func createDefaultAPIOptions() *APIOptions {
	return &APIOptions{
		HTTP: HTTPConfig{
			Enabled:         defaultHTTPEnabled,
			Host:            defaultHTTPHost,
			Port:            defaultHTTPPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			CORSEnabled:     defaultCORSEnabled,
			CORSOrigins:     []string{"*"},
			MetricsEnabled:  defaultMetricsEnabled,
		},
	}
}

// applyUserConfig 应用用户配置覆盖默认值
func applyUserConfig(options *APIOptions, userConfig interface{}) {
	cfg, ok := userConfig.(*types.UserAPIConfig)
	if !ok || cfg == nil {
		return
	}
	if cfg.HTTPEnabled != nil {
		options.HTTP.Enabled = *cfg.HTTPEnabled
	}
	if cfg.HTTPHost != nil {
		options.HTTP.Host = *cfg.HTTPHost
	}
	if cfg.HTTPPort != nil {
		options.HTTP.Port = *cfg.HTTPPort
	}
	if cfg.HTTPCorsEnabled != nil {
		options.HTTP.CORSEnabled = *cfg.HTTPCorsEnabled
	}
	if len(cfg.HTTPCorsOrigins) > 0 {
		options.HTTP.CORSOrigins = cfg.HTTPCorsOrigins
	}
	if cfg.MetricsEnabled != nil {
		options.HTTP.MetricsEnabled = *cfg.MetricsEnabled
	}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}

// GetHTTPAddress 返回 host:port
func (c *Config) GetHTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.options.HTTP.Host, c.options.HTTP.Port)
}
