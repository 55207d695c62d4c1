package event

import configtypes "github.com/weisyn/taxledger/pkg/types"

// EventOptions 事件系统配置选项
type EventOptions struct {
	// === 基础配置 ===
	Enabled bool `json:"enabled"` // 是否启用事件系统

	// === 基础限制 ===
	MaxSubscribers int `json:"max_subscribers"` // 单个事件类型的最大订阅者数量
	HistorySize    int `json:"history_size"`    // 每个事件类型保留的历史条数，0 表示不保留
}

// Config 事件配置实现
type Config struct {
	options *EventOptions
}

// New 创建事件配置实现
func New(userConfig interface{}) *Config {
	// 1. 先创建完整的默认配置
	defaultOptions := createDefaultEventOptions()

	// 2. 应用用户配置
	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// NewFromOptions 从EventOptions创建配置实现
func NewFromOptions(options *EventOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// createDefaultEventOptions 创建默认事件配置
func createDefaultEventOptions() *EventOptions {
	return &EventOptions{
		Enabled:        defaultEnabled,
		MaxSubscribers: defaultMaxSubscribers,
		HistorySize:    defaultHistorySize,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
func applyUserConfig(options *EventOptions, userConfig interface{}) {
	if cfg, ok := userConfig.(*configtypes.UserEventConfig); ok && cfg != nil {
		if cfg.Enabled != nil {
			options.Enabled = *cfg.Enabled
		}
		if cfg.MaxSubscribers != nil && *cfg.MaxSubscribers > 0 {
			options.MaxSubscribers = *cfg.MaxSubscribers
		}
	}
}

// GetOptions 获取完整的事件配置选项
func (c *Config) GetOptions() *EventOptions {
	return c.options
}

// IsEnabled 是否启用事件系统
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}

// GetMaxSubscribers 获取最大订阅者数量
func (c *Config) GetMaxSubscribers() int {
	return c.options.MaxSubscribers
}

// GetHistorySize 获取历史记录条数
func (c *Config) GetHistorySize() int {
	return c.options.HistorySize
}
