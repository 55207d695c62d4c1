// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/weisyn/taxledger/internal/config/api"
	eventconfig "github.com/weisyn/taxledger/internal/config/event"
	logconfig "github.com/weisyn/taxledger/internal/config/log"
	badgerconfig "github.com/weisyn/taxledger/internal/config/storage/badger"
	taxledgerconfig "github.com/weisyn/taxledger/internal/config/taxledger"
)

// Provider 配置提供者接口
type Provider interface {
	// === 核心配置 ===

	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetEvent 获取事件配置
	GetEvent() *eventconfig.EventOptions

	// === 存储引擎配置 ===

	// GetBadger 获取BadgerDB存储配置
	GetBadger() *badgerconfig.BadgerOptions

	// === 业务配置 ===

	// GetTaxLedger 获取费用账本配置
	GetTaxLedger() *taxledgerconfig.TaxLedgerOptions

	// GetAppName 获取应用名称
	GetAppName() string
}
