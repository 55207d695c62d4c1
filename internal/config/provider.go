package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/weisyn/taxledger/configs"
	"github.com/weisyn/taxledger/internal/config/api"
	"github.com/weisyn/taxledger/internal/config/event"
	"github.com/weisyn/taxledger/internal/config/log"
	"github.com/weisyn/taxledger/internal/config/storage/badger"
	"github.com/weisyn/taxledger/internal/config/taxledger"
	"github.com/weisyn/taxledger/pkg/interfaces/config"
	"github.com/weisyn/taxledger/pkg/types"
)

const defaultAppName = "taxledger"

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	var userAPIConfig *types.UserAPIConfig
	if p.appConfig != nil && p.appConfig.API != nil {
		userAPIConfig = p.appConfig.API
	}
	return api.New(userAPIConfig).GetOptions()
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}
	return log.New(userLogConfig).GetOptions()
}

// GetEvent 获取事件配置
func (p *Provider) GetEvent() *event.EventOptions {
	var userEventConfig *types.UserEventConfig
	if p.appConfig != nil && p.appConfig.Event != nil {
		userEventConfig = p.appConfig.Event
	}
	return event.New(userEventConfig).GetOptions()
}

// GetBadger 获取BadgerDB存储配置
//
// data_dir 与 storage.data_root 同时存在时以 storage.data_root 为准
func (p *Provider) GetBadger() *badger.BadgerOptions {
	var userStorageConfig *types.UserStorageConfig
	if p.appConfig != nil {
		userStorageConfig = p.appConfig.Storage
		if p.appConfig.DataDir != nil && (userStorageConfig == nil || userStorageConfig.DataRoot == nil) {
			merged := types.UserStorageConfig{DataRoot: p.appConfig.DataDir}
			if userStorageConfig != nil {
				merged.InMemory = userStorageConfig.InMemory
			}
			userStorageConfig = &merged
		}
	}
	return badger.New(userStorageConfig).GetOptions()
}

// GetTaxLedger 获取费用账本配置
func (p *Provider) GetTaxLedger() *taxledger.TaxLedgerOptions {
	var userTaxConfig *types.UserTaxLedgerConfig
	if p.appConfig != nil && p.appConfig.TaxLedger != nil {
		userTaxConfig = p.appConfig.TaxLedger
	}
	return taxledger.New(userTaxConfig).GetOptions()
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig != nil && p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}

// LoadAppConfig 从文件加载应用配置
// path 为空时使用内嵌的默认配置
func LoadAppConfig(path string) (*types.AppConfig, error) {
	var data []byte
	if path == "" {
		data = configs.GetDefaultConfig()
	} else {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		data = raw
	}

	return parseAppConfig(data)
}

// parseAppConfig 解析JSON配置
func parseAppConfig(data []byte) (*types.AppConfig, error) {
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return &appConfig, nil
}

// appOptions 简单的 AppOptions 实现
type appOptions struct {
	cfg *types.AppConfig
}

// GetAppConfig 获取应用配置
func (o *appOptions) GetAppConfig() *types.AppConfig {
	return o.cfg
}

// NewAppOptions 包装应用配置
func NewAppOptions(cfg *types.AppConfig) config.AppOptions {
	return &appOptions{cfg: cfg}
}
