// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径
	Version *string `json:"version,omitempty"`  // 应用版本

	// API服务配置
	API *UserAPIConfig `json:"api,omitempty"`

	// 存储配置
	Storage *UserStorageConfig `json:"storage,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 事件总线配置
	Event *UserEventConfig `json:"event,omitempty"`

	// 费用账本配置 - 对应配置文件中的 tax_ledger 字段
	TaxLedger *UserTaxLedgerConfig `json:"tax_ledger,omitempty"`
}

// UserAPIConfig 用户API配置
type UserAPIConfig struct {
	HTTPEnabled *bool   `json:"http_enabled,omitempty"` // 是否启用HTTP服务（默认true）
	HTTPHost    *string `json:"http_host,omitempty"`    // HTTP监听地址
	HTTPPort    *int    `json:"http_port,omitempty"`    // HTTP监听端口

	// HTTP CORS 配置
	HTTPCorsEnabled *bool    `json:"http_cors_enabled,omitempty"` // 是否启用CORS（默认true）
	HTTPCorsOrigins []string `json:"http_cors_origins,omitempty"` // 允许的CORS源（默认["*"]）

	// 是否暴露 /metrics
	MetricsEnabled *bool `json:"metrics_enabled,omitempty"`
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	DataRoot *string `json:"data_root,omitempty"` // 数据根目录（data_root）
	InMemory *bool   `json:"in_memory,omitempty"` // 纯内存模式（不落盘）
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径，stdout/stderr 表示标准流
	Console  *bool   `json:"console,omitempty"`   // 写文件时是否同时输出到控制台

	// 轮转，仅 file_path 为普通文件时生效
	MaxSizeMB  *int  `json:"max_size_mb,omitempty"`
	MaxBackups *int  `json:"max_backups,omitempty"`
	MaxAgeDays *int  `json:"max_age_days,omitempty"`
	Compress   *bool `json:"compress,omitempty"`

	Caller     *bool `json:"caller,omitempty"`     // 记录调用位置
	Stacktrace *bool `json:"stacktrace,omitempty"` // error 及以上附带堆栈
}

// UserEventConfig 用户事件总线配置
type UserEventConfig struct {
	Enabled        *bool `json:"enabled,omitempty"`         // 是否启用事件总线
	MaxSubscribers *int  `json:"max_subscribers,omitempty"` // 单个事件的最大订阅者数
}

// UserTaxLedgerConfig 用户费用账本配置
// 地址统一使用 0x 前缀的十六进制字符串，金额使用十进制字符串（最小单位）
type UserTaxLedgerConfig struct {
	// 代币元数据
	Name        *string `json:"name,omitempty"`
	Symbol      *string `json:"symbol,omitempty"`
	Decimals    *uint8  `json:"decimals,omitempty"`
	TotalSupply *string `json:"total_supply,omitempty"`

	// 角色地址
	Authority         *string `json:"authority,omitempty"`          // 治理权限持有者（创世时获得全部供应量）
	SelfAddress       *string `json:"self_address,omitempty"`       // 账本自身地址（国库）
	MarketingWallet   *string `json:"marketing_wallet,omitempty"`   // 营销钱包
	LiquidityReceiver *string `json:"liquidity_receiver,omitempty"` // 流动性份额接收方

	// 初始费率（基点，分母10000）
	BuyFees      *UserFeeRates `json:"buy_fees,omitempty"`
	SellFees     *UserFeeRates `json:"sell_fees,omitempty"`
	TransferFees *UserFeeRates `json:"transfer_fees,omitempty"`

	// 自动兑换
	SwapEnabled   *bool   `json:"swap_enabled,omitempty"`
	SwapThreshold *string `json:"swap_threshold,omitempty"`

	// 初始交易场所与排除名单
	Venues     []UserVenueConfig `json:"venues,omitempty"`
	Exclusions []string          `json:"exclusions,omitempty"`

	// 参考交易场所（固定汇率实现）
	VenueAddress *string `json:"venue_address,omitempty"`
	VenueRateNum *uint64 `json:"venue_rate_num,omitempty"` // 每单位代币兑换参考货币的分子
	VenueRateDen *uint64 `json:"venue_rate_den,omitempty"` // 分母
}

// UserFeeRates 用户费率配置
type UserFeeRates struct {
	Liquidity *uint16 `json:"liquidity,omitempty"`
	Marketing *uint16 `json:"marketing,omitempty"`
}

// UserVenueConfig 用户交易场所配置
type UserVenueConfig struct {
	Address string `json:"address"`
	Tier    uint32 `json:"tier"`
}
