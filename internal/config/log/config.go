package log

import (
	"strings"

	"go.uber.org/zap/zapcore"

	configtypes "github.com/weisyn/taxledger/pkg/types"
)

// LogOptions 日志选项
type LogOptions struct {
	Level     string `json:"level"`
	ToConsole bool   `json:"to_console"`
	// FilePath 为空或 stdout/stderr 时不落盘
	FilePath string `json:"file_path"`

	MaxSize    int  `json:"max_size"`    // MB
	MaxBackups int  `json:"max_backups"` // 个
	MaxAge     int  `json:"max_age"`     // 天
	Compress   bool `json:"compress"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"`
}

// Config 日志配置
type Config struct {
	options *LogOptions
}

// New 由用户配置创建，nil 或非 *UserLogConfig 时全部取默认值
func New(userConfig interface{}) *Config {
	options := defaultOptions()
	if user, ok := userConfig.(*configtypes.UserLogConfig); ok && user != nil {
		options.merge(user)
	}
	return &Config{options: options}
}

// NewFromOptions 直接使用完整选项
func NewFromOptions(options *LogOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// NewFromProvider 从配置提供者读取，提供者不含日志配置时取默认值
func NewFromProvider(provider interface{}) *Config {
	if p, ok := provider.(interface{ GetLog() *LogOptions }); ok {
		return NewFromOptions(p.GetLog())
	}
	return New(nil)
}

func defaultOptions() *LogOptions {
	return &LogOptions{
		Level:            defaultLevel,
		ToConsole:        true,
		MaxSize:          defaultMaxSizeMB,
		MaxBackups:       defaultMaxBackups,
		MaxAge:           defaultMaxAgeDays,
		Compress:         true,
		EnableCaller:     true,
		EnableStacktrace: true,
	}
}

// merge 只覆盖用户显式给出的字段
//
// 给出普通文件路径而未指定 console 时关闭控制台输出，
// 避免服务进程的账本日志在终端和文件里各写一份。
func (o *LogOptions) merge(user *configtypes.UserLogConfig) {
	if user.Level != nil {
		o.Level = strings.ToLower(strings.TrimSpace(*user.Level))
	}
	if user.FilePath != nil {
		o.FilePath = strings.TrimSpace(*user.FilePath)
		if !o.isStream() && o.FilePath != "" {
			o.ToConsole = false
		}
	}
	setIfPresent(&o.ToConsole, user.Console)
	setPositive(&o.MaxSize, user.MaxSizeMB)
	setPositive(&o.MaxBackups, user.MaxBackups)
	setPositive(&o.MaxAge, user.MaxAgeDays)
	setIfPresent(&o.Compress, user.Compress)
	setIfPresent(&o.EnableCaller, user.Caller)
	setIfPresent(&o.EnableStacktrace, user.Stacktrace)
}

func (o *LogOptions) isStream() bool {
	return o.FilePath == pathStdout || o.FilePath == pathStderr
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setPositive 非正数视为未配置，lumberjack 会把 0 当作不限制
func setPositive(dst *int, v *int) {
	if v != nil && *v > 0 {
		*dst = *v
	}
}

// GetOptions 获取完整选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// GetLevel 日志级别原文
func (c *Config) GetLevel() string {
	return c.options.Level
}

// GetZapLevel 解析后的级别，无法识别时退回 info
func (c *Config) GetZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.options.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func (c *Config) IsConsoleEnabled() bool { return c.options.ToConsole }
func (c *Config) GetFilePath() string    { return c.options.FilePath }

func (c *Config) GetMaxSize() int            { return c.options.MaxSize }
func (c *Config) GetMaxBackups() int         { return c.options.MaxBackups }
func (c *Config) GetMaxAge() int             { return c.options.MaxAge }
func (c *Config) IsCompressionEnabled() bool { return c.options.Compress }
func (c *Config) IsCallerEnabled() bool      { return c.options.EnableCaller }
func (c *Config) IsStacktraceEnabled() bool  { return c.options.EnableStacktrace }

// encoderConfig 文件与控制台共用的字段布局
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	}
}

// CreateFileEncoder 文件使用 JSON，每行一条
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(encoderConfig())
}

// CreateConsoleEncoder 控制台只显示时分秒，级别着色
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
