package api

import "time"

// API服务默认配置值
const (
	defaultHTTPEnabled = true
	defaultHTTPHost    = "127.0.0.1"
	defaultHTTPPort    = 28680

	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultCORSEnabled    = true
	defaultMetricsEnabled = true
)
