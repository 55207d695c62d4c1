package configs

import _ "embed"

// 内嵌默认配置（在configs目录内直接引用）
//
//go:embed default/config.json
var defaultConfig []byte

//go:embed testing/config.json
var testingConfig []byte

// GetDefaultConfig 获取默认配置
func GetDefaultConfig() []byte {
	return defaultConfig
}

// GetTestingConfig 获取测试环境配置
func GetTestingConfig() []byte {
	return testingConfig
}
