package log

// 日志默认值
//
// 默认只输出到控制台；配置 file_path 后改为写轮转文件。
const (
	defaultLevel      = "info"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 10
	defaultMaxAgeDays = 30
)

// 标准流路径别名
const (
	pathStdout = "stdout"
	pathStderr = "stderr"
)
