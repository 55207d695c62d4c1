package event

// 事件系统默认配置值
const (
	// defaultEnabled 默认启用事件系统
	// 治理变更与兑换周期都通过事件总线对外通知
	defaultEnabled = true

	// defaultMaxSubscribers 默认单事件最大订阅者数量
	defaultMaxSubscribers = 100

	// defaultHistorySize 每个事件类型保留最近256条，供查询接口回放
	defaultHistorySize = 256
)
