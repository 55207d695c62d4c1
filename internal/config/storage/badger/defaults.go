package badger

// BadgerDB存储默认配置值
const (
	// defaultPath 默认数据库路径
	defaultPath = "./data/badger"

	// defaultInMemory 默认落盘
	defaultInMemory = false

	// defaultSyncWrites 默认启用同步写入
	// 账本检查点需要强一致性
	defaultSyncWrites = true

	// defaultMemTableSize 默认内存表大小为64MB
	defaultMemTableSize = 64 << 20
)
