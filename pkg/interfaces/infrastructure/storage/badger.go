// Package storage 定义持久化存储接口
package storage

import "context"

// BadgerStore 键值存储接口
//
// 📋 **约定**：
// - Get 在键不存在时返回 (nil, nil)
// - RunInTransaction 中 fn 返回错误时整个事务丢弃
type BadgerStore interface {
	// Close 关闭存储并释放资源
	Close() error

	// Get 获取指定键的值
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 设置键值对
	Set(ctx context.Context, key, value []byte) error

	// Delete 删除指定键的值
	Delete(ctx context.Context, key []byte) error

	// Exists 检查键是否存在
	Exists(ctx context.Context, key []byte) (bool, error)

	// PrefixScan 按前缀扫描键值对
	PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error)

	// RunInTransaction 在单个读写事务中执行 fn
	RunInTransaction(ctx context.Context, fn func(tx BadgerTransaction) error) error
}

// BadgerTransaction 事务内操作
type BadgerTransaction interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
}
