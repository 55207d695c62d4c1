// Package testutil 提供费用账本测试用的Mock与固定数据
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/taxledger/pkg/types"
)

// ==================== 日志 ====================

// MockLogger 统一的日志Mock实现
//
// ✅ **设计原则**：最小实现，所有方法返回空值，不记录日志
type MockLogger struct{}

func (m *MockLogger) Debug(msg string)                          {}
func (m *MockLogger) Debugf(format string, args ...interface{}) {}
func (m *MockLogger) Info(msg string)                           {}
func (m *MockLogger) Infof(format string, args ...interface{})  {}
func (m *MockLogger) Warn(msg string)                           {}
func (m *MockLogger) Warnf(format string, args ...interface{})  {}
func (m *MockLogger) Error(msg string)                          {}
func (m *MockLogger) Errorf(format string, args ...interface{}) {}
func (m *MockLogger) Fatal(msg string)                          {}
func (m *MockLogger) Fatalf(format string, args ...interface{}) {}
func (m *MockLogger) With(args ...interface{}) log.Logger       { return m }
func (m *MockLogger) Sync() error                               { return nil }
func (m *MockLogger) GetZapLogger() *zap.Logger                 { return zap.NewNop() }

// BehavioralMockLogger 行为Mock日志（记录格式化后的内容）
type BehavioralMockLogger struct {
	logs  []string
	mutex sync.Mutex
}

func (m *BehavioralMockLogger) record(level, msg string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.logs = append(m.logs, level+": "+msg)
}

func (m *BehavioralMockLogger) Debug(msg string) { m.record("DEBUG", msg) }
func (m *BehavioralMockLogger) Debugf(format string, args ...interface{}) {
	m.record("DEBUG", fmt.Sprintf(format, args...))
}
func (m *BehavioralMockLogger) Info(msg string) { m.record("INFO", msg) }
func (m *BehavioralMockLogger) Infof(format string, args ...interface{}) {
	m.record("INFO", fmt.Sprintf(format, args...))
}
func (m *BehavioralMockLogger) Warn(msg string) { m.record("WARN", msg) }
func (m *BehavioralMockLogger) Warnf(format string, args ...interface{}) {
	m.record("WARN", fmt.Sprintf(format, args...))
}
func (m *BehavioralMockLogger) Error(msg string) { m.record("ERROR", msg) }
func (m *BehavioralMockLogger) Errorf(format string, args ...interface{}) {
	m.record("ERROR", fmt.Sprintf(format, args...))
}
func (m *BehavioralMockLogger) Fatal(msg string) { m.record("FATAL", msg) }
func (m *BehavioralMockLogger) Fatalf(format string, args ...interface{}) {
	m.record("FATAL", fmt.Sprintf(format, args...))
}
func (m *BehavioralMockLogger) With(args ...interface{}) log.Logger { return m }
func (m *BehavioralMockLogger) Sync() error                         { return nil }
func (m *BehavioralMockLogger) GetZapLogger() *zap.Logger           { return zap.NewNop() }

// GetLogs 获取所有日志记录
func (m *BehavioralMockLogger) GetLogs() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]string{}, m.logs...)
}

// Contains 是否存在包含子串的记录
func (m *BehavioralMockLogger) Contains(level, substr string) bool {
	for _, l := range m.GetLogs() {
		if strings.HasPrefix(l, level+": ") && strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// ==================== 交易场所 ====================

// FakeVenue 确定性的交易场所
//
// 成功时按 1:1 返回参考货币；Err 非空时失败；
// OnConvert 非空时在兑换中被调用，用于模拟回调引擎。
type FakeVenue struct {
	Addr      common.Address
	Err       error
	OnConvert func(ctx context.Context, req *types.ConversionRequest) error

	mu       sync.Mutex
	requests []types.ConversionRequest
}

// NewFakeVenue 创建交易场所
func NewFakeVenue(addr common.Address) *FakeVenue {
	return &FakeVenue{Addr: addr}
}

// Address 实现 Venue
func (v *FakeVenue) Address() common.Address { return v.Addr }

// Convert 实现 Venue
func (v *FakeVenue) Convert(ctx context.Context, req *types.ConversionRequest) (*types.ConversionResult, error) {
	v.mu.Lock()
	v.requests = append(v.requests, *req)
	hook, err := v.OnConvert, v.Err
	v.mu.Unlock()

	if hook != nil {
		if hookErr := hook(ctx, req); hookErr != nil {
			return nil, hookErr
		}
	}
	if err != nil {
		return nil, err
	}
	return &types.ConversionResult{
		LiquidityProceeds: new(uint256.Int).Set(req.LiquidityTokens),
		MarketingProceeds: new(uint256.Int).Set(req.MarketingTokens),
	}, nil
}

// Requests 已收到的兑换请求
func (v *FakeVenue) Requests() []types.ConversionRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]types.ConversionRequest(nil), v.requests...)
}

// ==================== 存储 ====================

// MockBadgerStore 模拟 BadgerDB 存储服务
//
// ✅ **设计原则**：内存存储，支持基本操作；FailWrites 为真时所有写入返回错误
type MockBadgerStore struct {
	data       map[string][]byte
	mutex      sync.RWMutex
	FailWrites bool
}

// NewMockBadgerStore 创建模拟 BadgerDB 存储服务
func NewMockBadgerStore() *MockBadgerStore {
	return &MockBadgerStore{data: make(map[string][]byte)}
}

var errMockWrite = fmt.Errorf("mock badger write failure")

func (m *MockBadgerStore) Close() error { return nil }

func (m *MockBadgerStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.data[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (m *MockBadgerStore) Set(ctx context.Context, key, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.FailWrites {
		return errMockWrite
	}
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *MockBadgerStore) Delete(ctx context.Context, key []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.FailWrites {
		return errMockWrite
	}
	delete(m.data, string(key))
	return nil
}

func (m *MockBadgerStore) Exists(ctx context.Context, key []byte) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

func (m *MockBadgerStore) PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	out := make(map[string][]byte)
	for k, v := range m.data {
		if strings.HasPrefix(k, string(prefix)) {
			out[k] = append([]byte(nil), v...)
		}
	}
	return out, nil
}

// RunInTransaction 缓冲写入，fn 成功后一次性应用
func (m *MockBadgerStore) RunInTransaction(ctx context.Context, fn func(tx storage.BadgerTransaction) error) error {
	tx := &mockTx{store: m, writes: make(map[string][]byte), deletes: make(map[string]bool)}
	if err := fn(tx); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.FailWrites {
		return errMockWrite
	}
	for k := range tx.deletes {
		delete(m.data, k)
	}
	for k, v := range tx.writes {
		m.data[k] = v
	}
	return nil
}

type mockTx struct {
	store   *MockBadgerStore
	writes  map[string][]byte
	deletes map[string]bool
}

func (t *mockTx) Get(key []byte) ([]byte, error) {
	if v, ok := t.writes[string(key)]; ok {
		return append([]byte(nil), v...), nil
	}
	if t.deletes[string(key)] {
		return nil, nil
	}
	return t.store.Get(context.Background(), key)
}

func (t *mockTx) Set(key, value []byte) error {
	delete(t.deletes, string(key))
	t.writes[string(key)] = append([]byte(nil), value...)
	return nil
}

func (t *mockTx) Delete(key []byte) error {
	delete(t.writes, string(key))
	t.deletes[string(key)] = true
	return nil
}

var (
	_ log.Logger          = (*MockLogger)(nil)
	_ log.Logger          = (*BehavioralMockLogger)(nil)
	_ storage.BadgerStore = (*MockBadgerStore)(nil)
)
