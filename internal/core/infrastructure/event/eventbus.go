// 基于asaskevich/EventBus的事件总线实现

package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	evbus "github.com/asaskevich/EventBus"
	eventconfig "github.com/weisyn/taxledger/internal/config/event"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taxledger/pkg/types"
)

// EventBus 是基于asaskevich/EventBus的实现
//
// 在底层总线之上增加：
// - 启用开关
// - 单事件类型的订阅者上限
// - 有界的事件历史
type EventBus struct {
	// ================== 基础组件 ==================
	bus    evbus.Bus           // 底层事件总线
	config *eventconfig.Config // 配置

	// ================== 订阅计数 ==================
	subMu       sync.Mutex
	subscribers map[event.EventType]int

	// ================== 历史记录 ==================
	historyMu    sync.RWMutex
	eventHistory map[event.EventType][]types.EventRecord

	running atomic.Bool
}

// New 创建事件总线实例
// 所有事件总线实例必须通过此函数创建，确保配置被正确应用
func New(config *eventconfig.Config) *EventBus {
	return &EventBus{
		bus:          evbus.New(),
		config:       config,
		subscribers:  make(map[event.EventType]int),
		eventHistory: make(map[event.EventType][]types.EventRecord),
	}
}

// reserve 占用一个订阅名额
func (eb *EventBus) reserve(eventType event.EventType) error {
	eb.subMu.Lock()
	defer eb.subMu.Unlock()
	if max := eb.config.GetMaxSubscribers(); max > 0 && eb.subscribers[eventType] >= max {
		return fmt.Errorf("event %s: subscriber limit %d reached", eventType, max)
	}
	eb.subscribers[eventType]++
	return nil
}

// release 释放一个订阅名额
func (eb *EventBus) release(eventType event.EventType) {
	eb.subMu.Lock()
	defer eb.subMu.Unlock()
	if eb.subscribers[eventType] > 0 {
		eb.subscribers[eventType]--
	}
}

// Subscribe 实现订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil // 如果事件系统未启用，静默成功
	}
	if err := eb.reserve(eventType); err != nil {
		return err
	}
	if err := eb.bus.Subscribe(string(eventType), handler); err != nil {
		eb.release(eventType)
		return err
	}
	return nil
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	if err := eb.reserve(eventType); err != nil {
		return err
	}
	if err := eb.bus.SubscribeAsync(string(eventType), handler, transactional); err != nil {
		eb.release(eventType)
		return err
	}
	return nil
}

// SubscribeOnce 实现一次性订阅
// 一次性订阅不占用订阅名额
func (eb *EventBus) SubscribeOnce(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.SubscribeOnce(string(eventType), handler)
}

// Publish 实现发布
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if !eb.config.IsEnabled() {
		return
	}
	eb.saveEventToHistory(eventType, args)
	eb.bus.Publish(string(eventType), args...)
}

// PublishEvent 发布Event接口类型事件
func (eb *EventBus) PublishEvent(e event.Event) {
	if e == nil {
		return
	}
	eb.Publish(e.Type(), e.Data())
}

// saveEventToHistory 保存事件到有界历史
func (eb *EventBus) saveEventToHistory(eventType event.EventType, args []interface{}) {
	size := eb.config.GetHistorySize()
	if size <= 0 {
		return
	}

	record := types.EventRecord{
		Type:      eventType,
		Timestamp: time.Now(),
		Args:      append([]interface{}(nil), args...),
	}

	eb.historyMu.Lock()
	defer eb.historyMu.Unlock()
	history := append(eb.eventHistory[eventType], record)
	if len(history) > size {
		history = history[len(history)-size:]
	}
	eb.eventHistory[eventType] = history
}

// GetEventHistory 获取指定类型的事件历史
func (eb *EventBus) GetEventHistory(eventType event.EventType) []types.EventRecord {
	eb.historyMu.RLock()
	defer eb.historyMu.RUnlock()
	history := eb.eventHistory[eventType]
	if len(history) == 0 {
		return nil
	}
	return append([]types.EventRecord(nil), history...)
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	if err := eb.bus.Unsubscribe(string(eventType), handler); err != nil {
		return err
	}
	eb.release(eventType)
	return nil
}

// WaitAsync 等待异步处理完成
func (eb *EventBus) WaitAsync() {
	if !eb.config.IsEnabled() {
		return
	}
	eb.bus.WaitAsync()
}

// HasCallback 检查是否有回调
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	if !eb.config.IsEnabled() {
		return false
	}
	return eb.bus.HasCallback(string(eventType))
}

// ==================== 生命周期 ====================

// Start 启动事件总线
func (eb *EventBus) Start(ctx context.Context) error {
	if eb.running.Load() {
		return fmt.Errorf("event bus already running")
	}
	eb.running.Store(true)
	return nil
}

// Stop 停止事件总线
func (eb *EventBus) Stop(ctx context.Context) error {
	if !eb.running.Load() {
		return fmt.Errorf("event bus not running")
	}
	eb.running.Store(false)

	// 等待异步处理完成
	eb.WaitAsync()
	return nil
}

// IsRunning 检查事件总线是否运行中
func (eb *EventBus) IsRunning() bool {
	return eb.running.Load()
}

var _ event.EventBus = (*EventBus)(nil)
