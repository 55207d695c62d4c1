package event

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventconfig "github.com/weisyn/taxledger/internal/config/event"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/event"
)

// TestEventBus 测试同步与异步订阅
func TestEventBus(t *testing.T) {
	eventBus := New(eventconfig.New(nil))

	var receivedData string
	handler := func(data string) {
		receivedData = data
	}
	require.NoError(t, eventBus.Subscribe(event.EventType("test-event"), handler))

	eventBus.Publish(event.EventType("test-event"), "hello world")
	assert.Equal(t, "hello world", receivedData)

	var asyncData string
	var asyncWg sync.WaitGroup
	asyncWg.Add(1)
	asyncHandler := func(data string) {
		asyncData = data
		asyncWg.Done()
	}
	require.NoError(t, eventBus.SubscribeAsync(event.EventType("async-event"), asyncHandler, false))

	eventBus.Publish(event.EventType("async-event"), "async data")
	eventBus.WaitAsync()
	asyncWg.Wait()
	assert.Equal(t, "async data", asyncData)

	require.NoError(t, eventBus.Unsubscribe(event.EventType("test-event"), handler))
	assert.False(t, eventBus.HasCallback(event.EventType("test-event")))
}

// TestEventBus_Disabled 测试禁用时静默
func TestEventBus_Disabled(t *testing.T) {
	eventBus := New(eventconfig.NewFromOptions(&eventconfig.EventOptions{Enabled: false, HistorySize: 10}))

	called := false
	require.NoError(t, eventBus.Subscribe(event.EventType("x"), func() { called = true }))
	eventBus.Publish(event.EventType("x"))

	assert.False(t, called)
	assert.False(t, eventBus.HasCallback(event.EventType("x")))
	assert.Nil(t, eventBus.GetEventHistory(event.EventType("x")))
}

// TestEventBus_SubscriberLimit 测试订阅者上限
func TestEventBus_SubscriberLimit(t *testing.T) {
	eventBus := New(eventconfig.NewFromOptions(&eventconfig.EventOptions{Enabled: true, MaxSubscribers: 1}))

	h1 := func() {}
	h2 := func() {}
	require.NoError(t, eventBus.Subscribe(event.EventType("limited"), h1))
	assert.Error(t, eventBus.Subscribe(event.EventType("limited"), h2))

	require.NoError(t, eventBus.Unsubscribe(event.EventType("limited"), h1))
	assert.NoError(t, eventBus.Subscribe(event.EventType("limited"), h2))
}

// TestEventBus_History 测试有界历史
func TestEventBus_History(t *testing.T) {
	eventBus := New(eventconfig.NewFromOptions(&eventconfig.EventOptions{Enabled: true, HistorySize: 2}))

	eventBus.Publish(event.EventType("h"), 1)
	eventBus.Publish(event.EventType("h"), 2)
	eventBus.Publish(event.EventType("h"), 3, "extra")

	history := eventBus.GetEventHistory(event.EventType("h"))
	require.Len(t, history, 2)
	assert.Equal(t, []interface{}{2}, history[0].Args)
	assert.Equal(t, []interface{}{3, "extra"}, history[1].Args)
	assert.Nil(t, eventBus.GetEventHistory(event.EventType("none")))
}

// TestEventBus_Lifecycle 测试启动与停止
func TestEventBus_Lifecycle(t *testing.T) {
	eventBus := New(eventconfig.New(nil))
	ctx := context.Background()

	require.NoError(t, eventBus.Start(ctx))
	assert.True(t, eventBus.IsRunning())
	assert.Error(t, eventBus.Start(ctx))

	require.NoError(t, eventBus.Stop(ctx))
	assert.False(t, eventBus.IsRunning())
	assert.Error(t, eventBus.Stop(ctx))
}
