package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	configtypes "github.com/weisyn/taxledger/pkg/types"
)

// TestNew 测试配置创建
func TestNew(t *testing.T) {
	t.Run("创建默认配置", func(t *testing.T) {
		config := New(nil)
		assert.NotNil(t, config)
		assert.NotNil(t, config.options)

		assert.True(t, config.IsEnabled())
		assert.Equal(t, defaultMaxSubscribers, config.GetMaxSubscribers())
		assert.Equal(t, defaultHistorySize, config.GetHistorySize())
	})

	t.Run("应用用户配置", func(t *testing.T) {
		enabled := false
		maxSubs := 7
		config := New(&configtypes.UserEventConfig{Enabled: &enabled, MaxSubscribers: &maxSubs})

		assert.False(t, config.IsEnabled())
		assert.Equal(t, 7, config.GetMaxSubscribers())
	})

	t.Run("忽略非法订阅者数量", func(t *testing.T) {
		maxSubs := 0
		config := New(&configtypes.UserEventConfig{MaxSubscribers: &maxSubs})
		assert.Equal(t, defaultMaxSubscribers, config.GetMaxSubscribers())
	})
}

// TestNewFromOptions 测试从选项创建
func TestNewFromOptions(t *testing.T) {
	assert.True(t, NewFromOptions(nil).IsEnabled())

	config := NewFromOptions(&EventOptions{Enabled: false, HistorySize: 3})
	assert.False(t, config.IsEnabled())
	assert.Equal(t, 3, config.GetHistorySize())
}
