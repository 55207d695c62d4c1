// Package clock 定义时间源接口
package clock

import "time"

// Clock 提供统一的时间源接口（基础设施层接口）
//
// 兑换周期耗时统计通过该接口取时，测试中可替换为可控时钟。
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration

	// Unix 获取当前Unix时间戳（秒）
	Unix() int64

	// UnixNano 获取当前Unix时间戳（纳秒）
	UnixNano() int64
}
