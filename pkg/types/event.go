// Package types provides event type definitions.
package types

import "time"

// EventType 事件类型
type EventType string

// EventRecord 事件历史记录
type EventRecord struct {
	Type      EventType     `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Args      []interface{} `json:"args"`
}
