package taxledger

import (
	"context"

	"github.com/weisyn/taxledger/pkg/types"
)

// StateStore 账本检查点存储
type StateStore interface {
	// Save 保存检查点，覆盖旧值
	Save(ctx context.Context, cp *types.Checkpoint) error

	// Load 读取检查点，不存在时返回 nil, nil
	Load(ctx context.Context) (*types.Checkpoint, error)
}
