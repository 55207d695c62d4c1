// Package persistence 账本检查点的 BadgerDB 存储
//
// 键布局：
//
//	taxledger/checkpoint     当前检查点（JSON）
//	taxledger/meta/sequence  已保存次数（十进制）
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/storage"
	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

var (
	checkpointKey = []byte("taxledger/checkpoint")
	sequenceKey   = []byte("taxledger/meta/sequence")
)

// Store 检查点存储
type Store struct {
	db     storage.BadgerStore
	logger log.Logger
}

var _ iface.StateStore = (*Store)(nil)

// New 创建检查点存储
func New(db storage.BadgerStore, logger log.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Save 在单个事务内写入检查点并递增序号
func (s *Store) Save(ctx context.Context, cp *types.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("序列化检查点失败: %w", err)
	}

	var seq uint64
	err = s.db.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		raw, err := tx.Get(sequenceKey)
		if err != nil {
			return err
		}
		if raw != nil {
			if seq, err = strconv.ParseUint(string(raw), 10, 64); err != nil {
				return fmt.Errorf("检查点序号损坏: %w", err)
			}
		}
		seq++
		if err := tx.Set(checkpointKey, data); err != nil {
			return err
		}
		return tx.Set(sequenceKey, []byte(strconv.FormatUint(seq, 10)))
	})
	if err != nil {
		return fmt.Errorf("保存检查点失败: %w", err)
	}

	if s.logger != nil {
		s.logger.Infof("检查点已保存: sequence=%d accounts=%d bytes=%d", seq, len(cp.Balances), len(data))
	}
	return nil
}

// Load 读取检查点，不存在时返回 nil, nil
func (s *Store) Load(ctx context.Context) (*types.Checkpoint, error) {
	data, err := s.db.Get(ctx, checkpointKey)
	if err != nil {
		return nil, fmt.Errorf("读取检查点失败: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var cp types.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("解析检查点失败: %w", err)
	}
	return &cp, nil
}

// Sequence 已保存的检查点次数
func (s *Store) Sequence(ctx context.Context) (uint64, error) {
	raw, err := s.db.Get(ctx, sequenceKey)
	if err != nil || raw == nil {
		return 0, err
	}
	return strconv.ParseUint(string(raw), 10, 64)
}
