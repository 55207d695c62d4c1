// Package unit 原子单元门
//
// 每个公开写入口在进入时获取单元门，退出时提交账本日志并释放。
// 进入时生成的 token 绑定到返回的 context 上，持有该 context 的重入调用
// （例如交易场所在兑换过程中回调引擎）直接加入当前单元，不会死锁。
package unit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Committer 单元结束时提交的账本
type Committer interface {
	Commit()
}

// Gate 单元门
type Gate struct {
	mu sync.Mutex

	// tokenMu 保护 token，只读访问不需要持有 mu
	tokenMu sync.RWMutex
	token   string

	committer Committer
}

// New 创建单元门
func New(committer Committer) *Gate {
	return &Gate{committer: committer}
}

// Enter 进入原子单元
//
// 返回的 release 必须调用且只调用一次。重入时 release 为空操作。
func (g *Gate) Enter(ctx context.Context) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	if g.Joined(ctx) {
		return ctx, func() {}
	}

	g.mu.Lock()
	token := uuid.NewString()
	g.setToken(token)

	var once sync.Once
	return WithToken(ctx, token), func() {
		once.Do(func() {
			if g.committer != nil {
				g.committer.Commit()
			}
			g.setToken("")
			g.mu.Unlock()
		})
	}
}

// Joined ctx 是否属于当前正在执行的单元
func (g *Gate) Joined(ctx context.Context) bool {
	token := TokenFromContext(ctx)
	if token == "" {
		return false
	}
	g.tokenMu.RLock()
	defer g.tokenMu.RUnlock()
	return token == g.token
}

func (g *Gate) setToken(token string) {
	g.tokenMu.Lock()
	g.token = token
	g.tokenMu.Unlock()
}
