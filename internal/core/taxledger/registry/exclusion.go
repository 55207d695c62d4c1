package registry

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/taxledger/pkg/types"
)

// ExclusionRegistry 免费名单，名单内账户作为任意一方时都不收费
type ExclusionRegistry struct {
	excluded map[common.Address]struct{}
}

// NewExclusionRegistry 创建免费名单
func NewExclusionRegistry() *ExclusionRegistry {
	return &ExclusionRegistry{excluded: make(map[common.Address]struct{})}
}

// IsExcluded 查询
func (r *ExclusionRegistry) IsExcluded(addr common.Address) bool {
	_, ok := r.excluded[addr]
	return ok
}

// Set 设置免费状态，状态未变化时返回 ErrExclusionUnchanged
func (r *ExclusionRegistry) Set(addr common.Address, excluded bool) error {
	if r.IsExcluded(addr) == excluded {
		return types.ErrExclusionUnchanged
	}
	if excluded {
		r.excluded[addr] = struct{}{}
	} else {
		delete(r.excluded, addr)
	}
	return nil
}

// List 返回名单，按地址排序
func (r *ExclusionRegistry) List() []common.Address {
	out := make([]common.Address, 0, len(r.excluded))
	for addr := range r.excluded {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}
