// Package registry 交易场所与免费名单注册表
package registry

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/taxledger/pkg/types"
)

// VenueRegistry 交易场所注册表
//
// 键为 (地址, 档位)，同一地址可在多个档位注册。
// IsAnyMember 只统计当前为 true 的档位。
type VenueRegistry struct {
	entries map[common.Address]map[uint32]bool
	active  map[common.Address]int
}

// NewVenueRegistry 创建注册表
func NewVenueRegistry() *VenueRegistry {
	return &VenueRegistry{
		entries: make(map[common.Address]map[uint32]bool),
		active:  make(map[common.Address]int),
	}
}

// IsMember 查询 (地址, 档位) 是否注册
func (r *VenueRegistry) IsMember(addr common.Address, tier uint32) bool {
	return r.entries[addr][tier]
}

// IsAnyMember 地址是否在任一档位注册
func (r *VenueRegistry) IsAnyMember(addr common.Address) bool {
	return r.active[addr] > 0
}

// Register 设置 (地址, 档位) 的注册状态
// 状态未变化时返回 ErrVenueUnchanged
func (r *VenueRegistry) Register(addr common.Address, tier uint32, present bool) error {
	if r.IsMember(addr, tier) == present {
		return types.ErrVenueUnchanged
	}
	r.set(addr, tier, present)
	return nil
}

func (r *VenueRegistry) set(addr common.Address, tier uint32, present bool) {
	tiers, ok := r.entries[addr]
	if !ok {
		tiers = make(map[uint32]bool)
		r.entries[addr] = tiers
	}
	if present {
		tiers[tier] = true
		r.active[addr]++
		return
	}
	delete(tiers, tier)
	if len(tiers) == 0 {
		delete(r.entries, addr)
	}
	if r.active[addr]--; r.active[addr] <= 0 {
		delete(r.active, addr)
	}
}

// Tiers 返回地址当前注册的档位，升序
func (r *VenueRegistry) Tiers(addr common.Address) []uint32 {
	tiers := make([]uint32, 0, len(r.entries[addr]))
	for tier, on := range r.entries[addr] {
		if on {
			tiers = append(tiers, tier)
		}
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	return tiers
}

// List 返回全部注册项，按地址和档位排序
func (r *VenueRegistry) List() []types.VenueKey {
	var out []types.VenueKey
	for addr := range r.entries {
		for _, tier := range r.Tiers(addr) {
			out = append(out, types.VenueKey{Address: addr, Tier: tier})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Address.Cmp(out[j].Address); c != 0 {
			return c < 0
		}
		return out[i].Tier < out[j].Tier
	})
	return out
}
