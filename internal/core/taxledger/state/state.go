// Package state 费用账本的可变状态
//
// State 由引擎显式持有并以指针传给分类器、兑换触发器和治理模块。
// 写入只发生在原子单元内部，写入方在修改期间持有写锁；
// 单元外部的只读查询使用读锁。
package state

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/taxledger/internal/core/taxledger/registry"
	"github.com/weisyn/taxledger/pkg/types"
)

// State 账本状态
type State struct {
	sync.RWMutex

	// Self 账本自身地址，国库余额即该地址在账本中的余额
	Self common.Address
	// Authority 治理地址，零地址表示已放弃治理权
	Authority common.Address

	Metadata types.TokenMetadata

	Schedule   types.FeeSchedule
	Venues     *registry.VenueRegistry
	Exclusions *registry.ExclusionRegistry

	Swap              types.SwapConfig
	MarketingWallet   common.Address
	LiquidityReceiver common.Address

	// Accrued 自上次成功兑换以来累计的费用份额
	Accrued types.FeeShares
}

// New 创建空状态
func New(self, authority common.Address) *State {
	return &State{
		Self:       self,
		Authority:  authority,
		Venues:     registry.NewVenueRegistry(),
		Exclusions: registry.NewExclusionRegistry(),
	}
}

// Accrue 累加一笔费用份额，调用方持有写锁
func (s *State) Accrue(liquidity, marketing *uint256.Int) {
	s.Accrued.Liquidity.Add(&s.Accrued.Liquidity, liquidity)
	s.Accrued.Marketing.Add(&s.Accrued.Marketing, marketing)
}

// ResetAccrued 清零累计份额，调用方持有写锁
func (s *State) ResetAccrued() {
	s.Accrued = types.FeeShares{}
}
