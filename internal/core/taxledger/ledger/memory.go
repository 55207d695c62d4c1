// Package ledger 提供带日志回滚能力的内存账本
//
// 每次余额或总量修改都会把旧值写入日志；快照记录日志位置，
// 回滚时逆序撤销日志条目。Commit 清空日志。
package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	iface "github.com/weisyn/taxledger/pkg/interfaces/taxledger"
	"github.com/weisyn/taxledger/pkg/types"
)

// journalEntry 可撤销的修改
type journalEntry interface {
	revert(m *Memory)
}

type balanceChange struct {
	addr common.Address
	prev *uint256.Int // nil 表示修改前账户不存在
}

func (c balanceChange) revert(m *Memory) {
	if c.prev == nil {
		delete(m.balances, c.addr)
		return
	}
	m.balances[c.addr] = c.prev
}

type supplyChange struct {
	prev *uint256.Int
}

func (c supplyChange) revert(m *Memory) {
	m.supply = c.prev
}

type revision struct {
	id           int
	journalIndex int
}

// Memory 内存账本
type Memory struct {
	mu sync.RWMutex

	balances  map[common.Address]*uint256.Int
	supply    *uint256.Int
	contracts map[common.Address]struct{}

	journal        []journalEntry
	validRevisions []revision
	nextRevisionID int
}

var _ iface.Ledger = (*Memory)(nil)

// NewMemory 创建空账本
func NewMemory() *Memory {
	return &Memory{
		balances:  make(map[common.Address]*uint256.Int),
		supply:    new(uint256.Int),
		contracts: make(map[common.Address]struct{}),
	}
}

// Restore 从检查点数据重建账本
func Restore(balances map[common.Address]*uint256.Int, contracts []common.Address) *Memory {
	m := NewMemory()
	for addr, bal := range balances {
		if bal == nil || bal.IsZero() {
			continue
		}
		m.balances[addr] = new(uint256.Int).Set(bal)
		m.supply.Add(m.supply, bal)
	}
	for _, c := range contracts {
		m.contracts[c] = struct{}{}
	}
	return m
}

// MarkContract 标记地址带有合约代码，不进入日志
func (m *Memory) MarkContract(addr common.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contracts[addr] = struct{}{}
}

// BalanceOf 查询余额
func (m *Memory) BalanceOf(addr common.Address) *uint256.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if bal, ok := m.balances[addr]; ok {
		return new(uint256.Int).Set(bal)
	}
	return new(uint256.Int)
}

// TotalSupply 查询总量
func (m *Memory) TotalSupply() *uint256.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return new(uint256.Int).Set(m.supply)
}

// IsContract 地址是否带合约标记
func (m *Memory) IsContract(addr common.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.contracts[addr]
	return ok
}

// Contracts 返回所有合约地址
func (m *Memory) Contracts() []common.Address {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]common.Address, 0, len(m.contracts))
	for addr := range m.contracts {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

// Accounts 返回所有非零余额
func (m *Memory) Accounts() map[common.Address]*uint256.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[common.Address]*uint256.Int, len(m.balances))
	for addr, bal := range m.balances {
		if bal.IsZero() {
			continue
		}
		out[addr] = new(uint256.Int).Set(bal)
	}
	return out
}

// Mint 增发
func (m *Memory) Mint(to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return types.ErrMintToZero
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	supply, overflow := new(uint256.Int).AddOverflow(m.supply, amount)
	if overflow {
		return fmt.Errorf("增发后总量溢出: %w", types.ErrInvalidAmount)
	}
	m.journal = append(m.journal, supplyChange{prev: m.supply})
	m.supply = supply
	m.setBalance(to, new(uint256.Int).Add(m.balanceLocked(to), amount))
	return nil
}

// Move 移动余额
func (m *Memory) Move(from, to common.Address, amount *uint256.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fromBal := m.balanceLocked(from)
	if fromBal.Lt(amount) {
		return types.ErrTransferExceedsBalance
	}
	if amount.IsZero() || from == to {
		return nil
	}
	m.setBalance(from, new(uint256.Int).Sub(fromBal, amount))
	m.setBalance(to, new(uint256.Int).Add(m.balanceLocked(to), amount))
	return nil
}

func (m *Memory) balanceLocked(addr common.Address) *uint256.Int {
	if bal, ok := m.balances[addr]; ok {
		return bal
	}
	return new(uint256.Int)
}

// setBalance 写入新余额并记录旧值，值对象不可原地修改
func (m *Memory) setBalance(addr common.Address, bal *uint256.Int) {
	prev, ok := m.balances[addr]
	if !ok {
		prev = nil
	}
	m.journal = append(m.journal, balanceChange{addr: addr, prev: prev})
	m.balances[addr] = bal
}

// Snapshot 创建快照
func (m *Memory) Snapshot() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextRevisionID
	m.nextRevisionID++
	m.validRevisions = append(m.validRevisions, revision{id: id, journalIndex: len(m.journal)})
	return id
}

// RevertToSnapshot 回滚到快照，快照之后创建的快照一并失效
func (m *Memory) RevertToSnapshot(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := sort.Search(len(m.validRevisions), func(i int) bool {
		return m.validRevisions[i].id >= id
	})
	if idx == len(m.validRevisions) || m.validRevisions[idx].id != id {
		panic(fmt.Errorf("revision id %v cannot be reverted", id))
	}
	snapshot := m.validRevisions[idx].journalIndex

	for i := len(m.journal) - 1; i >= snapshot; i-- {
		m.journal[i].revert(m)
	}
	m.journal = m.journal[:snapshot]
	m.validRevisions = m.validRevisions[:idx]
}

// Commit 清空日志
func (m *Memory) Commit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journal = nil
	m.validRevisions = nil
}

// JournalLength 当前未提交的日志条目数
func (m *Memory) JournalLength() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.journal)
}
