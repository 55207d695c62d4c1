// Package taxledger 定义费用账本的对外接口与外部协作方端口
//
// 📋 **接口分层**
//
//   - Ledger: 基础账本原语（余额、总量、合约标记、快照回滚）
//   - Venue: 外部交易场所，负责把国库代币兑换为参考货币
//   - Engine: 费用账本引擎，转账、治理与查询的统一入口
//   - StateStore: 账本检查点的持久化
package taxledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Ledger 基础账本原语
//
// 所有写操作都记录到日志中，可通过 Snapshot/RevertToSnapshot 回滚，
// Commit 清空日志并使当前状态成为新的基线。
type Ledger interface {
	// BalanceOf 查询余额，返回副本
	BalanceOf(addr common.Address) *uint256.Int

	// TotalSupply 查询总量，返回副本
	TotalSupply() *uint256.Int

	// Mint 增发到指定地址
	Mint(to common.Address, amount *uint256.Int) error

	// Move 在两个地址之间移动余额，余额不足时返回 ErrTransferExceedsBalance
	Move(from, to common.Address, amount *uint256.Int) error

	// IsContract 地址是否带有合约代码标记
	IsContract(addr common.Address) bool

	// Contracts 返回所有带合约标记的地址
	Contracts() []common.Address

	// Accounts 返回所有非零余额的副本
	Accounts() map[common.Address]*uint256.Int

	// Snapshot 创建快照并返回快照ID
	Snapshot() int

	// RevertToSnapshot 回滚到指定快照
	RevertToSnapshot(id int)

	// Commit 提交当前状态，清空日志
	Commit()
}
