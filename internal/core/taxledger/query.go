package taxledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/taxledger/pkg/types"
)

// FeeSchedule 当前费率表
func (e *Engine) FeeSchedule() types.FeeSchedule {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Schedule
}

// Rates 指定方向的费率
func (e *Engine) Rates(d types.Direction) types.FeeRates {
	return e.FeeSchedule().Rates(d)
}

// IsExcluded 是否在免费名单
func (e *Engine) IsExcluded(addr common.Address) bool {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Exclusions.IsExcluded(addr)
}

// Exclusions 免费名单
func (e *Engine) Exclusions() []common.Address {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Exclusions.List()
}

// IsVenue (地址, 档位) 是否注册
func (e *Engine) IsVenue(addr common.Address, tier uint32) bool {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Venues.IsMember(addr, tier)
}

// IsAnyVenue 地址是否在任一档位注册
func (e *Engine) IsAnyVenue(addr common.Address) bool {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Venues.IsAnyMember(addr)
}

// Venues 全部交易场所注册项
func (e *Engine) Venues() []types.VenueKey {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Venues.List()
}

// TreasuryBalance 国库余额
func (e *Engine) TreasuryBalance() *uint256.Int {
	return e.ledger.BalanceOf(e.st.Self)
}

// AccruedShares 自上次兑换以来累计的费用份额
func (e *Engine) AccruedShares() types.FeeShares {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Accrued
}

// SwapConfig 兑换配置
func (e *Engine) SwapConfig() types.SwapConfig {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Swap
}

// MarketingWallet 营销钱包
func (e *Engine) MarketingWallet() common.Address {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.MarketingWallet
}

// LiquidityReceiver 流动性收益接收地址
func (e *Engine) LiquidityReceiver() common.Address {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.LiquidityReceiver
}

// BalanceOf 余额
func (e *Engine) BalanceOf(addr common.Address) *uint256.Int {
	return e.ledger.BalanceOf(addr)
}

// TotalSupply 总量
func (e *Engine) TotalSupply() *uint256.Int {
	return e.ledger.TotalSupply()
}

// Authority 治理地址，放弃后为零地址
func (e *Engine) Authority() common.Address {
	e.st.RLock()
	defer e.st.RUnlock()
	return e.st.Authority
}

// SelfAddress 账本自身地址
func (e *Engine) SelfAddress() common.Address {
	return e.st.Self
}

// Metadata 代币元数据，TotalSupply 取账本当前值
func (e *Engine) Metadata() types.TokenMetadata {
	e.st.RLock()
	md := e.st.Metadata
	e.st.RUnlock()
	md.TotalSupply = e.ledger.TotalSupply()
	return md
}
