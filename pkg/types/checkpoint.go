package types

import "github.com/ethereum/go-ethereum/common"

// CheckpointVersion 当前检查点格式版本
const CheckpointVersion = 1

// Checkpoint 账本持久化快照
//
// 金额统一编码为十进制字符串。
type Checkpoint struct {
	Version int `json:"version"`

	Metadata struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals uint8  `json:"decimals"`
	} `json:"metadata"`

	Authority         common.Address `json:"authority"`
	Self              common.Address `json:"self"`
	MarketingWallet   common.Address `json:"marketing_wallet"`
	LiquidityReceiver common.Address `json:"liquidity_receiver"`

	Schedule      FeeSchedule `json:"schedule"`
	SwapThreshold string      `json:"swap_threshold"`
	SwapEnabled   bool        `json:"swap_enabled"`

	AccruedLiquidity string `json:"accrued_liquidity"`
	AccruedMarketing string `json:"accrued_marketing"`

	Venues     []VenueKey       `json:"venues"`
	Exclusions []common.Address `json:"exclusions"`

	TotalSupply string                    `json:"total_supply"`
	Balances    map[common.Address]string `json:"balances"`
	Contracts   []common.Address          `json:"contracts,omitempty"`
}
