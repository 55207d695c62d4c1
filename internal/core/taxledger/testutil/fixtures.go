package testutil

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ==================== 固定地址 ====================

var (
	Authority = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	Self      = common.HexToAddress("0x0000000000000000000000000000000000005e1f")
	Marketing = common.HexToAddress("0x000000000000000000000000000000000000ad00")
	Pool      = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	Pool2     = common.HexToAddress("0x0000000000000000000000000000000000000b0c")
	Trader1   = common.HexToAddress("0x0000000000000000000000000000000000007001")
	Trader2   = common.HexToAddress("0x0000000000000000000000000000000000007002")
	Trader3   = common.HexToAddress("0x0000000000000000000000000000000000007003")
)

// Units 构造金额
func Units(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}
