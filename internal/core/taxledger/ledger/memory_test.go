package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/taxledger/pkg/types"
)

var (
	alice = common.HexToAddress("0xa1")
	bob   = common.HexToAddress("0xb0")
)

func TestMemory_MintAndMove(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Mint(alice, uint256.NewInt(1000)))
	assert.Equal(t, uint64(1000), m.TotalSupply().Uint64())

	require.NoError(t, m.Move(alice, bob, uint256.NewInt(300)))
	assert.Equal(t, uint64(700), m.BalanceOf(alice).Uint64())
	assert.Equal(t, uint64(300), m.BalanceOf(bob).Uint64())

	err := m.Move(bob, alice, uint256.NewInt(301))
	assert.ErrorIs(t, err, types.ErrTransferExceedsBalance)
	assert.Equal(t, uint64(300), m.BalanceOf(bob).Uint64())
}

func TestMemory_MintToZero(t *testing.T) {
	m := NewMemory()
	assert.ErrorIs(t, m.Mint(common.Address{}, uint256.NewInt(1)), types.ErrMintToZero)
}

func TestMemory_BalanceIsCopy(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Mint(alice, uint256.NewInt(10)))
	bal := m.BalanceOf(alice)
	bal.SetUint64(99)
	assert.Equal(t, uint64(10), m.BalanceOf(alice).Uint64())
}

func TestMemory_SnapshotRevert(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Mint(alice, uint256.NewInt(1000)))
	m.Commit()

	outer := m.Snapshot()
	require.NoError(t, m.Move(alice, bob, uint256.NewInt(100)))

	inner := m.Snapshot()
	require.NoError(t, m.Move(alice, bob, uint256.NewInt(200)))
	require.NoError(t, m.Mint(bob, uint256.NewInt(5)))

	m.RevertToSnapshot(inner)
	assert.Equal(t, uint64(900), m.BalanceOf(alice).Uint64())
	assert.Equal(t, uint64(100), m.BalanceOf(bob).Uint64())
	assert.Equal(t, uint64(1000), m.TotalSupply().Uint64())

	m.RevertToSnapshot(outer)
	assert.Equal(t, uint64(1000), m.BalanceOf(alice).Uint64())
	assert.True(t, m.BalanceOf(bob).IsZero())
	assert.NotContains(t, m.Accounts(), bob)
	assert.Equal(t, 0, m.JournalLength())
}

func TestMemory_RevertInvalidSnapshotPanics(t *testing.T) {
	m := NewMemory()
	id := m.Snapshot()
	m.Commit()
	assert.Panics(t, func() { m.RevertToSnapshot(id) })
}

func TestMemory_RestoreAndContracts(t *testing.T) {
	m := Restore(map[common.Address]*uint256.Int{
		alice: uint256.NewInt(7),
		bob:   uint256.NewInt(0),
	}, []common.Address{bob})

	assert.Equal(t, uint64(7), m.TotalSupply().Uint64())
	assert.Len(t, m.Accounts(), 1)
	assert.True(t, m.IsContract(bob))
	assert.False(t, m.IsContract(alice))

	m.MarkContract(alice)
	assert.Equal(t, []common.Address{alice, bob}, m.Contracts())
}
