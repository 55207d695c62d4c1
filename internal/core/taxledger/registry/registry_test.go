package registry

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/taxledger/pkg/types"
)

var (
	pool  = common.HexToAddress("0x9001")
	other = common.HexToAddress("0x9002")
)

func TestVenueRegistry_MultiTier(t *testing.T) {
	r := NewVenueRegistry()
	assert.False(t, r.IsAnyMember(pool))

	require.NoError(t, r.Register(pool, 500, true))
	require.NoError(t, r.Register(pool, 3000, true))
	assert.True(t, r.IsMember(pool, 500))
	assert.False(t, r.IsMember(pool, 10000))
	assert.True(t, r.IsAnyMember(pool))
	assert.Equal(t, []uint32{500, 3000}, r.Tiers(pool))

	require.NoError(t, r.Register(pool, 500, false))
	assert.True(t, r.IsAnyMember(pool), "仍有档位注册")

	require.NoError(t, r.Register(pool, 3000, false))
	assert.False(t, r.IsAnyMember(pool))
	assert.Empty(t, r.List())
}

func TestVenueRegistry_Duplicate(t *testing.T) {
	r := NewVenueRegistry()
	err := r.Register(pool, 500, false)
	require.Error(t, err)
	assert.Equal(t, "Pool already in this status", err.Error())
	assert.False(t, r.IsAnyMember(pool), "取消未注册的档位不能影响计数")

	require.NoError(t, r.Register(pool, 500, true))
	assert.ErrorIs(t, r.Register(pool, 500, true), types.ErrVenueUnchanged)
}

func TestVenueRegistry_List(t *testing.T) {
	r := NewVenueRegistry()
	require.NoError(t, r.Register(other, 1, true))
	require.NoError(t, r.Register(pool, 3000, true))
	require.NoError(t, r.Register(pool, 500, true))

	assert.Equal(t, []types.VenueKey{
		{Address: pool, Tier: 500},
		{Address: pool, Tier: 3000},
		{Address: other, Tier: 1},
	}, r.List())
}

func TestExclusionRegistry(t *testing.T) {
	r := NewExclusionRegistry()
	assert.False(t, r.IsExcluded(pool))

	require.NoError(t, r.Set(pool, true))
	assert.True(t, r.IsExcluded(pool))

	err := r.Set(pool, true)
	assert.ErrorIs(t, err, types.ErrExclusionUnchanged)
	assert.Equal(t, "Account is already the value of 'excluded'", err.Error())

	require.NoError(t, r.Set(pool, false))
	assert.False(t, r.IsExcluded(pool))
	assert.ErrorIs(t, r.Set(pool, false), types.ErrDuplicateState)
	assert.Empty(t, r.List())
}
