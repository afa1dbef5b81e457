package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/not-for-prod/walletcore/internal/werr"
)

func TestSeededFalseOnFreshStore(t *testing.T) {
	store := NewMemoryStore()
	seeded, err := Seeded(store)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestSeededTrueAfterWrite(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.WriteMaster([32]byte{1}))
	require.NoError(t, store.WriteChainCode([32]byte{2}))

	seeded, err := Seeded(store)
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestAcquireFailsKeyMasterWhenUnseeded(t *testing.T) {
	store := NewMemoryStore()
	_, err := Acquire(store)
	require.Error(t, err)
	kind, ok := werr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, werr.KeyMaster, kind)
}

func TestAcquireSucceedsWhenSeeded(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.WriteMaster([32]byte{9}))
	require.NoError(t, store.WriteChainCode([32]byte{8}))

	m, err := Acquire(store)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{9}, m.Master)
	assert.Equal(t, [32]byte{8}, m.ChainCode)

	m.Release()
	assert.Equal(t, [32]byte{}, m.Master)
	assert.Equal(t, [32]byte{}, m.ChainCode)
}

func TestZeroClearsBuffer(t *testing.T) {
	buf := [32]byte{1, 2, 3}
	Zero(&buf)
	assert.Equal(t, [32]byte{}, buf)
}

func TestEraseResetsToSentinel(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.WriteMaster([32]byte{1}))
	store.Erase()

	master, err := store.ReadMaster()
	require.NoError(t, err)
	assert.Equal(t, ErasedSentinel, master)
}
