package derivation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBIP44PathFormat(t *testing.T) {
	assert.Equal(t, "m/44'/0'/0'/0/5", BIP44Path(0, 0, 0, 5))
	assert.Equal(t, "m/44'/60'/1'/1/0", BIP44Path(60, 1, 1, 0))
}

func TestBIP44PathParsesCleanly(t *testing.T) {
	levels, err := ParsePath(BIP44Path(0, 2, 1, 7))
	require.NoError(t, err)
	require.Len(t, levels, 5)
	assert.True(t, levels[0].Hardened)
	assert.Equal(t, uint32(44), levels[0].Index)
	assert.False(t, levels[3].Hardened)
	assert.Equal(t, uint32(7), levels[4].Index)
}
