package derivation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/not-for-prod/walletcore/internal/bip32"
)

func TestParsePathRequiresMPrefix(t *testing.T) {
	_, err := ParsePath("0/1")
	assert.Error(t, err)
}

func TestParsePathRoot(t *testing.T) {
	levels, err := ParsePath("m/")
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestParsePathHardenedMarkers(t *testing.T) {
	for _, marker := range []string{"'", "h", "H", "p"} {
		levels, err := ParsePath("m/44" + marker + "/0")
		require.NoError(t, err)
		require.Len(t, levels, 2)
		assert.True(t, levels[0].Hardened)
		assert.Equal(t, uint32(44), levels[0].Index)
		assert.False(t, levels[1].Hardened)
	}
}

func TestParsePathRejectsNonNumeric(t *testing.T) {
	_, err := ParsePath("m/0/xyz")
	assert.Error(t, err)
}

func TestParsePathRejectsOversizedIndex(t *testing.T) {
	_, err := ParsePath("m/99999999999")
	assert.Error(t, err)
}

func TestGenerateKeyMatchesDirectCKD(t *testing.T) {
	seed := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	master, err := bip32.FromSeed(seed)
	require.NoError(t, err)

	direct, err := master.CKDPriv(bip32.HardenedOffset + 0)
	require.NoError(t, err)

	viaPath, err := GenerateKey("m/0'", master.PrivateKey, master.ChainCode)
	require.NoError(t, err)

	assert.Equal(t, direct.PrivateKey, viaPath.PrivateKey)
	assert.Equal(t, direct.ChainCode, viaPath.ChainCode)
	assert.Equal(t, direct.Fingerprint, viaPath.Fingerprint)
}

func TestGenerateKeyPropagatesParseError(t *testing.T) {
	seed := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	master, err := bip32.FromSeed(seed)
	require.NoError(t, err)

	_, err = GenerateKey("m/0/xyz", master.PrivateKey, master.ChainCode)
	assert.Error(t, err)
}
