package address

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubKeyHash160RejectsBadLength(t *testing.T) {
	_, err := PubKeyHash160(make([]byte, 10))
	assert.Error(t, err)
}

func TestPubKeyHash160AcceptsInfinityMarker(t *testing.T) {
	hash, err := PubKeyHash160([]byte{0x00})
	require.NoError(t, err)
	assert.Len(t, hash, Hash160Len)
}

func TestPubKeyHash160RejectsBadCompressedPrefix(t *testing.T) {
	pub := make([]byte, 33)
	pub[0] = 0x05
	_, err := PubKeyHash160(pub)
	assert.Error(t, err)
}

func TestAddressLength(t *testing.T) {
	pub := make([]byte, 33)
	pub[0] = 0x02
	addr, err := Address(pub, MainnetP2PKHVersion)
	require.NoError(t, err)
	assert.Len(t, addr, 34)
}

func TestWIFRoundTripDecodesVersion(t *testing.T) {
	var priv [32]byte
	for i := range priv {
		priv[i] = byte(i + 1)
	}
	wif := WIF(priv, MainnetWIFVersion)
	assert.NotEmpty(t, wif)

	payload, version, err := base58.CheckDecode(wif)
	require.NoError(t, err)
	assert.Equal(t, MainnetWIFVersion, version)
	assert.Equal(t, append(priv[:], 0x01), payload)
}
