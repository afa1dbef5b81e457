package bip32

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestBIP32Vector1Master(t *testing.T) {
	seed := seedFromHex(t, "000102030405060708090a0b0c0d0e0f")
	node, err := FromSeed(seed)
	require.NoError(t, err)

	xprv, err := node.Serialize(MainnetPrivVersion)
	require.NoError(t, err)
	assert.Equal(t,
		"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		xprv)
	assert.Len(t, xprv, ExtendedKeyStrLen)
}

func TestBIP32Vector1HardenedChild(t *testing.T) {
	seed := seedFromHex(t, "000102030405060708090a0b0c0d0e0f")
	master, err := FromSeed(seed)
	require.NoError(t, err)

	child, err := master.CKDPriv(HardenedOffset + 0)
	require.NoError(t, err)

	xprv, err := child.Serialize(MainnetPrivVersion)
	require.NoError(t, err)
	assert.Equal(t,
		"xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
		xprv)
}

func TestCKDPrivNonHardened(t *testing.T) {
	seed := seedFromHex(t, "000102030405060708090a0b0c0d0e0f")
	master, err := FromSeed(seed)
	require.NoError(t, err)

	child, err := master.CKDPriv(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), child.Depth)
	assert.Equal(t, uint32(0), child.ChildNum)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	seed := seedFromHex(t, "000102030405060708090a0b0c0d0e0f")
	master, err := FromSeed(seed)
	require.NoError(t, err)

	xprv, err := master.Serialize(MainnetPrivVersion)
	require.NoError(t, err)

	back, version, err := Deserialize(xprv)
	require.NoError(t, err)
	assert.Equal(t, MainnetPrivVersion, version)
	assert.Equal(t, master.PrivateKey, back.PrivateKey)
	assert.Equal(t, master.ChainCode, back.ChainCode)
	assert.Equal(t, master.PublicKey, back.PublicKey)
}

func TestDeserializeRejectsBadChecksum(t *testing.T) {
	seed := seedFromHex(t, "000102030405060708090a0b0c0d0e0f")
	master, err := FromSeed(seed)
	require.NoError(t, err)
	xprv, err := master.Serialize(MainnetPrivVersion)
	require.NoError(t, err)

	corrupted := []byte(xprv)
	if corrupted[len(corrupted)-1] == 'a' {
		corrupted[len(corrupted)-1] = 'b'
	} else {
		corrupted[len(corrupted)-1] = 'a'
	}
	_, _, err = Deserialize(string(corrupted))
	assert.Error(t, err)
}

func TestZeroClearsSecretFields(t *testing.T) {
	seed := seedFromHex(t, "000102030405060708090a0b0c0d0e0f")
	node, err := FromSeed(seed)
	require.NoError(t, err)

	node.Zero()
	var zero32 [32]byte
	var zero33 [33]byte
	assert.Equal(t, zero32, node.PrivateKey)
	assert.Equal(t, zero32, node.ChainCode)
	assert.Equal(t, zero33, node.PublicKey)
}
