package txparse

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// txHexTwoOutputs is a minimal legacy transaction: one input with an
// empty scriptSig, two P2PKH outputs, no witness, no locktime (locktime
// is outside the range GetOutputs returns, so its absence here does
// not affect the outputs it parses).
const txHexTwoOutputs = "010000000100000000000000000000000000000000000000000000000000000000000000000000000000ffffffff02e8030000000000001976a914111111111111111111111111111111111111111188acd0070000000000001976a914222222222222222222222222222222222222222288ac"

func TestGetOutputsExtractsOutputSection(t *testing.T) {
	outputs, err := GetOutputs(txHexTwoOutputs)
	require.NoError(t, err)
	assert.True(t, len(outputs) > 0)
	assert.Equal(t, "02", outputs[:2]) // out_cnt varint
}

func TestGetOutputsRejectsTruncated(t *testing.T) {
	_, err := GetOutputs(txHexTwoOutputs[:20])
	assert.Error(t, err)
}

func TestParseOutputsDecodesValuesAndScripts(t *testing.T) {
	outputsHex, err := GetOutputs(txHexTwoOutputs)
	require.NoError(t, err)

	outputs, err := ParseOutputs(outputsHex)
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, uint64(1000), outputs[0].Value)
	assert.Equal(t, uint64(2000), outputs[1].Value)
	assert.Equal(t, "76a914"+"1111111111111111111111111111111111111111"+"88ac", outputs[0].Script)
}

func TestGetOutputsBytesMatchesHexForm(t *testing.T) {
	raw, err := hex.DecodeString(txHexTwoOutputs)
	require.NoError(t, err)

	outBytes, err := GetOutputsBytes(raw)
	require.NoError(t, err)

	outHex, err := GetOutputs(txHexTwoOutputs)
	require.NoError(t, err)

	assert.Equal(t, outHex, hex.EncodeToString(outBytes))
}
