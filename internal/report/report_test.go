package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/not-for-prod/walletcore/internal/werr"
)

func TestFillReportSuccessHasNoError(t *testing.T) {
	r := FillReport("sign", Signature{Sig: "ab"}, nil)
	assert.Equal(t, "sign", r.Command)
	assert.Empty(t, r.Error)
}

func TestFillReportFailureCarriesKindName(t *testing.T) {
	r := FillReport("sign", nil, werr.New(werr.SignHashLen, "bad length"))
	assert.Equal(t, "SIGN_HASH_LEN", r.Error)
}

func TestFillSignatureHexEncodes(t *testing.T) {
	sig := FillSignature([]byte{0xde, 0xad}, []byte{0xbe, 0xef})
	assert.Equal(t, "dead", sig.Sig)
	assert.Equal(t, "beef", sig.PubKey)
}

func TestFillJSONArrayRoundTrips(t *testing.T) {
	b, err := FillJSONArray([]OutputEntry{{Value: 1000, Script: "76a914"}})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"value":1000`)
	assert.Contains(t, string(b), `"script":"76a914"`)
}

func TestMarshalReport(t *testing.T) {
	b, err := Marshal(FillReport("getoutputs", []OutputEntry{{Value: 1, Script: "ab"}}, nil))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"command":"getoutputs"`)
}
