// Package report assembles the caller-facing payload for a command, a
// signature, or an array of (value, script) pairs, without ever
// carrying secret material through it. JSON is produced with
// goccy/go-json, a drop-in encoding/json replacement.
package report

import (
	"encoding/hex"

	json "github.com/goccy/go-json"

	"github.com/not-for-prod/walletcore/internal/werr"
)

// Report is the envelope every entry point returns to its caller.
type Report struct {
	Command string `json:"command"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FillReport builds the envelope for command, with payload on success
// or the error's Kind name on failure. It never inspects payload for
// secret material; callers must only pass already-public fields.
func FillReport(command string, payload any, err error) Report {
	r := Report{Command: command, Payload: payload}
	if err != nil {
		kind, _ := werr.KindOf(err)
		r.Error = kind.String()
	}
	return r
}

// Signature is the payload for a completed sign operation: the 64-byte
// low-S signature and the 33-byte compressed public key that verifies
// it, both hex-encoded.
type Signature struct {
	Sig    string `json:"sig"`
	PubKey string `json:"pubkey"`
}

// FillSignature builds a Signature payload from raw bytes.
func FillSignature(sig, pubKey []byte) Signature {
	return Signature{
		Sig:    hex.EncodeToString(sig),
		PubKey: hex.EncodeToString(pubKey),
	}
}

// OutputEntry is one row of the JSON array the output enumerator
// produces, keyed "value"/"script".
type OutputEntry struct {
	Value  uint64 `json:"value"`
	Script string `json:"script"`
}

// FillJSONArray assembles the non-change outputs surfaced to the
// caller for confirmation.
func FillJSONArray(entries []OutputEntry) ([]byte, error) {
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, werr.Wrap(werr.ERROR, "marshal output array", err)
	}
	return b, nil
}

// Marshal encodes any report envelope, for command dispatchers that
// sit above this package.
func Marshal(r Report) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, werr.Wrap(werr.ERROR, "marshal report", err)
	}
	return b, nil
}
