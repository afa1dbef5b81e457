package walletcore

import (
	"encoding/hex"
	"strings"

	"github.com/not-for-prod/walletcore/internal/address"
	"github.com/not-for-prod/walletcore/internal/derivation"
	"github.com/not-for-prod/walletcore/internal/report"
	"github.com/not-for-prod/walletcore/internal/secret"
	"github.com/not-for-prod/walletcore/internal/txparse"
	"github.com/not-for-prod/walletcore/internal/werr"
)

// GetOutputs walks a raw legacy transaction hex string and returns the
// substring covering its output section.
func (e *Engine) GetOutputs(txHex string) (string, error) {
	return txparse.GetOutputs(txHex)
}

// DeserializeOutputs parses outputsHex (as returned by GetOutputs) and
// applies the anti-MITM change-address policy: it requires the wallet
// seeded, derives the expected change HASH160 at changePath, and
// succeeds only if at least one output matches that change address or
// there is exactly one output — otherwise a multi-output transaction
// with no recognized change address is rejected as tampering.
func (e *Engine) DeserializeOutputs(outputsHex, changePath string) ([]report.OutputEntry, error) {
	seeded, err := secret.Seeded(e.store)
	if err != nil {
		return nil, err
	}
	if !seeded {
		return nil, werr.New(werr.KeyMaster, "wallet is not seeded")
	}

	outs, err := txparse.ParseOutputs(outputsHex)
	if err != nil {
		return nil, err
	}

	var changeHash160Hex string
	if changePath != "" {
		mat, err := secret.Acquire(e.store)
		if err != nil {
			return nil, err
		}

		node, err := derivation.GenerateKey(changePath, mat.Master, mat.ChainCode)
		mat.Release()
		if err != nil {
			e.log.WithError(err).WithField("path", changePath).Warn("change derivation failed")
			return nil, err
		}

		hash, err := address.PubKeyHash160(node.PublicKey[:])
		node.Zero()
		if err != nil {
			return nil, err
		}
		changeHash160Hex = hex.EncodeToString(hash[:])
	}

	entries := make([]report.OutputEntry, 0, len(outs))
	changeFound := false
	for _, out := range outs {
		if changeHash160Hex != "" && strings.Contains(out.Script, changeHash160Hex) {
			changeFound = true
			continue
		}
		entries = append(entries, report.OutputEntry{Value: out.Value, Script: out.Script})
	}

	if !changeFound && len(outs) != 1 {
		e.log.WithField("n_outputs", len(outs)).Warn("no recognized change address in multi-output transaction")
		return nil, werr.New(werr.ERROR, "multi-output transaction without a recognized change address")
	}
	return entries, nil
}
