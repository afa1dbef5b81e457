package walletcore

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/not-for-prod/walletcore/internal/address"
	"github.com/not-for-prod/walletcore/internal/bip32"
	"github.com/not-for-prod/walletcore/internal/derivation"
	"github.com/not-for-prod/walletcore/internal/secret"
	"github.com/not-for-prod/walletcore/internal/werr"
)

// Xprv derives the node at path and returns its Base58Check extended
// private key string.
func (e *Engine) Xprv(path string) (string, error) {
	mat, err := secret.Acquire(e.store)
	if err != nil {
		return "", err
	}
	defer mat.Release()

	node, err := derivation.GenerateKey(path, mat.Master, mat.ChainCode)
	if err != nil {
		e.log.WithError(err).WithField("path", path).Warn("derivation failed")
		return "", err
	}
	defer node.Zero()

	return node.Serialize(bip32.MainnetPrivVersion)
}

// Xpub derives the node at path and returns its Base58Check extended
// public key string.
func (e *Engine) Xpub(path string) (string, error) {
	mat, err := secret.Acquire(e.store)
	if err != nil {
		return "", err
	}
	defer mat.Release()

	node, err := derivation.GenerateKey(path, mat.Master, mat.ChainCode)
	if err != nil {
		e.log.WithError(err).WithField("path", path).Warn("derivation failed")
		return "", err
	}
	defer node.Zero()

	return node.SerializePublic(bip32.MainnetPubVersion)
}

// WIF derives the node at path and returns its private key in Wallet
// Import Format.
func (e *Engine) WIF(path string) (string, error) {
	mat, err := secret.Acquire(e.store)
	if err != nil {
		return "", err
	}
	defer mat.Release()

	node, err := derivation.GenerateKey(path, mat.Master, mat.ChainCode)
	if err != nil {
		e.log.WithError(err).WithField("path", path).Warn("derivation failed")
		return "", err
	}
	defer node.Zero()

	return address.WIF(node.PrivateKey, address.MainnetWIFVersion), nil
}

// ID returns the wallet's identifier: SHA256(xpub("m/")) as 64 hex
// characters.
func (e *Engine) ID() (string, error) {
	xpub, err := e.Xpub("m/")
	if err != nil {
		return "", werr.Wrap(werr.ERROR, "compute wallet id", err)
	}
	sum := sha256.Sum256([]byte(xpub))
	return hex.EncodeToString(sum[:]), nil
}
