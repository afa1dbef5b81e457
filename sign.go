package walletcore

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/not-for-prod/walletcore/internal/address"
	"github.com/not-for-prod/walletcore/internal/derivation"
	"github.com/not-for-prod/walletcore/internal/report"
	"github.com/not-for-prod/walletcore/internal/secret"
	"github.com/not-for-prod/walletcore/internal/werr"
)

// Sign derives the node at path and produces a 64-byte low-S ECDSA
// signature over message.
//
// If toHash is false, message must be exactly 64 hex characters (a
// precomputed 32-byte digest), or the call fails with SIGN_HASH_LEN.
// If toHash is true, message is hashed with Bitcoin's double-SHA256
// before signing.
func (e *Engine) Sign(message, path string, toHash bool) (report.Signature, error) {
	if !toHash && len(message) != 64 {
		return report.Signature{}, werr.New(werr.SignHashLen, "precomputed digest must be 64 hex characters")
	}

	raw, err := hex.DecodeString(message)
	if err != nil {
		return report.Signature{}, werr.Wrap(werr.ERROR, "message is not valid hex", err)
	}

	digest := raw
	if toHash {
		first := sha256.Sum256(raw)
		second := sha256.Sum256(first[:])
		digest = second[:]
	}
	if len(digest) != 32 {
		return report.Signature{}, werr.New(werr.SignHashLen, "digest must be exactly 32 bytes")
	}

	mat, err := secret.Acquire(e.store)
	if err != nil {
		return report.Signature{}, err
	}
	defer mat.Release()

	node, err := derivation.GenerateKey(path, mat.Master, mat.ChainCode)
	if err != nil {
		e.log.WithError(err).WithField("path", path).Warn("derivation failed")
		return report.Signature{}, err
	}
	defer node.Zero()

	priv := secp256k1.PrivKeyFromBytes(node.PrivateKey[:])
	defer priv.Zero()

	sig := ecdsa.Sign(priv, digest)
	raw64, err := derToRaw64(sig.Serialize())
	if err != nil {
		return report.Signature{}, werr.Wrap(werr.SignECCLib, "encode signature", err)
	}

	return report.FillSignature(raw64[:], node.PublicKey[:]), nil
}

// Presence is the result of CheckPubkey.
type Presence int

const (
	Absent Presence = iota
	Present
)

// CheckPubkey derives the node at path and compares its mainnet
// address against addr.
func (e *Engine) CheckPubkey(addr, path string) (Presence, error) {
	if len(addr) != 34 {
		return Absent, werr.New(werr.SignAddrLen, "address must be exactly 34 characters")
	}

	mat, err := secret.Acquire(e.store)
	if err != nil {
		return Absent, err
	}
	defer mat.Release()

	node, err := derivation.GenerateKey(path, mat.Master, mat.ChainCode)
	if err != nil {
		e.log.WithError(err).WithField("path", path).Warn("derivation failed")
		return Absent, err
	}
	defer node.Zero()

	derived, err := address.Address(node.PublicKey[:], address.MainnetP2PKHVersion)
	if err != nil {
		return Absent, err
	}
	if derived == addr {
		return Present, nil
	}
	return Absent, nil
}

// derToRaw64 converts a DER-encoded ECDSA signature into the 64-byte
// r||s form, each half left-padded to 32 bytes. DER parsing here
// mirrors the approach used throughout the btcsuite signature code
// (e.g. btcec's compact-signature handling): strip the ASN.1 SEQUENCE
// and INTEGER tags, then fold each INTEGER's big-endian bytes into a
// fixed-width field.
func derToRaw64(der []byte) ([64]byte, error) {
	var out [64]byte
	idx := 0

	if len(der) < 8 || der[idx] != 0x30 {
		return out, werr.New(werr.ERROR, "malformed DER signature")
	}
	idx++
	seqLen, n, err := derLength(der, idx)
	if err != nil {
		return out, err
	}
	idx += n
	if idx+seqLen > len(der) {
		return out, werr.New(werr.ERROR, "truncated DER signature")
	}

	r, idx, err := derInteger(der, idx)
	if err != nil {
		return out, err
	}
	s, _, err := derInteger(der, idx)
	if err != nil {
		return out, err
	}

	if err := copyBigEndianPadded(out[0:32], r); err != nil {
		return out, err
	}
	if err := copyBigEndianPadded(out[32:64], s); err != nil {
		return out, err
	}
	return out, nil
}

func derInteger(der []byte, idx int) ([]byte, int, error) {
	if idx >= len(der) || der[idx] != 0x02 {
		return nil, 0, werr.New(werr.ERROR, "expected DER INTEGER tag")
	}
	idx++
	length, n, err := derLength(der, idx)
	if err != nil {
		return nil, 0, err
	}
	idx += n
	if idx+length > len(der) {
		return nil, 0, werr.New(werr.ERROR, "truncated DER integer")
	}
	return der[idx : idx+length], idx + length, nil
}

func derLength(der []byte, idx int) (int, int, error) {
	if idx >= len(der) {
		return 0, 0, werr.New(werr.ERROR, "truncated DER length")
	}
	if der[idx]&0x80 == 0 {
		return int(der[idx]), 1, nil
	}
	nBytes := int(der[idx] &^ 0x80)
	if nBytes == 0 || idx+1+nBytes > len(der) {
		return 0, 0, werr.New(werr.ERROR, "malformed DER long-form length")
	}
	length := 0
	for i := 0; i < nBytes; i++ {
		length = length<<8 | int(der[idx+1+i])
	}
	return length, 1 + nBytes, nil
}

func copyBigEndianPadded(dst, src []byte) error {
	for len(src) > 0 && src[0] == 0x00 && len(src) > len(dst) {
		src = src[1:]
	}
	if len(src) > len(dst) {
		return werr.New(werr.ERROR, "DER integer exceeds destination width")
	}
	copy(dst[len(dst)-len(src):], src)
	return nil
}
