// Package bip32 implements the BIP32 extended key: master-key
// generation from a seed, hardened and non-hardened child key
// derivation, and Base58Check xprv/xpub serialization.
//
// Child key derivation is built directly on
// github.com/decred/dcrd/dcrec/secp256k1/v4 rather than a pre-built
// BIP32 library: scalars are derived with straight modular arithmetic
// against the curve order and serialized by hand, which is what
// letting Node carry its own depth/fingerprint/child_num/chain_code/
// private_key/public_key fields requires.
package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/not-for-prod/walletcore/internal/address"
	"github.com/not-for-prod/walletcore/internal/werr"
)

// HardenedOffset is the hardened-derivation bit, added to a child
// index to request hardened CKD (2^31).
const HardenedOffset uint32 = 0x80000000

// bitcoinSeedKey is the fixed HMAC key used for master-key generation,
// per BIP32.
var bitcoinSeedKey = []byte("Bitcoin seed")

// Node is an extended key: the BIP32 HDNode. PrivateKey is the zero
// value ([32]byte{}) for a public-only node decoded from an xpub by
// Deserialize.
type Node struct {
	Depth       uint8
	Fingerprint uint32
	ChildNum    uint32
	ChainCode   [32]byte
	PrivateKey  [32]byte
	PublicKey   [33]byte
}

// Zero overwrites every secret-bearing field of n. Callers must call
// this on every exit path — success, error, or panic recovery — of any
// operation that touched a Node.
func (n *Node) Zero() {
	if n == nil {
		return
	}
	for i := range n.ChainCode {
		n.ChainCode[i] = 0
	}
	for i := range n.PrivateKey {
		n.PrivateKey[i] = 0
	}
	for i := range n.PublicKey {
		n.PublicKey[i] = 0
	}
	n.Depth = 0
	n.Fingerprint = 0
	n.ChildNum = 0
}

// IsHardened reports whether child index i requests hardened
// derivation.
func IsHardened(i uint32) bool {
	return i >= HardenedOffset
}

// fillPublicKey derives and stores the compressed public key for a
// node that already has a valid private key.
func (n *Node) fillPublicKey() error {
	scalar, overflow := scalarFromBytes(n.PrivateKey)
	if overflow || scalar.IsZero() {
		return werr.New(werr.ERROR, "private key out of range")
	}
	priv := secp256k1.NewPrivateKey(scalar)
	copy(n.PublicKey[:], priv.PubKey().SerializeCompressed())
	return nil
}

// scalarFromBytes parses a 32-byte big-endian scalar, reporting
// overflow when the value is >= the group order (ModNScalar.SetByteSlice's
// own overflow flag).
func scalarFromBytes(b [32]byte) (*secp256k1.ModNScalar, bool) {
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b[:])
	return &s, overflow
}

// NewRoot builds a depth-0 node directly from a known private key and
// chain code — the starting point for path derivation from a stored
// master secret, as opposed to FromSeed's HMAC-from-seed starting
// point. It validates the private key and fills the public key.
func NewRoot(priv, chainCode [32]byte) (*Node, error) {
	node := &Node{ChainCode: chainCode, PrivateKey: priv}
	if err := node.fillPublicKey(); err != nil {
		node.Zero()
		return nil, werr.Wrap(werr.ERROR, "invalid root private key", err)
	}
	return node, nil
}

// FromSeed derives the master node from a BIP32 seed via
// HMAC-SHA512(key="Bitcoin seed", data=seed). Fails if the resulting
// private key is zero or >= the secp256k1 group order.
func FromSeed(seed []byte) (*Node, error) {
	mac := hmac.New(sha512.New, bitcoinSeedKey)
	mac.Write(seed)
	i := mac.Sum(nil)

	node := &Node{}
	copy(node.PrivateKey[:], i[:32])
	copy(node.ChainCode[:], i[32:])

	if err := node.fillPublicKey(); err != nil {
		node.Zero()
		return nil, werr.Wrap(werr.ERROR, "seed produced an unusable master key", err)
	}
	return node, nil
}

// CKDPriv derives the private child at index i from parent. Hardened
// indices (i >= HardenedOffset) hash 0x00||parent.PrivateKey||ser32(i)
// under the parent chain code; non-hardened indices hash
// parent.PublicKey||ser32(i).
func (parent *Node) CKDPriv(i uint32) (*Node, error) {
	if parent.Depth == 0xff {
		return nil, werr.New(werr.KeyChild, "maximum derivation depth exceeded")
	}

	data := make([]byte, 0, 37)
	if IsHardened(i) {
		data = append(data, 0x00)
		data = append(data, parent.PrivateKey[:]...)
	} else {
		data = append(data, parent.PublicKey[:]...)
	}
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], i)
	data = append(data, idxBytes[:]...)

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(data)
	ihash := mac.Sum(nil)

	il, overflow := scalarFromBytes([32]byte(ihash[:32]))
	if overflow {
		return nil, werr.New(werr.KeyChild, "derived IL is out of range, index invalid")
	}

	parentScalar, pOverflow := scalarFromBytes(parent.PrivateKey)
	if pOverflow {
		return nil, werr.New(werr.KeyChild, "parent private key out of range")
	}

	childScalar := new(secp256k1.ModNScalar).Set(il)
	childScalar.Add(parentScalar)
	if childScalar.IsZero() {
		return nil, werr.New(werr.KeyChild, "derived child key is zero, index invalid")
	}

	fingerprint, err := parentFingerprint(parent.PublicKey[:])
	if err != nil {
		return nil, werr.Wrap(werr.KeyChild, "failed to compute parent fingerprint", err)
	}

	child := &Node{
		Depth:    parent.Depth + 1,
		ChildNum: i,
	}
	child.Fingerprint = fingerprint
	copy(child.ChainCode[:], ihash[32:])
	childBytes := childScalar.Bytes()
	copy(child.PrivateKey[:], childBytes[:])

	if err := child.fillPublicKey(); err != nil {
		child.Zero()
		return nil, werr.Wrap(werr.KeyChild, "failed to derive child public key", err)
	}
	return child, nil
}

func parentFingerprint(parentPub []byte) (uint32, error) {
	hash, err := address.PubKeyHash160(parentPub)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(hash[:4]), nil
}

// String implements fmt.Stringer for debug logging — it never prints
// secret material, only shape.
func (n *Node) String() string {
	return fmt.Sprintf("bip32.Node{depth=%d, childNum=%d, fingerprint=%08x}", n.Depth, n.ChildNum, n.Fingerprint)
}
