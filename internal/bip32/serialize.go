package bip32

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/not-for-prod/walletcore/internal/werr"
)

// Mainnet xprv/xpub version bytes, per BIP32.
const (
	MainnetPrivVersion uint32 = 0x0488ADE4
	MainnetPubVersion  uint32 = 0x0488B21E
)

// serializedLen is the length of the 78-byte BIP32 payload, before the
// 4-byte Base58Check checksum.
const serializedLen = 78

// ExtendedKeyStrLen is the fixed printable length of a Base58Check
// BIP32 extended key string.
const ExtendedKeyStrLen = 111

// Serialize encodes n as a Base58Check xprv string under version.
func (n *Node) Serialize(version uint32) (string, error) {
	return n.serialize(version, true)
}

// SerializePublic encodes n's public half as a Base58Check xpub string
// under version.
func (n *Node) SerializePublic(version uint32) (string, error) {
	return n.serialize(version, false)
}

func (n *Node) serialize(version uint32, private bool) (string, error) {
	payload := make([]byte, 0, serializedLen)

	var versionBytes [4]byte
	binary.BigEndian.PutUint32(versionBytes[:], version)
	payload = append(payload, versionBytes[:]...)

	payload = append(payload, n.Depth)

	var fpBytes, childBytes [4]byte
	binary.BigEndian.PutUint32(fpBytes[:], n.Fingerprint)
	binary.BigEndian.PutUint32(childBytes[:], n.ChildNum)
	payload = append(payload, fpBytes[:]...)
	payload = append(payload, childBytes[:]...)

	payload = append(payload, n.ChainCode[:]...)

	if private {
		payload = append(payload, 0x00)
		payload = append(payload, n.PrivateKey[:]...)
	} else {
		payload = append(payload, n.PublicKey[:]...)
	}

	if len(payload) != serializedLen {
		return "", fmt.Errorf("internal error: serialized payload is %d bytes, want %d", len(payload), serializedLen)
	}

	checksum := doubleSHA256(payload)
	full := append(payload, checksum[:4]...)
	out := base58.Encode(full)
	if len(out) != ExtendedKeyStrLen {
		// Leading zero bytes in the payload Base58-encode to leading
		// '1' characters one-for-one, so a real BIP32 payload always
		// lands on 111 characters; anything else means malformed
		// input reached us.
		return "", werr.New(werr.ERROR, fmt.Sprintf("serialized extended key is %d characters, want %d", len(out), ExtendedKeyStrLen))
	}
	return out, nil
}

// Deserialize parses a Base58Check xprv or xpub string back into a
// Node. xpub strings decode into a Node with a zeroed PrivateKey.
func Deserialize(s string) (*Node, uint32, error) {
	if len(s) != ExtendedKeyStrLen {
		return nil, 0, werr.New(werr.ERROR, fmt.Sprintf("extended key must be %d characters, got %d", ExtendedKeyStrLen, len(s)))
	}

	decoded := base58.Decode(s)
	if len(decoded) != serializedLen+4 {
		return nil, 0, werr.New(werr.ERROR, "malformed extended key encoding")
	}

	payload := decoded[:serializedLen]
	checksum := decoded[serializedLen:]
	want := doubleSHA256(payload)
	for i := 0; i < 4; i++ {
		if checksum[i] != want[i] {
			return nil, 0, werr.New(werr.ERROR, "extended key checksum mismatch")
		}
	}

	version := binary.BigEndian.Uint32(payload[0:4])
	node := &Node{
		Depth:       payload[4],
		Fingerprint: binary.BigEndian.Uint32(payload[5:9]),
		ChildNum:    binary.BigEndian.Uint32(payload[9:13]),
	}
	copy(node.ChainCode[:], payload[13:45])

	keyMaterial := payload[45:78]
	switch {
	case version == MainnetPrivVersion:
		if keyMaterial[0] != 0x00 {
			return nil, 0, werr.New(werr.ERROR, "private extended key missing 0x00 prefix")
		}
		copy(node.PrivateKey[:], keyMaterial[1:])
		if err := node.fillPublicKey(); err != nil {
			node.Zero()
			return nil, 0, werr.Wrap(werr.ERROR, "deserialized private key is invalid", err)
		}
	case version == MainnetPubVersion:
		copy(node.PublicKey[:], keyMaterial)
	default:
		return nil, 0, werr.New(werr.ERROR, "unrecognized extended key version")
	}

	return node, version, nil
}

func doubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}
