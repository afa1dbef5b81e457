// Package address formats secp256k1 public keys and private keys into
// the legacy Bitcoin wire formats: HASH160, Base58Check P2PKH
// addresses, and WIF.
package address

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for Bitcoin-style HASH160

	"github.com/not-for-prod/walletcore/internal/werr"
)

// MainnetP2PKHVersion is the Bitcoin mainnet P2PKH address version
// byte.
const MainnetP2PKHVersion byte = 0x00

// MainnetWIFVersion is the Bitcoin mainnet WIF version byte.
const MainnetWIFVersion byte = 0x80

// Hash160Len is the byte length of a HASH160 digest.
const Hash160Len = 20

// PubKeyHash160 computes RIPEMD160(SHA256(pub)) over exactly the bytes
// that make up the public key, detecting which of the three point
// encodings was supplied rather than branching on the first byte
// alone: compressed (33 bytes), uncompressed with a 0x04 prefix (65
// bytes), or the single-byte point-at-infinity marker (0x00).
func PubKeyHash160(pub []byte) ([Hash160Len]byte, error) {
	var out [Hash160Len]byte

	switch {
	case len(pub) == 33:
		// expected compressed form, prefix checked below
	case len(pub) == 65 && pub[0] == 0x04:
		// uncompressed form
	case len(pub) == 1 && pub[0] == 0x00:
		// point at infinity
	default:
		return out, werr.New(werr.ERROR, fmt.Sprintf("unrecognized public key encoding, length %d", len(pub)))
	}
	if len(pub) == 33 && pub[0] != 0x02 && pub[0] != 0x03 {
		return out, werr.New(werr.ERROR, "compressed public key must start with 0x02 or 0x03")
	}

	sum := sha256.Sum256(pub)
	h := ripemd160.New()
	h.Write(sum[:])
	copy(out[:], h.Sum(nil))
	return out, nil
}

// Address returns the Base58Check P2PKH address for pub under the
// given version byte (0x00 for Bitcoin mainnet).
func Address(pub []byte, version byte) (string, error) {
	hash, err := PubKeyHash160(pub)
	if err != nil {
		return "", err
	}
	return base58.CheckEncode(hash[:], version), nil
}

// WIF returns the Base58Check Wallet Import Format encoding of a
// 32-byte private key, always with the compressed-public-key flag
// (0x01) appended before the checksum, under the given version byte
// (0x80 for Bitcoin mainnet).
func WIF(priv [32]byte, version byte) string {
	payload := make([]byte, 0, 33)
	payload = append(payload, priv[:]...)
	payload = append(payload, 0x01)
	return base58.CheckEncode(payload, version)
}
