// Package bip39 implements the mnemonic codec: entropy to word list,
// checksum validation, and PBKDF2-HMAC-SHA512 seed derivation.
//
// The tokenizer is intentionally non-destructive (strings.FieldsFunc
// over a caller-owned string, no shared static buffer) so that
// concurrent or re-entrant calls never corrupt one another.
package bip39

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/not-for-prod/walletcore/internal/werr"
)

// SeedLen is the byte length of the seed produced by ToSeed.
const SeedLen = 64

// pbkdf2Iterations is BIP39's fixed PBKDF2 round count.
const pbkdf2Iterations = 2048

// saltLenMax bounds the passphrase portion of the PBKDF2 salt.
const saltLenMax = 256

// allowedEntropyLens are the valid entropy sizes in bytes: 16, 20, 24,
// 28, 32 (128..256 bits in 32-bit steps).
var allowedEntropyLens = map[int]bool{16: true, 20: true, 24: true, 28: true, 32: true}

// ProgressFunc is invoked during ToSeed with the number of PBKDF2
// rounds completed so far and the total round count. It must not
// mutate any state shared with the caller; it exists purely so a host
// can drive a progress indicator.
type ProgressFunc func(completed, total uint32)

// FromEntropy encodes raw entropy into a BIP39 mnemonic: entropy is
// followed by entropy_bits/32 checksum bits taken from the leading
// bits of SHA256(entropy), then split into 11-bit word indices.
func FromEntropy(entropy []byte) (string, error) {
	if !allowedEntropyLens[len(entropy)] {
		return "", werr.New(werr.ERROR, fmt.Sprintf("entropy must be 16/20/24/28/32 bytes, got %d", len(entropy)))
	}

	checksum := sha256.Sum256(entropy)
	checksumBits := len(entropy) * 8 / 32

	bits := newBitWriter(len(entropy)*8 + checksumBits)
	bits.writeBytes(entropy)
	bits.writeBits(checksum[:], checksumBits)

	nWords := bits.len / 11
	words := make([]string, nWords)
	for i := 0; i < nWords; i++ {
		idx := bits.read11(i * 11)
		words[i] = wordlist[idx]
	}
	return strings.Join(words, " "), nil
}

// Check validates a mnemonic's word count, dictionary membership, and
// checksum. Spaces and commas are both accepted as separators on
// input.
func Check(mnemonic string) error {
	tokens, err := tokenize(mnemonic)
	if err != nil {
		return err
	}

	n := len(tokens)
	if n < 12 || n > 24 || n%3 != 0 {
		return werr.New(werr.ERROR, fmt.Sprintf("mnemonic must have 12, 15, 18, 21, or 24 words, got %d", n))
	}

	bits := newBitWriter(n * 11)
	for _, tok := range tokens {
		idx, ok := wordIndex[tok]
		if !ok {
			return werr.New(werr.ERROR, "word not in BIP39 English wordlist")
		}
		bits.writeIndex11(idx)
	}

	entropyBytes := n * 4 / 3
	checksumBits := n / 3

	entropy := bits.bytes[:entropyBytes]
	sum := sha256.Sum256(entropy)

	got := bitsFromBytes(bits.bytes[entropyBytes:], checksumBits)
	want := bitsFromBytes(sum[:], checksumBits)
	if got != want {
		return werr.New(werr.ERROR, "mnemonic checksum mismatch")
	}
	return nil
}

// ToSeed derives the 64-byte BIP39 seed via
// PBKDF2-HMAC-SHA512(password=mnemonic, salt="mnemonic"||passphrase,
// iterations=2048). mnemonic is used exactly as given — BIP39 NFKD
// normalization is the caller's responsibility.
func ToSeed(mnemonic, passphrase string, progress ProgressFunc) ([SeedLen]byte, error) {
	var out [SeedLen]byte

	if len(passphrase) > saltLenMax {
		return out, werr.New(werr.ERROR, "passphrase exceeds SALT_LEN_MAX")
	}

	salt := append([]byte("mnemonic"), passphrase...)

	if progress != nil {
		// pbkdf2.Key has no hook for progress; the BIP39 round count
		// (2048) is small enough that a single completion callback
		// still satisfies "implementation-defined granularity".
		progress(0, pbkdf2Iterations)
	}
	seed := pbkdf2.Key([]byte(mnemonic), salt, pbkdf2Iterations, SeedLen, sha512.New)
	if progress != nil {
		progress(pbkdf2Iterations, pbkdf2Iterations)
	}

	copy(out[:], seed)
	return out, nil
}

// tokenize splits on runs of spaces/commas without mutating or sharing
// any buffer across calls, and enforces the per-token length bound
// that guards against a corrupted/oversized input before dictionary
// lookup is attempted.
func tokenize(mnemonic string) ([]string, error) {
	raw := strings.FieldsFunc(mnemonic, func(r rune) bool {
		return r == ' ' || r == ','
	})
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) == 0 {
			continue
		}
		if len(t) >= maxTokenLen+1 {
			return nil, werr.New(werr.ERROR, "mnemonic word exceeds maximum length")
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
