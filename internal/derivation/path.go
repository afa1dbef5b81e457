// Package derivation parses BIP32 path strings and walks a master node
// to the target.
package derivation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/not-for-prod/walletcore/internal/bip32"
	"github.com/not-for-prod/walletcore/internal/werr"
)

// Level is one parsed path component: an index with its hardened flag
// not yet folded in, plus the flag itself.
type Level struct {
	Index    uint32
	Hardened bool
}

// hardenedMarkers are the trailing characters that mark a path level
// as hardened.
const hardenedMarkers = "'hHp"

// ParsePath parses a "m/…" path string into its levels. The path must
// begin with "m/"; each subsequent "/"-separated token is a decimal
// index optionally suffixed by exactly one hardened marker.
func ParsePath(path string) ([]Level, error) {
	if len(path) < len("m/") || path[0] != 'm' || path[1] != '/' {
		return nil, werr.New(werr.KeyChild, "path must start with \"m/\"")
	}

	rest := path[2:]
	if rest == "" {
		return nil, nil
	}

	tokens := strings.Split(rest, "/")
	levels := make([]Level, 0, len(tokens))
	for _, tok := range tokens {
		level, err := parseLevel(tok)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func parseLevel(tok string) (Level, error) {
	if tok == "" {
		return Level{}, werr.New(werr.KeyChild, "empty path component")
	}

	digits := tok
	hardened := false
	last := tok[len(tok)-1]
	if strings.IndexByte(hardenedMarkers, last) >= 0 {
		hardened = true
		digits = tok[:len(tok)-1]
	}
	if digits == "" {
		return Level{}, werr.New(werr.KeyChild, fmt.Sprintf("path component %q has no digits", tok))
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Level{}, werr.New(werr.KeyChild, fmt.Sprintf("path component %q is not numeric", tok))
		}
	}

	idx, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return Level{}, werr.Wrap(werr.KeyChild, fmt.Sprintf("path component %q out of range", tok), err)
	}
	if idx > 0xFFFFFFFF {
		return Level{}, werr.New(werr.KeyChild, fmt.Sprintf("path component %q exceeds uint32", tok))
	}

	return Level{Index: uint32(idx), Hardened: hardened}, nil
}

// GenerateKey walks from the master private key and chain code to the
// node named by path, applying CKDpriv at each level. Any derivation
// failure fails the whole operation.
func GenerateKey(path string, masterPriv, masterChain [32]byte) (*bip32.Node, error) {
	levels, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	node, err := bip32.NewRoot(masterPriv, masterChain)
	if err != nil {
		return nil, werr.Wrap(werr.KeyChild, "invalid master key", err)
	}

	for _, lvl := range levels {
		idx := lvl.Index
		if lvl.Hardened {
			idx += bip32.HardenedOffset
		}
		child, err := node.CKDPriv(idx)
		node.Zero()
		if err != nil {
			return nil, err
		}
		node = child
	}
	return node, nil
}
