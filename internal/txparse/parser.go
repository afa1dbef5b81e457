// Package txparse walks a raw legacy Bitcoin transaction, given as
// lowercase hex ASCII, to extract its outputs. It performs a pure
// structural walk: no sighash, witness, or locktime validation.
//
// Offsets are in hex characters throughout; GetOutputsBytes offers the
// byte-oriented equivalent for callers that already have decoded
// bytes.
package txparse

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/not-for-prod/walletcore/internal/werr"
)

// Output is one parsed transaction output: its value and its raw
// scriptPubKey, hex-encoded.
type Output struct {
	Value  uint64
	Script string
}

const (
	versionLen    = 8  // 4-byte version, in hex chars
	prevHashLen   = 64 // 32-byte prevout hash
	prevIndexLen  = 8  // 4-byte prevout index
	sequenceLen   = 8  // 4-byte sequence number
	outValueLen   = 16 // 8-byte little-endian output value
	minVarintSite = 16 // bytes-equivalent bound checked before each varint read
)

// GetOutputs walks txHex from the version field through every input to
// locate the output section, and returns the substring covering the
// output count varint and every output encoding — excluding witness
// data and locktime.
func GetOutputs(txHex string) (string, error) {
	idx := versionLen

	if len(txHex) < idx+minVarintSite {
		return "", werr.New(werr.ERROR, "transaction too short for input count")
	}
	inCount, n, err := readVarint(txHex, idx)
	if err != nil {
		return "", err
	}
	idx += n

	for j := uint64(0); j < inCount; j++ {
		idx += prevHashLen + prevIndexLen
		if len(txHex) < idx+minVarintSite {
			return "", werr.New(werr.ERROR, fmt.Sprintf("transaction too short for scriptSig length on input %d", j))
		}
		scriptLen, n, err := readVarint(txHex, idx)
		if err != nil {
			return "", err
		}
		idx += n
		idx += int(scriptLen) * 2
		if len(txHex) < idx+sequenceLen {
			return "", werr.New(werr.ERROR, fmt.Sprintf("transaction too short for sequence on input %d", j))
		}
		idx += sequenceLen
	}

	outputsStart := idx
	if len(txHex) < idx+minVarintSite {
		return "", werr.New(werr.ERROR, "transaction too short for output count")
	}
	outCount, n, err := readVarint(txHex, idx)
	if err != nil {
		return "", err
	}
	idx += n

	for j := uint64(0); j < outCount; j++ {
		if len(txHex) < idx+outValueLen {
			return "", werr.New(werr.ERROR, fmt.Sprintf("transaction too short for value on output %d", j))
		}
		idx += outValueLen
		if len(txHex) < idx+minVarintSite {
			return "", werr.New(werr.ERROR, fmt.Sprintf("transaction too short for script length on output %d", j))
		}
		scriptLen, n, err := readVarint(txHex, idx)
		if err != nil {
			return "", err
		}
		idx += n
		idx += int(scriptLen) * 2
		if len(txHex) < idx {
			return "", werr.New(werr.ERROR, fmt.Sprintf("transaction too short for script on output %d", j))
		}
	}

	if idx > len(txHex) {
		return "", werr.New(werr.ERROR, "transaction truncated inside output section")
	}
	return txHex[outputsStart:idx], nil
}

// ParseOutputs decodes the substring GetOutputs returns into its
// individual (value, script) pairs.
func ParseOutputs(outputsHex string) ([]Output, error) {
	idx := 0
	if len(outputsHex) < idx+minVarintSite {
		return nil, werr.New(werr.ERROR, "outputs too short for output count")
	}
	n, consumed, err := readVarint(outputsHex, idx)
	if err != nil {
		return nil, err
	}
	idx += consumed

	outputs := make([]Output, 0, n)
	for j := uint64(0); j < n; j++ {
		if len(outputsHex) < idx+outValueLen {
			return nil, werr.New(werr.ERROR, fmt.Sprintf("outputs too short for value on output %d", j))
		}
		value, err := readLEValue(outputsHex[idx : idx+outValueLen])
		if err != nil {
			return nil, err
		}
		idx += outValueLen

		if len(outputsHex) < idx+minVarintSite {
			return nil, werr.New(werr.ERROR, fmt.Sprintf("outputs too short for script length on output %d", j))
		}
		scriptLen, consumed, err := readVarint(outputsHex, idx)
		if err != nil {
			return nil, err
		}
		idx += consumed

		scriptChars := int(scriptLen) * 2
		if len(outputsHex) < idx+scriptChars {
			return nil, werr.New(werr.ERROR, fmt.Sprintf("outputs too short for script on output %d", j))
		}
		script := outputsHex[idx : idx+scriptChars]
		idx += scriptChars

		outputs = append(outputs, Output{Value: value, Script: script})
	}
	return outputs, nil
}

// readLEValue decodes 16 hex chars (8 little-endian bytes) into a u64.
func readLEValue(hexChars string) (uint64, error) {
	raw, err := hex.DecodeString(hexChars)
	if err != nil || len(raw) != 8 {
		return 0, werr.New(werr.ERROR, "malformed output value")
	}
	return binary.LittleEndian.Uint64(raw), nil
}

// readVarint reads a Bitcoin CompactSize varint starting at the given
// hex-character offset, returning the decoded value and the number of
// hex characters consumed. It bounds-checks before reading the prefix
// byte and again before reading the extended length field.
func readVarint(s string, offset int) (uint64, int, error) {
	if len(s) < offset+2 {
		return 0, 0, werr.New(werr.ERROR, "truncated varint prefix")
	}
	prefix, err := hexByte(s, offset)
	if err != nil {
		return 0, 0, err
	}

	switch {
	case prefix < 0xfd:
		return uint64(prefix), 2, nil
	case prefix == 0xfd:
		return readVarintExt(s, offset+2, 2)
	case prefix == 0xfe:
		return readVarintExt(s, offset+2, 4)
	default: // 0xff
		return readVarintExt(s, offset+2, 8)
	}
}

func readVarintExt(s string, offset, nbytes int) (uint64, int, error) {
	chars := nbytes * 2
	if len(s) < offset+chars {
		return 0, 0, werr.New(werr.ERROR, "truncated varint body")
	}
	raw, err := hex.DecodeString(s[offset : offset+chars])
	if err != nil {
		return 0, 0, werr.New(werr.ERROR, "malformed varint body")
	}
	var v uint64
	switch nbytes {
	case 2:
		v = uint64(binary.LittleEndian.Uint16(raw))
	case 4:
		v = uint64(binary.LittleEndian.Uint32(raw))
	case 8:
		v = binary.LittleEndian.Uint64(raw)
	}
	return v, 2 + chars, nil
}

func hexByte(s string, offset int) (byte, error) {
	v, err := strconv.ParseUint(s[offset:offset+2], 16, 8)
	if err != nil {
		return 0, werr.New(werr.ERROR, "malformed hex byte")
	}
	return byte(v), nil
}
