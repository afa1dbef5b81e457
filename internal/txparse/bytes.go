package txparse

import (
	"encoding/binary"
	"fmt"

	"github.com/not-for-prod/walletcore/internal/werr"
)

// GetOutputsBytes is the byte-oriented twin of GetOutputs, for callers
// that already hold decoded transaction bytes instead of hex text, so
// they are not forced through a hex round-trip just to reuse the same
// walk.
func GetOutputsBytes(tx []byte) ([]byte, error) {
	idx := 4 // version

	if len(tx) < idx+8 {
		return nil, werr.New(werr.ERROR, "transaction too short for input count")
	}
	inCount, n, err := readVarintBytes(tx, idx)
	if err != nil {
		return nil, err
	}
	idx += n

	for j := uint64(0); j < inCount; j++ {
		idx += 32 + 4 // prevout hash + index
		if len(tx) < idx+8 {
			return nil, werr.New(werr.ERROR, fmt.Sprintf("transaction too short for scriptSig length on input %d", j))
		}
		scriptLen, n, err := readVarintBytes(tx, idx)
		if err != nil {
			return nil, err
		}
		idx += n + int(scriptLen) + 4 // scriptSig + sequence
		if len(tx) < idx {
			return nil, werr.New(werr.ERROR, fmt.Sprintf("transaction too short past input %d", j))
		}
	}

	outputsStart := idx
	if len(tx) < idx+8 {
		return nil, werr.New(werr.ERROR, "transaction too short for output count")
	}
	outCount, n, err := readVarintBytes(tx, idx)
	if err != nil {
		return nil, err
	}
	idx += n

	for j := uint64(0); j < outCount; j++ {
		if len(tx) < idx+8 {
			return nil, werr.New(werr.ERROR, fmt.Sprintf("transaction too short for value on output %d", j))
		}
		idx += 8
		scriptLen, n, err := readVarintBytes(tx, idx)
		if err != nil {
			return nil, err
		}
		idx += n + int(scriptLen)
		if len(tx) < idx {
			return nil, werr.New(werr.ERROR, fmt.Sprintf("transaction too short for script on output %d", j))
		}
	}

	return tx[outputsStart:idx], nil
}

func readVarintBytes(b []byte, offset int) (uint64, int, error) {
	if len(b) < offset+1 {
		return 0, 0, werr.New(werr.ERROR, "truncated varint prefix")
	}
	prefix := b[offset]
	switch {
	case prefix < 0xfd:
		return uint64(prefix), 1, nil
	case prefix == 0xfd:
		return readVarintExtBytes(b, offset+1, 2)
	case prefix == 0xfe:
		return readVarintExtBytes(b, offset+1, 4)
	default:
		return readVarintExtBytes(b, offset+1, 8)
	}
}

func readVarintExtBytes(b []byte, offset, nbytes int) (uint64, int, error) {
	if len(b) < offset+nbytes {
		return 0, 0, werr.New(werr.ERROR, "truncated varint body")
	}
	var v uint64
	switch nbytes {
	case 2:
		v = uint64(binary.LittleEndian.Uint16(b[offset:]))
	case 4:
		v = uint64(binary.LittleEndian.Uint32(b[offset:]))
	case 8:
		v = binary.LittleEndian.Uint64(b[offset:])
	}
	return v, 1 + nbytes, nil
}
