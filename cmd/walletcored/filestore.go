package main

import (
	"fmt"
	"os"

	"github.com/not-for-prod/walletcore/internal/secret"
)

// fileStore is a secret.Store backed by a flat 64-byte file: master
// key in the first 32 bytes, chain code in the last 32. It is a demo
// store for the CLI, not a hardened secure-element implementation.
type fileStore struct {
	path string
}

func newFileStore(path string) *fileStore {
	return &fileStore{path: path}
}

func (f *fileStore) read() ([64]byte, error) {
	var buf [64]byte
	copy(buf[:32], secret.ErasedSentinel[:])
	copy(buf[32:], secret.ErasedSentinel[:])

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return buf, nil
	}
	if err != nil {
		return buf, fmt.Errorf("read store: %w", err)
	}
	if len(data) != 64 {
		return buf, fmt.Errorf("store file %q has unexpected length %d, want 64", f.path, len(data))
	}
	copy(buf[:], data)
	return buf, nil
}

func (f *fileStore) write(buf [64]byte) error {
	return os.WriteFile(f.path, buf[:], 0o600)
}

func (f *fileStore) ReadMaster() ([32]byte, error) {
	var out [32]byte
	buf, err := f.read()
	if err != nil {
		return out, err
	}
	copy(out[:], buf[:32])
	return out, nil
}

func (f *fileStore) WriteMaster(key [32]byte) error {
	buf, err := f.read()
	if err != nil {
		return err
	}
	copy(buf[:32], key[:])
	return f.write(buf)
}

func (f *fileStore) ReadChainCode() ([32]byte, error) {
	var out [32]byte
	buf, err := f.read()
	if err != nil {
		return out, err
	}
	copy(out[:], buf[32:])
	return out, nil
}

func (f *fileStore) WriteChainCode(code [32]byte) error {
	buf, err := f.read()
	if err != nil {
		return err
	}
	copy(buf[32:], code[:])
	return f.write(buf)
}
