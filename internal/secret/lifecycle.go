package secret

import (
	"crypto/subtle"

	"github.com/not-for-prod/walletcore/internal/werr"
)

// Seeded reports whether store holds a usable master key and chain
// code: the wallet is unseeded if either page still equals
// ErasedSentinel.
func Seeded(store Store) (bool, error) {
	master, err := store.ReadMaster()
	if err != nil {
		return false, werr.Wrap(werr.ErrorMem, "read master", err)
	}
	chainCode, err := store.ReadChainCode()
	if err != nil {
		return false, werr.Wrap(werr.ErrorMem, "read chaincode", err)
	}
	seeded := !equal32(master, ErasedSentinel) && !equal32(chainCode, ErasedSentinel)
	Zero(&master)
	Zero(&chainCode)
	return seeded, nil
}

// Material is the scoped acquisition of the two secret pages an
// operation needs. Callers must defer Zero(&m.Master) and
// Zero(&m.ChainCode) (or call m.Release()) on every exit path.
type Material struct {
	Master    [32]byte
	ChainCode [32]byte
}

// Acquire reads both pages from store and fails with KEY_MASTER if the
// wallet has not been seeded.
func Acquire(store Store) (Material, error) {
	master, err := store.ReadMaster()
	if err != nil {
		return Material{}, werr.Wrap(werr.ErrorMem, "read master", err)
	}
	chainCode, err := store.ReadChainCode()
	if err != nil {
		Zero(&master)
		return Material{}, werr.Wrap(werr.ErrorMem, "read chaincode", err)
	}
	if equal32(master, ErasedSentinel) || equal32(chainCode, ErasedSentinel) {
		Zero(&master)
		Zero(&chainCode)
		return Material{}, werr.New(werr.KeyMaster, "wallet not seeded")
	}
	return Material{Master: master, ChainCode: chainCode}, nil
}

// Release zeroizes both pages of m. Safe to call on a zero-value or
// already-released Material.
func (m *Material) Release() {
	Zero(&m.Master)
	Zero(&m.ChainCode)
}

// Zero overwrites buf with zero bytes. Every secret-bearing buffer in
// the core is passed through this on every exit edge.
func Zero(buf *[32]byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// ZeroBytes is the slice-backed twin of Zero, for variable-length
// secret buffers (mnemonic text, seed bytes).
func ZeroBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

func equal32(a, b [32]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
