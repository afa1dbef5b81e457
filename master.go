package walletcore

import (
	"io"

	"github.com/not-for-prod/walletcore/internal/bip32"
	"github.com/not-for-prod/walletcore/internal/bip39"
	"github.com/not-for-prod/walletcore/internal/secret"
	"github.com/not-for-prod/walletcore/internal/werr"
)

// MasterFromMnemonic validates mnemonic, derives its seed with
// passphrase, derives the BIP32 master key, and writes both halves
// into the store.
func (e *Engine) MasterFromMnemonic(mnemonic, passphrase string, progress bip39.ProgressFunc) error {
	if err := bip39.Check(mnemonic); err != nil {
		e.log.WithError(err).Warn("mnemonic failed checksum validation")
		return err
	}

	seed, err := bip39.ToSeed(mnemonic, passphrase, progress)
	if err != nil {
		return err
	}
	defer secret.ZeroBytes(seed[:])

	return e.writeMasterFromSeed(seed[:])
}

// MasterFromRandom seeds the wallet directly from 64 bytes read off
// rng, bypassing the mnemonic codec entirely and treating the raw
// random output as the BIP32 seed.
func (e *Engine) MasterFromRandom(rng io.Reader) error {
	seed := make([]byte, bip39.SeedLen)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return werr.Wrap(werr.ErrorMem, "read random seed", err)
	}
	defer secret.ZeroBytes(seed)

	return e.writeMasterFromSeed(seed)
}

// MasterFromXprv re-seeds the wallet from a serialized extended
// private key, rejecting anything that is not a depth-0 xprv.
func (e *Engine) MasterFromXprv(xprv string) error {
	node, version, err := bip32.Deserialize(xprv)
	if err != nil {
		return err
	}
	defer node.Zero()

	if version != bip32.MainnetPrivVersion {
		return werr.New(werr.ERROR, "xprv required, got a public extended key")
	}
	if node.Depth != 0 {
		return werr.New(werr.ERROR, "master re-seed requires a depth-0 extended key")
	}

	if err := e.store.WriteMaster(node.PrivateKey); err != nil {
		return werr.Wrap(werr.ErrorMem, "write master", err)
	}
	if err := e.store.WriteChainCode(node.ChainCode); err != nil {
		return werr.Wrap(werr.ErrorMem, "write chaincode", err)
	}
	e.log.Info("wallet re-seeded from xprv")
	return nil
}

func (e *Engine) writeMasterFromSeed(seed []byte) error {
	node, err := bip32.FromSeed(seed)
	if err != nil {
		return err
	}
	defer node.Zero()

	if err := e.store.WriteMaster(node.PrivateKey); err != nil {
		return werr.Wrap(werr.ErrorMem, "write master", err)
	}
	if err := e.store.WriteChainCode(node.ChainCode); err != nil {
		return werr.Wrap(werr.ErrorMem, "write chaincode", err)
	}
	e.log.Info("wallet seeded")
	return nil
}
