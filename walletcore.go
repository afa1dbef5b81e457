// Package walletcore is a hardware-wallet-style HD key engine:
// mnemonic/xprv seeding, BIP32 path derivation, transaction-output
// parsing with change-address enforcement, and ECDSA signing, built on
// the internal/ subpackages.
//
// Every operation is a pure function of its arguments plus the
// injected secret.Store; the facade itself holds no secret state.
package walletcore

import (
	"github.com/sirupsen/logrus"

	"github.com/not-for-prod/walletcore/internal/secret"
)

// Engine is the entry point every command dispatcher (cmd/walletcored,
// or a host embedding this module directly) drives.
type Engine struct {
	store secret.Store
	log   *logrus.Entry
}

// NewEngine builds an Engine over store. log may be nil, in which case
// a default logrus.Logger writing to stderr is used; callers that want
// a different destination or level pass their own.
func NewEngine(store secret.Store, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{store: store, log: log.WithField("component", "walletcore")}
}

// Seeded reports whether the wallet has a usable master key.
func (e *Engine) Seeded() (bool, error) {
	return secret.Seeded(e.store)
}
