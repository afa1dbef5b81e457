package derivation

import "fmt"

// BIP44Purpose is BIP44's fixed top-level purpose value.
const BIP44Purpose uint32 = 44

// BIP44Path renders the standard BIP44 path for a given coin's account,
// change chain (0 = external/receiving, 1 = internal/change), and
// address index, for use with GenerateKey. coin and account are
// hardened implicitly, per BIP44.
func BIP44Path(coin, account, change, addressIndex uint32) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", BIP44Purpose, coin, account, change, addressIndex)
}
