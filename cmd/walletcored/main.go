// Command walletcored is a thin CLI dispatcher over walletcore.Engine:
// it parses subcommands and flags, calls into the engine, and renders
// the result as plain text or JSON.
package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/not-for-prod/walletcore"
)

func main() {
	cfg := loadConfig()
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store := newFileStore(cfg.StorePath)
	engine := walletcore.NewEngine(store, log)

	root := &cobra.Command{Use: "walletcored"}
	root.AddCommand(seedCmd(engine))
	root.AddCommand(xprvCmd(engine))
	root.AddCommand(xpubCmd(engine))
	root.AddCommand(wifCmd(engine))
	root.AddCommand(checkPubkeyCmd(engine))
	root.AddCommand(signCmd(engine))
	root.AddCommand(getOutputsCmd(engine))
	root.AddCommand(deserializeOutputsCmd(engine))

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func seedCmd(e *walletcore.Engine) *cobra.Command {
	cmd := &cobra.Command{Use: "seed", Short: "seed the wallet from a mnemonic, random entropy, or an xprv"}

	mnemonicCmd := &cobra.Command{
		Use:   "mnemonic [words...]",
		Short: "seed from a BIP39 mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase, _ := cmd.Flags().GetString("passphrase")
			return e.MasterFromMnemonic(strings.Join(args, " "), passphrase, nil)
		},
	}
	mnemonicCmd.Flags().String("passphrase", "", "optional BIP39 passphrase")
	cmd.AddCommand(mnemonicCmd)

	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "seed from the OS CSPRNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.MasterFromRandom(rand.Reader)
		},
	}
	cmd.AddCommand(randomCmd)

	xprvSeedCmd := &cobra.Command{
		Use:   "xprv [extended-private-key]",
		Short: "re-seed from a serialized extended private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.MasterFromXprv(args[0])
		},
	}
	cmd.AddCommand(xprvSeedCmd)

	return cmd
}

func xprvCmd(e *walletcore.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "xprv [path]",
		Short: "derive and print an extended private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := e.Xprv(args[0])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func xpubCmd(e *walletcore.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "xpub [path]",
		Short: "derive and print an extended public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := e.Xpub(args[0])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func wifCmd(e *walletcore.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "wif [path]",
		Short: "derive and print a private key in Wallet Import Format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := e.WIF(args[0])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func checkPubkeyCmd(e *walletcore.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "checkpubkey [address] [path]",
		Short: "report whether path derives to address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			presence, err := e.CheckPubkey(args[0], args[1])
			if err != nil {
				return err
			}
			if presence == walletcore.Present {
				fmt.Println("present")
			} else {
				fmt.Println("absent")
			}
			return nil
		},
	}
}

func signCmd(e *walletcore.Engine) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [message-hex] [path]",
		Short: "sign a digest or message under the derived key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toHash, _ := cmd.Flags().GetBool("to-hash")
			sig, err := e.Sign(args[0], args[1], toHash)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(sig)
		},
	}
	cmd.Flags().Bool("to-hash", false, "double-SHA256 the message before signing")
	return cmd
}

func getOutputsCmd(e *walletcore.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "getoutputs [tx-hex]",
		Short: "extract the output section of a raw legacy transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := e.GetOutputs(args[0])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func deserializeOutputsCmd(e *walletcore.Engine) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deserializeoutputs [outputs-hex]",
		Short: "parse outputs and enforce the change-address policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changePath, _ := cmd.Flags().GetString("change-path")
			entries, err := e.DeserializeOutputs(args[0], changePath)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(entries)
		},
	}
	cmd.Flags().String("change-path", "", "derivation path of the expected change address")
	return cmd
}
