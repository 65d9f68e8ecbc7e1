package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/quorum/internal/hybridcipher"
	"github.com/luxfi/quorum/internal/keymaterial"
	"github.com/luxfi/quorum/internal/pemcodec"
	"github.com/luxfi/quorum/internal/quorumerr"
)

var (
	encryptIn  string
	encryptOut string
)

var encryptCmd = &cobra.Command{
	Use:           "encrypt PUBKEY",
	Short:         "Encrypt plaintext to a quorum public key",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ran = true

		pubPem, err := os.ReadFile(args[0])
		if err != nil {
			return quorumerr.Wrap(quorumerr.KindIO, "reading "+args[0], err)
		}
		tag, payload, err := pemcodec.Decode(pubPem)
		if err != nil {
			return err
		}
		if err := pemcodec.ExpectTag(tag, pemcodec.TagPubkey); err != nil {
			return err
		}
		pk, err := keymaterial.ParsePublicKey(payload)
		if err != nil {
			return err
		}

		plaintext, err := readInput(encryptIn)
		if err != nil {
			return err
		}

		ciphertext, err := hybridcipher.Encrypt(pk, plaintext)
		if err != nil {
			return err
		}

		blob, err := pemcodec.Encode(pemcodec.TagCiphertext, ciphertext)
		if err != nil {
			return err
		}
		return writeOutput(encryptOut, blob)
	},
}

func init() {
	encryptCmd.Flags().StringVar(&encryptIn, "in", "", "read plaintext from this file instead of standard input")
	encryptCmd.Flags().StringVar(&encryptOut, "out", "", "write ciphertext to this file instead of standard output")
}
