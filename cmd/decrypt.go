package cmd

import (
	"github.com/spf13/cobra"

	"github.com/luxfi/quorum/internal/hybridcipher"
	"github.com/luxfi/quorum/internal/pemcodec"
	"github.com/luxfi/quorum/internal/quorumsplit"
)

var (
	decryptThreshold int
	decryptIn        string
	decryptOut       string
)

var decryptCmd = &cobra.Command{
	Use:           "decrypt SHARE...",
	Short:         "Recover a secret from shares and decrypt a ciphertext with it",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ran = true

		sk, err := quorumsplit.RecoverFromPaths(args, decryptThreshold)
		if err != nil {
			return err
		}
		defer sk.Release()

		ciphertextPem, err := readInput(decryptIn)
		if err != nil {
			return err
		}
		tag, payload, err := pemcodec.Decode(ciphertextPem)
		if err != nil {
			return err
		}
		if err := pemcodec.ExpectTag(tag, pemcodec.TagCiphertext); err != nil {
			return err
		}

		plaintext, err := hybridcipher.Decrypt(sk, payload)
		if err != nil {
			return err
		}
		defer plaintext.Release()

		return writeOutput(decryptOut, plaintext.Bytes())
	},
}

func init() {
	decryptCmd.Flags().IntVarP(&decryptThreshold, "threshold", "t", 3, "number of shares required to recover the secret")
	decryptCmd.Flags().StringVar(&decryptIn, "in", "", "read ciphertext from this file instead of standard input")
	decryptCmd.Flags().StringVar(&decryptOut, "out", "", "write plaintext to this file instead of standard output")
}
