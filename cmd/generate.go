package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/quorum/internal/quorumsplit"
	"github.com/luxfi/quorum/internal/randsource"
)

var (
	generateThreshold int
	generateShares    int
)

var generateCmd = &cobra.Command{
	Use:           "generate [DIR]",
	Short:         "Generate a keypair and split its secret into Shamir shares",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ran = true

		result, err := quorumsplit.Split(generateThreshold, generateShares, randsource.OS())
		if err != nil {
			return err
		}

		if len(args) == 1 {
			return result.WriteToDir(args[0])
		}
		return result.WriteTo(os.Stdout)
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateThreshold, "threshold", "t", 3, "number of shares required to recover the secret")
	generateCmd.Flags().IntVarP(&generateShares, "shares", "n", 5, "number of shares to generate")
}
