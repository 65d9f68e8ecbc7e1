// Package cmd implements the quorum CLI: generate, encrypt, and decrypt,
// wired on top of github.com/spf13/cobra.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var errNoSubcommand = errors.New("no subcommand given")

// ran is set to true once a subcommand's RunE actually begins executing.
// An error returned before that point (cobra argument parsing, an unknown
// flag, or this package's own no-subcommand RunE) is by definition a usage
// failure and must exit 2; an error returned after is a runtime failure and
// exits 1.
var ran bool

var rootCmd = &cobra.Command{
	Use:           "quorum",
	Short:         "Quorum-gated asymmetric encryption",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errNoSubcommand
	},
}

func init() {
	rootCmd.AddCommand(generateCmd, encryptCmd, decryptCmd)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ran = false
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	if !ran {
		fmt.Fprintln(os.Stderr, "run 'quorum --help' for usage")
		return 2
	}
	return 1
}
