package cmd

import (
	"io"
	"os"

	"github.com/luxfi/quorum/internal/quorumerr"
)

// readInput reads path, or standard input to EOF when path is empty.
func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, quorumerr.Wrap(quorumerr.KindIO, "reading standard input", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindIO, "reading "+path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or standard output when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return quorumerr.Wrap(quorumerr.KindIO, "writing standard output", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return quorumerr.Wrap(quorumerr.KindIO, "writing "+path, err)
	}
	return nil
}
