// Command quorum splits, recovers, and uses secp256k1 keys under a Shamir
// quorum: generate a keypair and its shares, encrypt to the public key, and
// decrypt by reconstructing the secret from a threshold of shares.
package main

import (
	"os"

	"github.com/luxfi/quorum/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
