// Package randsource wires the cryptographic random source used by key
// generation and splitting into an explicit dependency rather than ambient
// global state, following the teacher's GenerateKeyPairFromReader pattern.
//
// Production code should use OS(). Tests that need reproducible output
// (e.g. verifying that the same seed always produces the same PEM output)
// should use NewDeterministic, never OS().
package randsource

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Source is a cryptographically strong byte source.
type Source = io.Reader

// OS returns the operating system's secure random generator.
func OS() Source {
	return rand.Reader
}

// deterministic is a seeded, reproducible byte stream built on ChaCha20.
// It is NOT a bit-compatible reimplementation of any particular language's
// seeded-RNG construction (see SPEC_FULL.md §8): it exists so the same
// 64-bit seed always yields the same output within this module, which is
// what the deterministic-generation test property requires.
type deterministic struct {
	cipher *chacha20.Cipher
}

// NewDeterministic builds a seeded, reproducible Source from a 64-bit seed.
// The seed is expanded into a 32-byte ChaCha20 key and a fixed nonce; the
// returned Source then behaves like an infinite keystream read through
// io.ReadFull.
func NewDeterministic(seed uint64) Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	// Remaining key bytes stay zero: the seed is the only entropy input by
	// design, so distinct seeds must map to distinct keystreams and the
	// same seed must always map to the same one.
	nonce := [chacha20.NonceSize]byte{}
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Only possible if key/nonce length is wrong, which is impossible
		// given the fixed-size arrays above.
		panic(err)
	}
	return &deterministic{cipher: c}
}

func (d *deterministic) Read(p []byte) (int, error) {
	zero := make([]byte, len(p))
	d.cipher.XORKeyStream(p, zero)
	return len(p), nil
}
