// Package keymaterial generates the secp256k1 keypair at the root of a
// quorum: a 32-byte secret key scoped for zeroization, and its
// uncompressed public key point.
package keymaterial

import (
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/luxfi/quorum/internal/quorumerr"
	"github.com/luxfi/quorum/internal/secretbuf"
)

// PublicKeySize is the length of an uncompressed secp256k1 point:
// 0x04 ‖ X(32) ‖ Y(32).
const PublicKeySize = 65

// SecretKeySize is the length of a secp256k1 scalar.
const SecretKeySize = 32

// PublicKey is the uncompressed serialization of a secp256k1 point. It is
// public material with no zeroization requirement.
type PublicKey [PublicKeySize]byte

// Bytes returns the raw 65-byte uncompressed point.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pk[:])
	return out
}

// ParsePublicKey validates that data is a well-formed secp256k1 point in
// uncompressed serialization and returns it as a PublicKey.
func ParsePublicKey(data []byte) (PublicKey, error) {
	var pk PublicKey
	if len(data) != PublicKeySize {
		return pk, quorumerr.New(quorumerr.KindInvalidPublicKey, "wrong length")
	}
	if _, err := secp256k1.ParsePubKey(data); err != nil {
		return pk, quorumerr.Wrap(quorumerr.KindInvalidPublicKey, "curve rejected point", err)
	}
	copy(pk[:], data)
	return pk, nil
}

// GenerateKeyPair draws a secp256k1 keypair using rejection sampling: 32
// bytes are drawn from random and parsed as a scalar in [1, n-1], redrawing
// on failure. The secret key is returned in a scoped container that the
// caller must Release.
//
// GenerateKeyPair only fails if random itself fails; rejection sampling is
// not retried past an I/O error.
func GenerateKeyPair(random io.Reader) (*secretbuf.SecretKey, PublicKey, error) {
	buf := make([]byte, SecretKeySize)
	defer zero(buf)

	for {
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, PublicKey{}, quorumerr.Wrap(quorumerr.KindIO, "reading random bytes", err)
		}

		var scalar secp256k1.ModNScalar
		overflow := scalar.SetByteSlice(buf)
		if overflow || scalar.IsZero() {
			zero(buf)
			continue
		}

		sk := secretbuf.NewSecretKey(buf)
		priv := secp256k1.PrivKeyFromBytes(buf)
		pub := priv.PubKey()

		var pk PublicKey
		copy(pk[:], pub.SerializeUncompressed())
		return sk, pk, nil
	}
}

// DeriveSecretKey validates that data (32 bytes) is a well-formed
// secp256k1 scalar and wraps it in a scoped container. Used by recovery,
// where the secret arrives already reconstructed rather than freshly
// sampled.
func DeriveSecretKey(data []byte) (*secretbuf.SecretKey, error) {
	if len(data) != SecretKeySize {
		return nil, quorumerr.New(quorumerr.KindInvalidSecretKey, "wrong length")
	}
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(data)
	if overflow || scalar.IsZero() {
		return nil, quorumerr.New(quorumerr.KindInvalidSecretKey, "not a valid secp256k1 scalar")
	}
	return secretbuf.NewSecretKey(data), nil
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
