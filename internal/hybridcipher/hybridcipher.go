// Package hybridcipher implements ECIES over secp256k1: ephemeral ECDH,
// HKDF-SHA256 key derivation, and AES-256-GCM authenticated encryption.
// This profile is pinned per spec.md §4.4/§9 — implementations MUST NOT
// swap in a different KDF/AEAD, since ciphertexts from two implementations
// interoperate only if the profile matches.
package hybridcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/hkdf"

	"github.com/luxfi/quorum/internal/keymaterial"
	"github.com/luxfi/quorum/internal/quorumerr"
	"github.com/luxfi/quorum/internal/secretbuf"
)

const (
	nonceSize = 12
	tagSize   = 16
	keySize   = 32 // AES-256
)

// Encrypt encrypts plaintext to recipient's public key. The returned blob
// has the wire layout EK(65) ‖ nonce(12) ‖ ciphertext ‖ tag(16).
func Encrypt(recipient keymaterial.PublicKey, plaintext []byte) ([]byte, error) {
	return EncryptWithRandom(recipient, plaintext, rand.Reader)
}

// EncryptWithRandom behaves like Encrypt but draws the ephemeral keypair
// and nonce from an explicit random source, for deterministic testing.
func EncryptWithRandom(recipient keymaterial.PublicKey, plaintext []byte, random io.Reader) ([]byte, error) {
	recipientPub, err := secp256k1.ParsePubKey(recipient[:])
	if err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindInvalidPublicKey, "parsing recipient key", err)
	}

	ephSK, ephPK, err := keymaterial.GenerateKeyPair(random)
	if err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindEncryptionFailed, "generating ephemeral key", err)
	}
	defer ephSK.Release()

	shared, err := ecdh(ephSK.Bytes(), recipientPub)
	if err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindEncryptionFailed, "deriving shared secret", err)
	}
	defer shared.Release()

	key, err := deriveKey(shared.Bytes())
	if err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindEncryptionFailed, "deriving symmetric key", err)
	}
	defer zero(key)

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindEncryptionFailed, "generating nonce", err)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindEncryptionFailed, "initializing AEAD", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, keymaterial.PublicKeySize+nonceSize+len(sealed))
	blob = append(blob, ephPK.Bytes()...)
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)
	return blob, nil
}

// Decrypt decrypts blob (produced by Encrypt) using the recipient's secret
// key. Truncation and a bad ephemeral key return KindMalformedCiphertext;
// key-derivation and authentication failures return KindDecryptionFailed.
// Both Kinds share one user-visible message (see quorumerr) to avoid an
// AEAD oracle.
func Decrypt(sk *secretbuf.SecretKey, blob []byte) (*secretbuf.Bytes, error) {
	minLen := keymaterial.PublicKeySize + nonceSize + tagSize
	if len(blob) < minLen {
		return nil, quorumerr.New(quorumerr.KindMalformedCiphertext, "ciphertext too short")
	}

	ephPKBytes := blob[:keymaterial.PublicKeySize]
	nonce := blob[keymaterial.PublicKeySize : keymaterial.PublicKeySize+nonceSize]
	sealed := blob[keymaterial.PublicKeySize+nonceSize:]

	ephPK, err := secp256k1.ParsePubKey(ephPKBytes)
	if err != nil {
		return nil, quorumerr.New(quorumerr.KindMalformedCiphertext, "invalid ephemeral key")
	}

	shared, err := ecdh(sk.Bytes(), ephPK)
	if err != nil {
		return nil, quorumerr.New(quorumerr.KindDecryptionFailed, "deriving shared secret")
	}
	defer shared.Release()

	key, err := deriveKey(shared.Bytes())
	if err != nil {
		return nil, quorumerr.New(quorumerr.KindDecryptionFailed, "deriving symmetric key")
	}
	defer zero(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, quorumerr.New(quorumerr.KindDecryptionFailed, "initializing AEAD")
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, quorumerr.New(quorumerr.KindDecryptionFailed, "AEAD authentication failed")
	}

	wrapped := secretbuf.NewBytes(plaintext)
	zero(plaintext)
	return wrapped, nil
}

// ecdh computes the x-coordinate of skBytes * pubKey, the shared ECDH
// point, and returns it in a scoped container.
func ecdh(skBytes []byte, pubKey *secp256k1.PublicKey) (*secretbuf.Bytes, error) {
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(skBytes); overflow {
		return nil, quorumerr.New(quorumerr.KindInvalidSecretKey, "scalar overflow")
	}

	var point, result secp256k1.JacobianPoint
	pubKey.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&scalar, &point, &result)
	result.ToAffine()

	x := result.X.Bytes()
	return secretbuf.NewBytes(x[:]), nil
}

// deriveKey expands the ECDH shared secret into an AES-256 key via
// HKDF-SHA256 with empty salt and info, per the pinned ECIES profile.
func deriveKey(shared []byte) ([]byte, error) {
	kdf := hkdf.New(sha256.New, shared, nil, nil)
	key := make([]byte, keySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return key, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
