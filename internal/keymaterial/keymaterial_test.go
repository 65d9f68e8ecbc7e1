package keymaterial

import (
	"crypto/rand"
	"testing"

	"github.com/luxfi/quorum/internal/quorumerr"
	"github.com/luxfi/quorum/internal/randsource"
)

func TestGenerateKeyPairValid(t *testing.T) {
	sk, pk, err := GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk.Release()

	if len(sk.Bytes()) != SecretKeySize {
		t.Fatalf("secret key length = %d, want %d", len(sk.Bytes()), SecretKeySize)
	}
	if pk[0] != 0x04 {
		t.Fatalf("public key prefix = %#x, want 0x04 (uncompressed)", pk[0])
	}

	if _, err := ParsePublicKey(pk.Bytes()); err != nil {
		t.Fatalf("generated public key failed to round-trip through ParsePublicKey: %v", err)
	}
	if _, err := DeriveSecretKey(sk.Bytes()); err != nil {
		t.Fatalf("generated secret key failed to round-trip through DeriveSecretKey: %v", err)
	}
}

func TestGenerateKeyPairDeterministicSeed(t *testing.T) {
	sk1, pk1, err := GenerateKeyPair(randsource.NewDeterministic(1234))
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk1.Release()

	sk2, pk2, err := GenerateKeyPair(randsource.NewDeterministic(1234))
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk2.Release()

	if pk1 != pk2 {
		t.Fatalf("same seed produced different public keys: %x != %x", pk1, pk2)
	}
	if string(sk1.Bytes()) != string(sk2.Bytes()) {
		t.Fatalf("same seed produced different secret keys")
	}

	sk3, pk3, err := GenerateKeyPair(randsource.NewDeterministic(5678))
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk3.Release()

	if pk1 == pk3 {
		t.Fatalf("different seeds produced the same public key")
	}
}

func TestParsePublicKeyRejectsGarbage(t *testing.T) {
	if _, err := ParsePublicKey(make([]byte, 65)); quorumerr.Of(err) != quorumerr.KindInvalidPublicKey {
		t.Fatalf("expected KindInvalidPublicKey for all-zero point")
	}
	if _, err := ParsePublicKey(make([]byte, 10)); quorumerr.Of(err) != quorumerr.KindInvalidPublicKey {
		t.Fatalf("expected KindInvalidPublicKey for wrong length")
	}
}

func TestDeriveSecretKeyRejectsZeroAndOverflow(t *testing.T) {
	zero := make([]byte, 32)
	if _, err := DeriveSecretKey(zero); quorumerr.Of(err) != quorumerr.KindInvalidSecretKey {
		t.Fatalf("expected KindInvalidSecretKey for zero scalar")
	}

	// 2^256-1, above the secp256k1 group order n; n and above overflow the
	// scalar field.
	overflow := []byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
	if _, err := DeriveSecretKey(overflow); quorumerr.Of(err) != quorumerr.KindInvalidSecretKey {
		t.Fatalf("expected KindInvalidSecretKey for overflowing scalar")
	}
}
