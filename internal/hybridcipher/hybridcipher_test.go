package hybridcipher

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/luxfi/quorum/internal/keymaterial"
	"github.com/luxfi/quorum/internal/quorumerr"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	sk, pk, err := keymaterial.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk.Release()

	plaintext := []byte("attack at dawn")
	ciphertext, err := Encrypt(pk, plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	decrypted, err := Decrypt(sk, ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	defer decrypted.Release()

	if !bytes.Equal(decrypted.Bytes(), plaintext) {
		t.Fatalf("decrypted = %q, want %q", decrypted.Bytes(), plaintext)
	}
}

func TestEncryptDecryptEmptyPlaintext(t *testing.T) {
	sk, pk, err := keymaterial.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk.Release()

	ciphertext, err := Encrypt(pk, nil)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	decrypted, err := Decrypt(sk, ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	defer decrypted.Release()
	if len(decrypted.Bytes()) != 0 {
		t.Fatalf("decrypted non-empty plaintext from empty input: %q", decrypted.Bytes())
	}
}

func TestTamperDetection(t *testing.T) {
	sk, pk, err := keymaterial.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk.Release()

	ciphertext, err := Encrypt(pk, []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	for i := range ciphertext {
		tampered := append([]byte(nil), ciphertext...)
		tampered[i] ^= 0x01
		if _, err := Decrypt(sk, tampered); err == nil {
			t.Fatalf("flipping bit in byte %d did not cause decryption failure", i)
		} else if quorumerr.Of(err) != quorumerr.KindDecryptionFailed && quorumerr.Of(err) != quorumerr.KindMalformedCiphertext {
			t.Fatalf("byte %d: unexpected error kind: %v", i, err)
		}
	}
}

func TestDecryptWrongKeyFails(t *testing.T) {
	sk1, pk1, err := keymaterial.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk1.Release()

	sk2, _, err := keymaterial.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk2.Release()

	ciphertext, err := Encrypt(pk1, []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if _, err := Decrypt(sk2, ciphertext); quorumerr.Of(err) != quorumerr.KindDecryptionFailed {
		t.Fatalf("expected KindDecryptionFailed decrypting with wrong key, got %v", err)
	}
}

func TestEncryptInvalidPublicKey(t *testing.T) {
	var bogus keymaterial.PublicKey
	if _, err := Encrypt(bogus, []byte("x")); quorumerr.Of(err) != quorumerr.KindInvalidPublicKey {
		t.Fatalf("expected KindInvalidPublicKey, got %v", err)
	}
}

func TestDecryptMalformedCiphertext(t *testing.T) {
	sk, _, err := keymaterial.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer sk.Release()

	if _, err := Decrypt(sk, []byte("too short")); quorumerr.Of(err) != quorumerr.KindMalformedCiphertext {
		t.Fatalf("expected KindMalformedCiphertext, got %v", err)
	}
}
