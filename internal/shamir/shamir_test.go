package shamir

import (
	"bytes"
	"crypto/rand"
	mathrand "math/rand"
	"testing"
)

func TestSplitCombineRoundTrip(t *testing.T) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}

	shares, err := Split(secret, 3, 5, rand.Reader)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("got %d shares, want 5", len(shares))
	}
	for i, s := range shares {
		if len(s) != 33 {
			t.Fatalf("share %d has length %d, want 33", i, len(s))
		}
		if s[0] != byte(i+1) {
			t.Fatalf("share %d has index byte %d, want %d", i, s[0], i+1)
		}
	}

	// Any 3-of-5 subset must recover the same secret.
	subsets := [][]int{{0, 1, 2}, {0, 2, 4}, {1, 3, 4}, {2, 3, 4}}
	for _, subset := range subsets {
		chosen := make([][]byte, 0, len(subset))
		for _, idx := range subset {
			chosen = append(chosen, shares[idx])
		}
		got, err := Combine(chosen)
		if err != nil {
			t.Fatalf("Combine(%v): %v", subset, err)
		}
		if !bytes.Equal(got, secret) {
			t.Fatalf("Combine(%v) = %x, want %x", subset, got, secret)
		}
	}
}

func TestCombineOrderIndependent(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	shares, err := Split(secret, 2, 4, rand.Reader)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	r := mathrand.New(mathrand.NewSource(42))
	first := append([][]byte{}, shares[:2]...)
	shuffled := append([][]byte{}, shares[:2]...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	got1, err := Combine(first)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	got2, err := Combine(shuffled)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !bytes.Equal(got1, got2) {
		t.Fatalf("combine order dependence: %x != %x", got1, got2)
	}
}

func TestSplitInvalidParameters(t *testing.T) {
	secret := make([]byte, 32)

	if _, err := Split(secret, 0, 5, rand.Reader); err == nil {
		t.Error("expected error for t=0")
	}
	if _, err := Split(secret, 5, 3, rand.Reader); err == nil {
		t.Error("expected error for t>n")
	}
	if _, err := Split([]byte{}, 1, 1, rand.Reader); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := Split(secret, 1, 256, rand.Reader); err == nil {
		t.Error("expected error for n>255")
	}
}

func TestCombineDetectsDuplicateIndex(t *testing.T) {
	secret := make([]byte, 32)
	shares, err := Split(secret, 2, 2, rand.Reader)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	dup := [][]byte{shares[0], shares[0]}
	if _, err := Combine(dup); err == nil {
		t.Error("expected error for duplicate share index")
	}
}

func TestCombineTooFewSharesYieldsWrongSecret(t *testing.T) {
	// Property 3 in spec.md §8 is enforced at the quorumsplit layer (which
	// knows the declared threshold); shamir.Combine itself has no concept
	// of "insufficient" and will happily interpolate a constant (degree-0)
	// polynomial through a single point, producing garbage. This test
	// documents that.
	secret := []byte{0x42}
	shares, err := Split(secret, 3, 5, rand.Reader)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	got, err := Combine(shares[:1])
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if bytes.Equal(got, secret) {
		t.Fatalf("combining 1 of 3 shares unexpectedly recovered the secret")
	}
}

func TestGF256Arithmetic(t *testing.T) {
	for a := 0; a < 256; a++ {
		if gfAdd(byte(a), byte(a)) != 0 {
			t.Fatalf("gfAdd(%d,%d) != 0", a, a)
		}
	}
	for a := 1; a < 256; a++ {
		inv := gfInv(byte(a))
		if gfMul(byte(a), inv) != 1 {
			t.Fatalf("gfMul(%d, inv(%d))=%d, want 1", a, a, gfMul(byte(a), inv))
		}
	}
}
