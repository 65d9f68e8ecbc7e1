// Package quorumsplit binds Shamir secret sharing of a secp256k1 private
// key to a per-generation QuorumId, and produces/consumes the PEM-wrapped
// on-disk artifacts described in spec.md §§3-4.
package quorumsplit

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/sha3"

	"github.com/luxfi/quorum/internal/keymaterial"
	"github.com/luxfi/quorum/internal/pemcodec"
	"github.com/luxfi/quorum/internal/quorumerr"
	"github.com/luxfi/quorum/internal/secretbuf"
	"github.com/luxfi/quorum/internal/shamir"
)

// QuorumIDSize is the length of the random tag bound to every share of one
// generation.
const QuorumIDSize = 32

// MaxShares is the largest N this package will emit or recover, bounded by
// the one-byte share-index space (spec.md §3).
const MaxShares = 255

// GenerationResult is the output of Split: N PEM-encoded private shares and
// one PEM-encoded public key. This mirrors the original Rust
// implementation's Pems container (see SPEC_FULL.md §11): it exists so
// callers can either concatenate everything to a stream or fan it out to a
// directory without duplicating PEM-assembly logic in the CLI layer.
type GenerationResult struct {
	sharePems [][]byte
	pubPem    []byte
	pub       keymaterial.PublicKey
}

// PublicKey returns the generated public key.
func (g *GenerationResult) PublicKey() keymaterial.PublicKey {
	return g.pub
}

// SharePEMs returns the PEM-encoded shares in index order (share 0 first).
func (g *GenerationResult) SharePEMs() [][]byte {
	return g.sharePems
}

// PubkeyPEM returns the PEM-encoded public key.
func (g *GenerationResult) PubkeyPEM() []byte {
	return g.pubPem
}

// WriteTo concatenates every share PEM followed by the public key PEM and
// writes them to w, matching the CLI's "no DIR given" stdout mode.
func (g *GenerationResult) WriteTo(w io.Writer) error {
	for _, share := range g.sharePems {
		if _, err := w.Write(share); err != nil {
			return quorumerr.Wrap(quorumerr.KindIO, "writing share", err)
		}
	}
	if _, err := w.Write(g.pubPem); err != nil {
		return quorumerr.Wrap(quorumerr.KindIO, "writing public key", err)
	}
	return nil
}

// WriteToDir writes quorum_share_{i}.priv for each share and quorum.pub to
// dir, matching the CLI's "DIR given" mode.
func (g *GenerationResult) WriteToDir(dir string) error {
	for i, share := range g.sharePems {
		path := fmt.Sprintf("%s/quorum_share_%d.priv", dir, i)
		if err := os.WriteFile(path, share, 0o600); err != nil {
			return quorumerr.Wrap(quorumerr.KindIO, "writing "+path, err)
		}
	}
	path := dir + "/quorum.pub"
	if err := os.WriteFile(path, g.pubPem, 0o644); err != nil {
		return quorumerr.Wrap(quorumerr.KindIO, "writing "+path, err)
	}
	return nil
}

// Split generates a secp256k1 keypair and splits its private key into a
// (threshold, shares) Shamir scheme, binding every share to one freshly
// drawn QuorumId.
func Split(threshold, shareCount int, random io.Reader) (*GenerationResult, error) {
	if threshold == 0 {
		return nil, quorumerr.New(quorumerr.KindInvalidThreshold, "threshold must be at least 1")
	}
	if shareCount == 0 {
		return nil, quorumerr.New(quorumerr.KindZeroShares, "share count must be at least 1")
	}
	if threshold > shareCount {
		return nil, quorumerr.New(quorumerr.KindThresholdExceedsShares, fmt.Sprintf("t=%d > n=%d", threshold, shareCount))
	}
	if shareCount > MaxShares {
		return nil, quorumerr.New(quorumerr.KindThresholdExceedsShares, fmt.Sprintf("n=%d exceeds max of %d", shareCount, MaxShares))
	}

	sk, pk, err := keymaterial.GenerateKeyPair(random)
	if err != nil {
		return nil, err
	}
	defer sk.Release()

	quorumID := make([]byte, QuorumIDSize)
	if _, err := io.ReadFull(random, quorumID); err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindIO, "drawing quorum id", err)
	}

	rawShares, err := shamir.Split(sk.Bytes(), threshold, shareCount, random)
	if err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindMalformedShare, "splitting secret", err)
	}

	sharePems := make([][]byte, 0, shareCount)
	for _, shareBody := range rawShares {
		wire := append(append([]byte{}, shareBody...), quorumID...)
		pemBlock, err := pemcodec.Encode(pemcodec.TagShare, wire)
		if err != nil {
			return nil, err
		}
		zero(wire)
		sharePems = append(sharePems, pemBlock)
	}

	pubPem, err := pemcodec.Encode(pemcodec.TagPubkey, pk.Bytes())
	if err != nil {
		return nil, err
	}

	return &GenerationResult{sharePems: sharePems, pubPem: pubPem, pub: pk}, nil
}

// Recover reconstructs the secret key from an ordered list of raw,
// PEM-encoded share blobs, checking the preconditions from spec.md §4.3.2
// in order.
func Recover(shareBlobs [][]byte, threshold int) (*secretbuf.SecretKey, error) {
	k := len(shareBlobs)
	if k == 0 {
		return nil, quorumerr.New(quorumerr.KindNoShares, "")
	}
	if k < threshold {
		return nil, quorumerr.New(quorumerr.KindInsufficientShares, fmt.Sprintf("have %d, need %d", k, threshold))
	}
	if k > MaxShares {
		return nil, quorumerr.New(quorumerr.KindTooManyShares, fmt.Sprintf("%d exceeds max of %d", k, MaxShares))
	}

	var quorumID []byte
	rawShares := make([][]byte, 0, k)
	seenIndex := make(map[byte]bool, k)

	// Registered before the loop so every early return below — malformed
	// PEM, wrong tag, short share, quorum mismatch, duplicate index — still
	// scrubs whatever shares 0..i-1 already collected, not just the share
	// that triggered the error.
	defer func() {
		for _, s := range rawShares {
			zero(s)
		}
	}()
	defer func() {
		if quorumID != nil {
			zero(quorumID)
		}
	}()

	for i, blob := range shareBlobs {
		tag, payload, err := pemcodec.DecodeSecret(blob)
		if err != nil {
			return nil, err
		}
		if err := pemcodec.ExpectTag(tag, pemcodec.TagShare); err != nil {
			payload.Release()
			return nil, err
		}

		raw := payload.Bytes()
		if len(raw) <= QuorumIDSize {
			payload.Release()
			return nil, quorumerr.New(quorumerr.KindMalformedShare, fmt.Sprintf("share %d too short", i))
		}

		shareID := append([]byte{}, raw[len(raw)-QuorumIDSize:]...)
		shareBody := append([]byte{}, raw[:len(raw)-QuorumIDSize]...)
		payload.Release()

		if quorumID == nil {
			quorumID = shareID
		} else if !bytes.Equal(quorumID, shareID) {
			zero(shareBody)
			zero(shareID)
			return nil, quorumerr.New(quorumerr.KindQuorumMismatch, "")
		} else {
			zero(shareID)
		}

		// shareBody is non-empty: the length check above guarantees
		// len(raw) > QuorumIDSize, so raw[:len(raw)-QuorumIDSize] has at
		// least one byte.
		if seenIndex[shareBody[0]] {
			zero(shareBody)
			return nil, quorumerr.New(quorumerr.KindDuplicateShare, fmt.Sprintf("index %d repeated", shareBody[0]))
		}
		seenIndex[shareBody[0]] = true

		rawShares = append(rawShares, shareBody)
	}

	secret, err := shamir.Combine(rawShares)
	if err != nil {
		return nil, quorumerr.Wrap(quorumerr.KindMalformedShare, "reconstructing secret", err)
	}
	defer zero(secret)

	if len(secret) != keymaterial.SecretKeySize {
		return nil, quorumerr.New(quorumerr.KindBadSecretLength, fmt.Sprintf("got %d bytes, want %d", len(secret), keymaterial.SecretKeySize))
	}

	return keymaterial.DeriveSecretKey(secret)
}

// RecoverFromPaths reads each path in sharePaths and calls Recover on the
// resulting byte slices. This mirrors the original implementation's
// separation between path-based and buffer-based recovery (SPEC_FULL.md
// §11): the core Recover operation stays byte-slice-only.
func RecoverFromPaths(sharePaths []string, threshold int) (*secretbuf.SecretKey, error) {
	blobs := make([][]byte, 0, len(sharePaths))
	for _, path := range sharePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, quorumerr.Wrap(quorumerr.KindIO, "reading "+path, err)
		}
		blobs = append(blobs, data)
	}
	return Recover(blobs, threshold)
}

// Fingerprint computes a Keccak-256 domain-separation tag over
// (pk ‖ quorumID). It is never consulted by Split/Recover/Encrypt/Decrypt
// and never embedded in any on-disk artifact: it exists only as an
// out-of-band helper for host programs that want to log or compare which
// generation a public key and quorum id came from, without the core
// providing any cryptographic binding between them (see SPEC_FULL.md §12,
// Open Question 3 — that binding remains an explicit Non-goal).
func Fingerprint(pk keymaterial.PublicKey, quorumID [QuorumIDSize]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(pk[:])
	h.Write(quorumID[:])
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
