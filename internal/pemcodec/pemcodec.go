// Package pemcodec wraps arbitrary byte payloads in the textual PEM
// envelope used for every on-disk artifact (shares, public keys,
// ciphertexts), enforcing the LF-only, 64-column line discipline that
// spec.md §4.2 calls load-bearing.
package pemcodec

import (
	"bytes"
	"encoding/pem"
	"fmt"

	"github.com/luxfi/quorum/internal/quorumerr"
	"github.com/luxfi/quorum/internal/secretbuf"
)

// TagShare, TagPubkey, and TagCiphertext are the only three PEM tags this
// codec accepts. No other tag is valid anywhere in the core.
const (
	TagShare      = "QUORUM SHARE"
	TagPubkey     = "QUORUM PUBKEY"
	TagCiphertext = "QUORUM CIPHERTEXT"
)

func validTag(tag string) bool {
	switch tag {
	case TagShare, TagPubkey, TagCiphertext:
		return true
	default:
		return false
	}
}

// Encode wraps payload in a PEM block of the given tag. The output uses LF
// line endings exclusively and ends in a trailing newline, matching
// Go's encoding/pem output exactly (it already wraps at 64 base64 columns
// and emits '\n', never '\r\n').
func Encode(tag string, payload []byte) ([]byte, error) {
	if !validTag(tag) {
		return nil, quorumerr.New(quorumerr.KindUnexpectedTag, tag)
	}
	block := &pem.Block{Type: tag, Bytes: payload}
	return pem.EncodeToMemory(block), nil
}

// Decode parses exactly one PEM block from data, tolerating leading and
// trailing whitespace. It fails with KindMalformedPem if no block is found
// or non-whitespace data follows the block, and with KindUnexpectedTag if
// the tag isn't one of the three recognized tags.
func Decode(data []byte) (tag string, payload []byte, err error) {
	trimmed := bytes.TrimSpace(data)
	block, rest := pem.Decode(trimmed)
	if block == nil {
		return "", nil, quorumerr.New(quorumerr.KindMalformedPem, "no PEM block found")
	}
	if len(bytes.TrimSpace(rest)) != 0 {
		return "", nil, quorumerr.New(quorumerr.KindMalformedPem, "trailing data after PEM block")
	}
	if !validTag(block.Type) {
		return "", nil, quorumerr.New(quorumerr.KindUnexpectedTag, block.Type)
	}
	return block.Type, block.Bytes, nil
}

// DecodeSecret behaves like Decode but is used for blocks known to carry
// secret material (QUORUM SHARE). The payload is handed back inside a
// scoped container, and the intermediate decoded buffer returned by Go's
// pem.Decode is zeroed before DecodeSecret returns. The caller-supplied
// data is left unmodified.
func DecodeSecret(data []byte) (tag string, payload *secretbuf.Bytes, err error) {
	t, raw, decodeErr := Decode(data)
	if decodeErr != nil {
		return "", nil, decodeErr
	}
	wrapped := secretbuf.NewBytes(raw)
	zero(raw)
	return t, wrapped, nil
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// ExpectTag returns a KindUnexpectedTag error if tag doesn't equal want.
func ExpectTag(tag, want string) error {
	if tag != want {
		return quorumerr.New(quorumerr.KindUnexpectedTag, fmt.Sprintf("got %q, want %q", tag, want))
	}
	return nil
}
