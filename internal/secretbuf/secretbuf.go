// Package secretbuf provides scoped containers for secret bytes.
//
// Every buffer that transits private-key material, share payloads, or
// decrypted plaintext is wrapped in one of these containers so its backing
// storage is overwritten with zeros before it is released, regardless of
// whether release happens on the success path or on error.
package secretbuf

import "runtime"

// Bytes is a scoped container around a byte slice holding secret material.
// Callers must call Release when the value is no longer needed.
type Bytes struct {
	data     []byte
	released bool
}

// NewBytes copies src into a new scoped container. The caller retains
// ownership of src; NewBytes does not zero it.
func NewBytes(src []byte) *Bytes {
	data := make([]byte, len(src))
	copy(data, src)
	return &Bytes{data: data}
}

// Len returns the number of bytes held.
func (b *Bytes) Len() int {
	return len(b.data)
}

// Bytes returns the underlying slice. The returned slice aliases the
// container's storage and becomes invalid after Release.
func (b *Bytes) Bytes() []byte {
	return b.data
}

// Release overwrites the backing storage with zeros and marks the container
// released; Len still reports the original length afterwards. Release is
// safe to call more than once.
func (b *Bytes) Release() {
	if b.released {
		return
	}
	zero(b.data)
	b.released = true
	// Ensure the compiler doesn't consider the zeroing loop dead code and
	// doesn't reorder the zeroing past the point the buffer is no longer
	// referenced.
	runtime.KeepAlive(b.data)
}

// zero overwrites buf with zero bytes. It is written as a plain loop rather
// than relying on an optimizer-eliminable idiom like copy() from a zero
// slice, since the Go compiler is free to drop dead stores to a slice that
// is never read again.
func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// SecretKey is a scoped container specialized for a 32-byte asymmetric
// private key.
type SecretKey struct {
	data     [32]byte
	released bool
}

// NewSecretKey copies src (which must be 32 bytes) into a new container.
func NewSecretKey(src []byte) *SecretKey {
	sk := &SecretKey{}
	copy(sk.data[:], src)
	return sk
}

// Bytes returns the 32-byte key. The returned slice aliases the container's
// storage and becomes invalid after Release.
func (s *SecretKey) Bytes() []byte {
	return s.data[:]
}

// Release overwrites the key with zeros. Safe to call more than once.
func (s *SecretKey) Release() {
	if s.released {
		return
	}
	zero(s.data[:])
	s.released = true
	runtime.KeepAlive(s.data)
}
