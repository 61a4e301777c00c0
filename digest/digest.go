// Package digest computes SHA-1 digests as five 32-bit words, the layout a
// host program stores alongside interned design units.
package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"hash"
)

// Size is the length of a digest in bytes.
const Size = sha1.Size

// State is a 160-bit SHA-1 digest as its five big-endian words.
type State struct {
	A, B, C, D, E uint32
}

// Sum returns the SHA-1 digest of b.
func Sum(b []byte) State {
	return fromBytes(sha1.Sum(b))
}

// Words returns the digest words in order.
func (s State) Words() [5]uint32 {
	return [5]uint32{s.A, s.B, s.C, s.D, s.E}
}

// Bytes returns the 20-byte big-endian encoding of the digest.
func (s State) Bytes() [Size]byte {
	var out [Size]byte
	for i, w := range s.Words() {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// String formats the words in lower-case hex, separated by spaces and
// without leading zeros.
func (s State) String() string {
	return fmt.Sprintf("%x %x %x %x %x", s.A, s.B, s.C, s.D, s.E)
}

// Digest computes a digest incrementally.
type Digest struct {
	h hash.Hash
}

// New returns an empty Digest.
func New() *Digest {
	return &Digest{h: sha1.New()}
}

// Write adds p to the digest. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// Sum returns the digest of everything written so far. It does not change
// the underlying state.
func (d *Digest) Sum() State {
	var out [Size]byte
	d.h.Sum(out[:0])
	return fromBytes(out)
}

// Reset discards everything written so far.
func (d *Digest) Reset() {
	d.h.Reset()
}

func fromBytes(b [Size]byte) State {
	return State{
		A: binary.BigEndian.Uint32(b[0:]),
		B: binary.BigEndian.Uint32(b[4:]),
		C: binary.BigEndian.Uint32(b[8:]),
		D: binary.BigEndian.Uint32(b[12:]),
		E: binary.BigEndian.Uint32(b[16:]),
	}
}
