// Package rainbow implements the Rainbow hash function: a seedable,
// non-cryptographic hash with a 256-bit internal state that produces 64,
// 128 or 256 bit digests.
//
// Input is absorbed in 16-byte lanes, alternating two mixing permutations;
// the final 0-15 bytes are folded in by a fixed cascade and the digest is
// extracted one 64-bit word at a time, remixing the state between words.
// Because extraction perturbs the state, digests of different sizes are not
// prefixes of one another.
//
// Byte order is an explicit parameter for both input words and output words
// (it is never detected from the host); the Sum64/Sum128/Sum256 convenience
// functions and New fix it to little-endian, which is the reference byte
// order. Changing it changes every digest.
//
// The seed selects a member of the hash family. It is not a secret and the
// function makes no cryptographic claims.
package rainbow

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

// laneSize is the absorption granularity: two 64-bit words per lane.
const laneSize = 16

// Size is a digest size in bits.
type Size uint32

const (
	Size64  Size = 64
	Size128 Size = 128
	Size256 Size = 256
)

// Bytes returns the digest length in bytes.
func (s Size) Bytes() int { return int(s) / 8 }

func (s Size) valid() bool {
	return s == Size64 || s == Size128 || s == Size256
}

var (
	// ErrSize is returned for digest sizes other than 64, 128 or 256 bits.
	ErrSize = errors.New("rainbow: digest size must be 64, 128 or 256 bits")
	// ErrFinalized is returned by Write after Sum has been called.
	ErrFinalized = errors.New("rainbow: hasher already finalized")
	// ErrLength is returned when the bytes written to a known-length hasher
	// do not match the length it was opened with.
	ErrLength = errors.New("rainbow: written bytes do not match declared length")
)

// Mixing constants. Primes (and near-primes) chosen by the reference design
// for their avalanche behavior; they are part of the wire contract and must
// never be regenerated.
const (
	primeP uint64 = 0xFFFFFFFFFFFFFFFF - 58
	primeQ uint64 = 13166748625691186689
	primeR uint64 = 1573836600196043749
	primeS uint64 = 1478582680485693857
	primeT uint64 = 1584163446043636637
	primeU uint64 = 1358537349836140151
	primeV uint64 = 2849285319520710901
	primeW uint64 = 2366157163652459183
)

// mixA permutes all four state words. The a/b and c/d lanes stay independent
// within a single call; later absorption folds them together.
func mixA(h *[4]uint64) {
	a, b, c, d := h[0], h[1], h[2], h[3]

	a *= primeP
	a = bits.RotateLeft64(a, -23)
	a *= primeQ

	b ^= a
	b *= primeR
	b = bits.RotateLeft64(b, -29)
	b *= primeS

	c *= primeT
	c = bits.RotateLeft64(c, -31)
	c *= primeU

	d ^= c
	d *= primeV
	d = bits.RotateLeft64(d, -37)
	d *= primeW

	h[0], h[1], h[2], h[3] = a, b, c, d
}

// mixB permutes h[1] and h[2] only. This is the one place the seed re-enters
// the state after initialization, so a long stream cannot wash it out.
func mixB(h *[4]uint64, seed uint64) {
	a, b := h[1], h[2]

	a *= primeV
	a = bits.RotateLeft64(a, -23)
	a *= primeW

	b ^= a + seed
	b *= primeR
	b = bits.RotateLeft64(b, -23)
	b *= primeS

	h[1], h[2] = a, b
}

// absorb consumes all complete 16-byte lanes from p, alternating mixA and
// mixB via *inner (false selects mixA), and returns the 0-15 byte remainder.
// The toggle must persist across calls for streaming to match one-shot.
func absorb(h *[4]uint64, seed uint64, inner *bool, order binary.ByteOrder, p []byte) []byte {
	for len(p) >= laneSize {
		g := order.Uint64(p)
		h[0] -= g
		h[1] += g

		g = order.Uint64(p[8:])
		h[2] += g
		h[3] -= g

		if *inner {
			mixB(h, seed)
		} else {
			mixA(h)
		}
		*inner = !*inner

		p = p[laneSize:]
	}
	return p
}

// tailSchedule maps each trailing byte index to the state word it is added
// into and the left shift applied. This is the cascade order of the
// reference fallthrough switch, flattened: byte i present implies bytes
// 0..i-1 are folded too.
var tailSchedule = [laneSize - 1]struct {
	word  int
	shift uint
}{
	{2, 0}, {1, 8}, {0, 16}, {3, 24}, {2, 32}, {1, 40}, {0, 48},
	{3, 0}, {2, 8}, {1, 16}, {0, 24}, {3, 32}, {2, 40}, {1, 48},
	{0, 56},
}

// seal absorbs the 0-15 byte tail and applies the closing mix sequence,
// leaving the state ready for extraction. Runs exactly once per message.
func seal(h *[4]uint64, seed uint64, tail []byte) {
	mixB(h, seed)
	for i, b := range tail {
		t := tailSchedule[i]
		h[t.word] += uint64(b) << t.shift
	}
	mixA(h)
	mixB(h, seed)
	mixA(h)
}

// extract writes the digest words into out, remixing the state between
// words. The 0-h2-h3 vs 0-h3-h2 operand order follows the reference.
func extract(h *[4]uint64, seed uint64, size Size, order binary.ByteOrder, out []byte) {
	g := 0 - h[2] - h[3]
	order.PutUint64(out, g)
	if size == Size64 {
		return
	}

	mixA(h)
	g = 0 - h[3] - h[2]
	order.PutUint64(out[8:], g)
	if size == Size128 {
		return
	}

	mixA(h)
	mixB(h, seed)
	mixA(h)
	g = 0 - h[3] - h[2]
	order.PutUint64(out[16:], g)

	mixA(h)
	g = 0 - h[3] - h[2]
	order.PutUint64(out[24:], g)
}

func sum(data []byte, seed uint64, size Size, order binary.ByteOrder, out []byte) {
	n := uint64(len(data))
	h := [4]uint64{seed + n + 1, seed + n + 3, seed + n + 5, seed + n + 7}
	inner := false
	tail := absorb(&h, seed, &inner, order, data)
	seal(&h, seed, tail)
	extract(&h, seed, size, order, out)
}

// Sum computes the Rainbow digest of data for the given seed, digest size
// and byte order. It fails only for an unsupported size.
func Sum(data []byte, seed uint64, size Size, order binary.ByteOrder) ([]byte, error) {
	if !size.valid() {
		return nil, ErrSize
	}
	out := make([]byte, size.Bytes())
	sum(data, seed, size, order, out)
	return out, nil
}

// Sum64 computes the 64-bit little-endian Rainbow digest of data.
// Zero heap allocations.
func Sum64(data []byte, seed uint64) [8]byte {
	var out [8]byte
	sum(data, seed, Size64, binary.LittleEndian, out[:])
	return out
}

// Sum128 computes the 128-bit little-endian Rainbow digest of data.
func Sum128(data []byte, seed uint64) [16]byte {
	var out [16]byte
	sum(data, seed, Size128, binary.LittleEndian, out[:])
	return out
}

// Sum256 computes the 256-bit little-endian Rainbow digest of data.
func Sum256(data []byte, seed uint64) [32]byte {
	var out [32]byte
	sum(data, seed, Size256, binary.LittleEndian, out[:])
	return out
}
