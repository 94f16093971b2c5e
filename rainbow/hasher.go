package rainbow

import "encoding/binary"

// Hasher is a streaming Rainbow hasher. It buffers partial lanes internally,
// so Write accepts chunks of any size and any split of a message produces
// the same digest as hashing it in one piece.
//
// A Hasher is single-writer: concurrent use of one instance requires
// external synchronization. It carries no internal locks.
type Hasher struct {
	h     [4]uint64
	seed  uint64
	size  Size
	order binary.ByteOrder

	buf [laneSize]byte
	n   int // buffered bytes awaiting a full lane

	// inner selects the permutation for the next full lane (false: mixA).
	// It spans Write calls; chunk boundaries must not disturb it.
	inner bool

	known    bool
	declared uint64 // total message length, when known
	written  uint64

	done   bool
	digest [32]byte
}

// New returns a little-endian Hasher for a message whose total length is
// known up front. Fed exactly length bytes, it produces the same digest as
// the one-shot functions.
func New(seed, length uint64, size Size) (*Hasher, error) {
	return NewWithOrder(seed, length, size, binary.LittleEndian)
}

// NewWithOrder is New with an explicit byte order.
func NewWithOrder(seed, length uint64, size Size, order binary.ByteOrder) (*Hasher, error) {
	if !size.valid() {
		return nil, ErrSize
	}
	d := &Hasher{seed: seed, size: size, order: order, known: true, declared: length}
	d.init()
	return d, nil
}

// NewStream returns a little-endian Hasher for a message of unknown length,
// for example an open-ended pipe. It uses a distinct initialization
// (a decreasing prime sequence folded with the usual offsets), so its
// digests never collide with known-length hashing of the same bytes: the
// two modes are different members of the hash family.
func NewStream(seed uint64, size Size) (*Hasher, error) {
	return NewStreamWithOrder(seed, size, binary.LittleEndian)
}

// NewStreamWithOrder is NewStream with an explicit byte order.
func NewStreamWithOrder(seed uint64, size Size, order binary.ByteOrder) (*Hasher, error) {
	if !size.valid() {
		return nil, ErrSize
	}
	d := &Hasher{seed: seed, size: size, order: order}
	d.init()
	return d, nil
}

func (d *Hasher) init() {
	if d.known {
		d.h = [4]uint64{
			d.seed + d.declared + 1,
			d.seed + d.declared + 3,
			d.seed + d.declared + 5,
			d.seed + d.declared + 7,
		}
		return
	}
	d.h = [4]uint64{d.seed + 1002, d.seed + 1000, d.seed + 988, d.seed + 984}
}

// Reset restores the Hasher to its initial state, keeping seed, length mode,
// digest size and byte order.
func (d *Hasher) Reset() {
	d.init()
	d.n = 0
	d.inner = false
	d.written = 0
	d.done = false
	d.digest = [32]byte{}
}

// Size returns the digest length in bytes.
func (d *Hasher) Size() int { return d.size.Bytes() }

// BlockSize returns the absorption lane size.
func (d *Hasher) BlockSize() int { return laneSize }

// Write absorbs p. It returns ErrFinalized after Sum has been called, and
// ErrLength if a known-length Hasher would exceed its declared length;
// in both cases the state is left untouched.
func (d *Hasher) Write(p []byte) (int, error) {
	if d.done {
		return 0, ErrFinalized
	}
	if d.known && d.written+uint64(len(p)) > d.declared {
		return 0, ErrLength
	}
	total := len(p)
	d.written += uint64(total)

	if d.n > 0 {
		n := copy(d.buf[d.n:], p)
		d.n += n
		p = p[n:]
		if d.n == laneSize {
			absorb(&d.h, d.seed, &d.inner, d.order, d.buf[:])
			d.n = 0
		}
	}

	if len(p) >= laneSize {
		p = absorb(&d.h, d.seed, &d.inner, d.order, p)
	}

	if len(p) > 0 {
		d.n = copy(d.buf[:], p)
	}
	return total, nil
}

// Sum finalizes the hash and returns the digest. The first call closes the
// Hasher; further calls return the same digest without recomputing. A
// known-length Hasher that has not been fed its declared length fails with
// ErrLength and stays open.
func (d *Hasher) Sum() ([]byte, error) {
	if d.done {
		out := make([]byte, d.size.Bytes())
		copy(out, d.digest[:])
		return out, nil
	}
	if d.known && d.written != d.declared {
		return nil, ErrLength
	}

	seal(&d.h, d.seed, d.buf[:d.n])
	extract(&d.h, d.seed, d.size, d.order, d.digest[:d.size.Bytes()])
	d.done = true

	out := make([]byte, d.size.Bytes())
	copy(out, d.digest[:])
	return out, nil
}
