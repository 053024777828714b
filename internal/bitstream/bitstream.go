// Package bitstream provides MSB-first bit packing used by the mnemonic
// codec and the share wire format, both of which regroup byte data into
// 11-bit word indices.
package bitstream

import "fmt"

// Writer accumulates bits most-significant first.
type Writer struct {
	bits []byte // one bit per element, 0 or 1
}

// WriteUint appends the low n bits of v, most significant first.
func (w *Writer) WriteUint(v uint, n int) {
	for i := n - 1; i >= 0; i-- {
		w.bits = append(w.bits, byte(v>>uint(i))&1)
	}
}

// WriteBytes appends all bits of b, most significant first per byte.
func (w *Writer) WriteBytes(b []byte) {
	for _, x := range b {
		w.WriteUint(uint(x), 8)
	}
}

// Len returns the number of bits written.
func (w *Writer) Len() int {
	return len(w.bits)
}

// Groups splits the stream into n-bit groups. The stream length must be
// an exact multiple of n.
func (w *Writer) Groups(n int) ([]uint, error) {
	if len(w.bits)%n != 0 {
		return nil, fmt.Errorf("bitstream: %d bits do not divide into %d-bit groups", len(w.bits), n)
	}
	out := make([]uint, 0, len(w.bits)/n)
	for i := 0; i < len(w.bits); i += n {
		var v uint
		for _, b := range w.bits[i : i+n] {
			v = v<<1 | uint(b)
		}
		out = append(out, v)
	}
	return out, nil
}

// Reader consumes bits most-significant first.
type Reader struct {
	bits []byte
	pos  int
}

// NewReader builds a reader over a sequence of n-bit groups.
func NewReader(groups []uint, n int) *Reader {
	r := &Reader{bits: make([]byte, 0, len(groups)*n)}
	for _, g := range groups {
		for i := n - 1; i >= 0; i-- {
			r.bits = append(r.bits, byte(g>>uint(i))&1)
		}
	}
	return r
}

// ReadUint consumes n bits and returns them as an unsigned value.
func (r *Reader) ReadUint(n int) (uint, error) {
	if r.pos+n > len(r.bits) {
		return 0, fmt.Errorf("bitstream: read past end (%d bits left, want %d)", len(r.bits)-r.pos, n)
	}
	var v uint
	for _, b := range r.bits[r.pos : r.pos+n] {
		v = v<<1 | uint(b)
	}
	r.pos += n
	return v, nil
}

// ReadBytes consumes n*8 bits as bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		v, err := r.ReadUint(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.bits) - r.pos
}
