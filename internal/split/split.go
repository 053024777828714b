// Package split implements all-or-nothing entropy splitting: every part
// is required to reconstruct, any proper subset reveals nothing.
package split

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEmptyPartSet is returned by Combine when given no parts.
	ErrEmptyPartSet = errors.New("split: empty part set")

	// ErrLengthMismatch is returned by Combine when parts differ in length.
	ErrLengthMismatch = errors.New("split: parts have mismatched lengths")
)

// Split divides entropy into n parts whose XOR equals the original.
// n-1 parts are drawn from rnd and the last is the XOR of the original
// with all of them, so any n-1 parts are uniformly random on their own.
//
// rnd == nil uses crypto/rand. A failure to read randomness is fatal to
// the call and propagated; no fallback source is ever substituted.
func Split(entropy []byte, n int, rnd io.Reader) ([][]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("split: part count must be >= 1, got %d", n)
	}
	if len(entropy) == 0 {
		return nil, fmt.Errorf("split: empty entropy")
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	parts := make([][]byte, n)
	last := make([]byte, len(entropy))
	copy(last, entropy)

	for i := 0; i < n-1; i++ {
		p := make([]byte, len(entropy))
		if _, err := io.ReadFull(rnd, p); err != nil {
			return nil, fmt.Errorf("split: read randomness: %w", err)
		}
		for j := range last {
			last[j] ^= p[j]
		}
		parts[i] = p
	}
	parts[n-1] = last
	return parts, nil
}

// Combine XOR-folds parts back into the original entropy. Commutative
// and associative, so part order is irrelevant.
func Combine(parts [][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, ErrEmptyPartSet
	}
	out := make([]byte, len(parts[0]))
	copy(out, parts[0])
	for _, p := range parts[1:] {
		if len(p) != len(out) {
			return nil, fmt.Errorf("%w: %d vs %d bytes", ErrLengthMismatch, len(out), len(p))
		}
		for j := range out {
			out[j] ^= p[j]
		}
	}
	return out, nil
}
