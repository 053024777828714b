package split

import (
	"bytes"
	"errors"
	"testing"
)

// patternReader yields a deterministic byte stream so split results are
// reproducible in tests. Production callers pass nil for crypto/rand.
type patternReader struct{ next byte }

func (r *patternReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.next
		r.next += 37
	}
	return len(p), nil
}

// failingReader always errors, standing in for an unavailable entropy
// source.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func testEntropy(n int) []byte {
	e := make([]byte, n)
	for i := range e {
		e[i] = byte(i*89 + 3)
	}
	return e
}

func TestSplitCombine_Identity(t *testing.T) {
	for _, size := range []int{16, 20, 24, 28, 32} {
		for n := 1; n <= 5; n++ {
			entropy := testEntropy(size)
			parts, err := Split(entropy, n, &patternReader{next: byte(n)})
			if err != nil {
				t.Fatalf("Split(%d bytes, n=%d) error: %v", size, n, err)
			}
			if len(parts) != n {
				t.Fatalf("Split returned %d parts, want %d", len(parts), n)
			}

			combined, err := Combine(parts)
			if err != nil {
				t.Fatalf("Combine error: %v", err)
			}
			if !bytes.Equal(combined, entropy) {
				t.Errorf("Combine(Split(e, %d)) != e for %d-byte entropy", n, size)
			}
		}
	}
}

func TestSplit_One_ReturnsCopy(t *testing.T) {
	entropy := testEntropy(16)
	parts, err := Split(entropy, 1, nil)
	if err != nil {
		t.Fatalf("Split(n=1) error: %v", err)
	}
	if !bytes.Equal(parts[0], entropy) {
		t.Error("single part should equal the input")
	}

	// Mutating the part must not reach back into the caller's entropy.
	parts[0][0] ^= 0xFF
	if parts[0][0] == entropy[0] {
		t.Error("Split(n=1) returned the input slice, not a copy")
	}
}

func TestSplit_PartsDifferFromOriginal(t *testing.T) {
	entropy := testEntropy(32)
	parts, err := Split(entropy, 3, &patternReader{next: 1})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	for i, p := range parts {
		if bytes.Equal(p, entropy) {
			t.Errorf("part %d equals the original entropy", i)
		}
	}
}

func TestCombine_OrderIndependent(t *testing.T) {
	entropy := testEntropy(24)
	parts, err := Split(entropy, 4, &patternReader{next: 9})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}

	// XOR folding is commutative and associative; any permutation
	// combines to the same entropy.
	perms := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, perm := range perms {
		shuffled := make([][]byte, len(parts))
		for i, j := range perm {
			shuffled[i] = parts[j]
		}
		combined, err := Combine(shuffled)
		if err != nil {
			t.Fatalf("Combine error: %v", err)
		}
		if !bytes.Equal(combined, entropy) {
			t.Errorf("Combine with order %v differs from original", perm)
		}
	}
}

func TestCombine_Empty(t *testing.T) {
	if _, err := Combine(nil); !errors.Is(err, ErrEmptyPartSet) {
		t.Errorf("Combine(nil) error = %v, want ErrEmptyPartSet", err)
	}
}

func TestCombine_LengthMismatch(t *testing.T) {
	parts := [][]byte{make([]byte, 16), make([]byte, 20)}
	if _, err := Combine(parts); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Combine error = %v, want ErrLengthMismatch", err)
	}
}

func TestSplit_InvalidArgs(t *testing.T) {
	if _, err := Split(testEntropy(16), 0, nil); err == nil {
		t.Error("Split(n=0) should fail")
	}
	if _, err := Split(nil, 2, nil); err == nil {
		t.Error("Split(empty entropy) should fail")
	}
}

func TestSplit_RandomnessFailureIsFatal(t *testing.T) {
	if _, err := Split(testEntropy(16), 3, failingReader{}); err == nil {
		t.Error("Split with failing randomness should error, not fall back")
	}
}
