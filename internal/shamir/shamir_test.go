package shamir

import (
	"bytes"
	"errors"
	"testing"
)

// patternReader yields a deterministic coefficient stream for
// reproducible shares.
type patternReader struct{ next byte }

func (r *patternReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.next
		r.next = r.next*31 + 7
	}
	return len(p), nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func testSecret(n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = byte(i*73 + 29)
	}
	return s
}

// subsets returns all k-element index subsets of [0, n).
func subsets(n, k int) [][]int {
	var out [][]int
	var rec func(start int, cur []int)
	rec = func(start int, cur []int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i < n; i++ {
			rec(i+1, append(cur, i))
		}
	}
	rec(0, nil)
	return out
}

func TestSplitReconstruct_AllSubsets(t *testing.T) {
	// Every M-subset of every (M, N) with N <= 8 must reconstruct, not
	// just one chosen subset.
	secret := testSecret(16)
	for total := 1; total <= 8; total++ {
		for threshold := 1; threshold <= total; threshold++ {
			shares, err := Split(secret, threshold, total, 0, &patternReader{next: byte(threshold)})
			if err != nil {
				t.Fatalf("Split(%d of %d) error: %v", threshold, total, err)
			}
			if len(shares) != total {
				t.Fatalf("Split returned %d shares, want %d", len(shares), total)
			}

			for _, idxs := range subsets(total, threshold) {
				subset := make([]Share, 0, threshold)
				for _, i := range idxs {
					subset = append(subset, shares[i])
				}
				got, err := Reconstruct(subset)
				if err != nil {
					t.Fatalf("Reconstruct(%d of %d, subset %v) error: %v", threshold, total, idxs, err)
				}
				if !bytes.Equal(got, secret) {
					t.Fatalf("Reconstruct(%d of %d, subset %v) = %x, want %x", threshold, total, idxs, got, secret)
				}
			}
		}
	}
}

func TestSplitReconstruct_MaxShares(t *testing.T) {
	secret := testSecret(32)
	shares, err := Split(secret, 3, MaxShares, 7, &patternReader{next: 99})
	if err != nil {
		t.Fatalf("Split(3 of %d) error: %v", MaxShares, err)
	}

	// Spot-check a few 3-subsets including the extreme member indices.
	for _, idxs := range [][]int{{0, 1, 2}, {13, 14, 15}, {0, 7, 15}, {2, 9, 11}} {
		subset := []Share{shares[idxs[0]], shares[idxs[1]], shares[idxs[2]]}
		got, err := Reconstruct(subset)
		if err != nil {
			t.Fatalf("Reconstruct(subset %v) error: %v", idxs, err)
		}
		if !bytes.Equal(got, secret) {
			t.Errorf("Reconstruct(subset %v) differs from secret", idxs)
		}
	}
}

func TestReconstruct_MoreThanThreshold(t *testing.T) {
	secret := testSecret(20)
	shares, err := Split(secret, 2, 4, 0, &patternReader{next: 5})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}

	got, err := Reconstruct(shares)
	if err != nil {
		t.Fatalf("Reconstruct with all shares error: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Error("Reconstruct with extra shares differs from secret")
	}
}

func TestReconstruct_Insufficient(t *testing.T) {
	secret := testSecret(16)
	shares, err := Split(secret, 3, 5, 0, &patternReader{next: 1})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}

	for n := 0; n < 3; n++ {
		_, err := Reconstruct(shares[:n])
		if !errors.Is(err, ErrInsufficientShares) {
			t.Errorf("Reconstruct(%d shares) error = %v, want ErrInsufficientShares", n, err)
		}
	}
}

func TestReconstruct_DuplicateMember(t *testing.T) {
	shares, err := Split(testSecret(16), 2, 3, 0, &patternReader{next: 1})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}

	_, err = Reconstruct([]Share{shares[0], shares[0]})
	if !errors.Is(err, ErrDuplicateMember) {
		t.Errorf("error = %v, want ErrDuplicateMember", err)
	}
}

func TestReconstruct_InconsistentGroup(t *testing.T) {
	a, err := Split(testSecret(16), 2, 3, 0, &patternReader{next: 1})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	b, err := Split(testSecret(16), 2, 3, 1, &patternReader{next: 2})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	c, err := Split(testSecret(16), 3, 3, 0, &patternReader{next: 3})
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}

	tests := []struct {
		name   string
		shares []Share
	}{
		{"different groups", []Share{a[0], b[1]}},
		{"different thresholds", []Share{a[0], c[1]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Reconstruct(tt.shares); !errors.Is(err, ErrInconsistentGroup) {
				t.Errorf("error = %v, want ErrInconsistentGroup", err)
			}
		})
	}
}

func TestReconstruct_ValueLengthMismatch(t *testing.T) {
	a, _ := Split(testSecret(16), 2, 3, 0, &patternReader{next: 1})
	b, _ := Split(testSecret(32), 2, 3, 0, &patternReader{next: 1})

	if _, err := Reconstruct([]Share{a[0], b[1]}); !errors.Is(err, ErrInconsistentGroup) {
		t.Errorf("error = %v, want ErrInconsistentGroup", err)
	}
}

func TestSplit_InvalidThreshold(t *testing.T) {
	tests := []struct {
		name             string
		threshold, total int
	}{
		{"zero threshold", 0, 3},
		{"negative threshold", -1, 3},
		{"threshold above total", 4, 3},
		{"total above max", 2, MaxShares + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split(testSecret(16), tt.threshold, tt.total, 0, nil); !errors.Is(err, ErrInvalidThreshold) {
				t.Errorf("error = %v, want ErrInvalidThreshold", err)
			}
		})
	}
}

func TestSplit_InvalidGroupAndLength(t *testing.T) {
	if _, err := Split(testSecret(16), 2, 3, MaxGroups, nil); err == nil {
		t.Error("group index beyond max should fail")
	}
	if _, err := Split(testSecret(16), 2, 3, -1, nil); err == nil {
		t.Error("negative group index should fail")
	}
	if _, err := Split(testSecret(15), 2, 3, 0, nil); err == nil {
		t.Error("unsupported secret length should fail")
	}
}

func TestSplit_RandomnessFailureIsFatal(t *testing.T) {
	if _, err := Split(testSecret(16), 2, 3, 0, failingReader{}); err == nil {
		t.Error("Split with failing randomness should error, not fall back")
	}
}

func TestSplit_ThresholdOne(t *testing.T) {
	// With M=1 every share alone carries the secret.
	secret := testSecret(16)
	shares, err := Split(secret, 1, 3, 0, nil)
	if err != nil {
		t.Fatalf("Split(1 of 3) error: %v", err)
	}
	for _, s := range shares {
		got, err := Reconstruct([]Share{s})
		if err != nil {
			t.Fatalf("Reconstruct(single share) error: %v", err)
		}
		if !bytes.Equal(got, secret) {
			t.Error("1-of-N share should reconstruct alone")
		}
	}
}
