// Package shamir implements M-of-N threshold secret sharing over
// GF(2^8), plus the word-encoded wire format for shares.
//
// Each byte of the secret is the constant term of an independent random
// polynomial of degree M-1; share j holds the polynomial evaluations at
// x = j. Any M shares determine the polynomials (Lagrange interpolation
// at x=0); fewer than M leave every candidate secret equally likely.
package shamir

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/interstellar-vault/interstellar/pkg/gf256"
)

var (
	// ErrInvalidThreshold is returned when threshold/total are outside
	// 1 <= M <= N <= MaxShares.
	ErrInvalidThreshold = errors.New("shamir: invalid threshold")

	// ErrInsufficientShares is returned when fewer distinct shares than
	// the group's threshold are supplied. More shares fix this; it does
	// not indicate corruption.
	ErrInsufficientShares = errors.New("shamir: insufficient shares")

	// ErrInconsistentGroup is returned when supplied shares disagree on
	// group index, threshold or value length.
	ErrInconsistentGroup = errors.New("shamir: shares from inconsistent groups")

	// ErrDuplicateMember is returned when two shares carry the same
	// member index.
	ErrDuplicateMember = errors.New("shamir: duplicate member index")
)

// MaxShares is the largest supported share count per group. Member
// indices occupy 4 bits on the wire.
const MaxShares = 16

// MaxGroups is the largest supported group index plus one (4 wire bits).
const MaxGroups = 16

// Share is one member's fragment of a split secret. Member doubles as
// the field evaluation point and is therefore never zero.
type Share struct {
	Group     int
	Member    int
	Threshold int
	Value     []byte
}

// Split shares secret into total fragments, any threshold of which
// reconstruct it. Group is carried into each share's metadata so
// multi-part reconstructions can tell groups apart.
//
// rnd == nil uses crypto/rand. Coefficients are never reused between
// calls; a randomness failure aborts the call.
func Split(secret []byte, threshold, total, group int, rnd io.Reader) ([]Share, error) {
	if threshold < 1 || threshold > total || total > MaxShares {
		return nil, fmt.Errorf("%w: %d of %d (max %d)", ErrInvalidThreshold, threshold, total, MaxShares)
	}
	if group < 0 || group >= MaxGroups {
		return nil, fmt.Errorf("shamir: group index %d out of range [0, %d)", group, MaxGroups)
	}
	if _, ok := wordCountForValueLen[len(secret)]; !ok {
		return nil, fmt.Errorf("shamir: unsupported secret length %d", len(secret))
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	// One random coefficient slice per polynomial degree 1..M-1; the
	// constant term (degree 0) is the secret itself.
	coeffs := make([][]byte, threshold-1)
	for i := range coeffs {
		c := make([]byte, len(secret))
		if _, err := io.ReadFull(rnd, c); err != nil {
			return nil, fmt.Errorf("shamir: read randomness: %w", err)
		}
		coeffs[i] = c
	}

	shares := make([]Share, total)
	for m := 1; m <= total; m++ {
		x := byte(m)
		value := make([]byte, len(secret))
		for i := range secret {
			// Horner evaluation from the highest-degree coefficient
			// down to the constant term.
			var acc byte
			for d := threshold - 2; d >= 0; d-- {
				acc = gf256.Add(gf256.Mul(acc, x), coeffs[d][i])
			}
			value[i] = gf256.Add(gf256.Mul(acc, x), secret[i])
		}
		shares[m-1] = Share{Group: group, Member: m, Threshold: threshold, Value: value}
	}
	return shares, nil
}

// Reconstruct recovers the secret from any threshold-sized subset of a
// group's shares. Extra shares beyond the threshold are ignored after
// consistency checks.
func Reconstruct(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: none supplied", ErrInsufficientShares)
	}

	ref := shares[0]
	seen := make(map[int]struct{}, len(shares))
	for _, s := range shares {
		if s.Group != ref.Group || s.Threshold != ref.Threshold {
			return nil, fmt.Errorf("%w: got group %d threshold %d and group %d threshold %d",
				ErrInconsistentGroup, ref.Group, ref.Threshold, s.Group, s.Threshold)
		}
		if len(s.Value) != len(ref.Value) {
			return nil, fmt.Errorf("%w: value lengths %d and %d", ErrInconsistentGroup, len(ref.Value), len(s.Value))
		}
		if s.Member < 1 || s.Member > MaxShares {
			return nil, fmt.Errorf("shamir: member index %d out of range [1, %d]", s.Member, MaxShares)
		}
		if _, dup := seen[s.Member]; dup {
			return nil, fmt.Errorf("%w: member %d", ErrDuplicateMember, s.Member)
		}
		seen[s.Member] = struct{}{}
	}

	// Fewer than M points leave the degree M-1 polynomials
	// under-determined; refuse rather than interpolate garbage.
	if len(shares) < ref.Threshold {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(shares), ref.Threshold)
	}
	points := shares[:ref.Threshold]

	secret := make([]byte, len(ref.Value))
	for i, si := range points {
		xi := byte(si.Member)

		// Lagrange basis polynomial l_i evaluated at x=0:
		// prod over j!=i of x_j / (x_j - x_i). Subtraction is XOR.
		num, den := byte(1), byte(1)
		for j, sj := range points {
			if j == i {
				continue
			}
			xj := byte(sj.Member)
			num = gf256.Mul(num, xj)
			den = gf256.Mul(den, gf256.Add(xj, xi))
		}
		basis, err := gf256.Div(num, den)
		if err != nil {
			// Distinct member checks above make a zero denominator
			// impossible; reaching this is a defect.
			return nil, fmt.Errorf("shamir: internal: lagrange denominator: %w", err)
		}
		for k := range secret {
			secret[k] = gf256.Add(secret[k], gf256.Mul(basis, si.Value[k]))
		}
	}

	if len(secret) != len(ref.Value) {
		return nil, fmt.Errorf("shamir: internal: reconstructed %d bytes, want %d", len(secret), len(ref.Value))
	}
	return secret, nil
}
