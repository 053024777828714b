// Package gf256 implements arithmetic over GF(2^8), the finite field
// used by the threshold sharing engine.
//
// The field uses the AES reduction polynomial x^8 + x^4 + x^3 + x + 1
// (0x11B). Multiplication and inversion run through log/exp tables built
// once at package init, so every operation is a table lookup.
package gf256

import "errors"

// ErrZeroInverse is returned when the multiplicative inverse of zero is
// requested. Zero has no inverse in any field.
var ErrZeroInverse = errors.New("gf256: zero has no multiplicative inverse")

// reductionPoly is the AES field polynomial x^8+x^4+x^3+x+1.
const reductionPoly = 0x11B

// generator 0x03 is a primitive element of the field, so its powers
// enumerate all 255 non-zero elements.
const generator = 0x03

var (
	expTable [510]byte // doubled so Mul can skip a mod-255 reduction
	logTable [256]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		logTable[x] = byte(i)

		// x *= generator, carry-less.
		x = x<<1 ^ x
		if x >= 256 {
			x ^= reductionPoly
		}
	}
	copy(expTable[255:], expTable[:255])
}

// Add returns a+b. Addition in GF(2^8) is XOR, and is its own inverse,
// so Add also serves as subtraction.
func Add(a, b byte) byte {
	return a ^ b
}

// Mul returns a*b.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// Inv returns the multiplicative inverse of a.
func Inv(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrZeroInverse
	}
	return expTable[255-int(logTable[a])], nil
}

// Div returns a/b.
func Div(a, b byte) (byte, error) {
	inv, err := Inv(b)
	if err != nil {
		return 0, err
	}
	return Mul(a, inv), nil
}
