// Package mnemonic implements the BIP-39 entropy codec: raw entropy plus
// a SHA-256 checksum on one side, a word sequence on the other.
package mnemonic

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/interstellar-vault/interstellar/internal/bitstream"
	"github.com/interstellar-vault/interstellar/pkg/wordlist"
)

var (
	// ErrInvalidWordCount is returned when a mnemonic is not 12, 15, 18,
	// 21 or 24 words long.
	ErrInvalidWordCount = errors.New("mnemonic: invalid word count")

	// ErrInvalidEntropyLength is returned when entropy is not 16, 20,
	// 24, 28 or 32 bytes.
	ErrInvalidEntropyLength = errors.New("mnemonic: invalid entropy length")

	// ErrChecksumMismatch is returned when the embedded checksum does
	// not match the checksum recomputed from the decoded entropy.
	ErrChecksumMismatch = errors.New("mnemonic: checksum mismatch")
)

// wordBits is the index width of one word; the dictionary must hold
// exactly 1<<wordBits entries.
const wordBits = 11

// dictionarySize is the required dictionary size (2048).
const dictionarySize = 1 << wordBits

// entropyBytesForWords maps valid word counts to entropy byte lengths.
// Checksum length is entropy bits / 32, so total bits divide by 11.
var entropyBytesForWords = map[int]int{
	12: 16,
	15: 20,
	18: 24,
	21: 28,
	24: 32,
}

// ValidEntropyLength reports whether n is a legal entropy byte length.
func ValidEntropyLength(n int) bool {
	return n >= 16 && n <= 32 && n%4 == 0
}

// checksumBits returns the checksum length in bits for the given
// entropy byte length.
func checksumBits(entropyLen int) int {
	return entropyLen * 8 / 32
}

// checksum returns the leading n bits of SHA-256(entropy).
func checksum(entropy []byte, n int) uint {
	h := sha256.Sum256(entropy)
	var v uint
	for i := 0; i < n; i++ {
		v = v<<1 | uint(h[i/8]>>(7-uint(i%8))&1)
	}
	return v
}

// Decode validates a mnemonic against the dictionary and returns its
// entropy. The embedded checksum is always verified; a mismatch is an
// error, never tolerated.
func Decode(dict *wordlist.Dictionary, words []string) ([]byte, error) {
	if dict.Size() != dictionarySize {
		return nil, fmt.Errorf("mnemonic: dictionary has %d words, need %d", dict.Size(), dictionarySize)
	}
	entLen, ok := entropyBytesForWords[len(words)]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWordCount, len(words))
	}

	groups := make([]uint, len(words))
	for i, w := range words {
		idx, err := dict.IndexOf(w)
		if err != nil {
			return nil, err
		}
		groups[i] = uint(idx - 1)
	}

	r := bitstream.NewReader(groups, wordBits)
	entropy, err := r.ReadBytes(entLen)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: read entropy: %w", err)
	}
	csBits := checksumBits(entLen)
	embedded, err := r.ReadUint(csBits)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: read checksum: %w", err)
	}

	if embedded != checksum(entropy, csBits) {
		return nil, fmt.Errorf("%w (%d-bit checksum)", ErrChecksumMismatch, csBits)
	}
	return entropy, nil
}

// Encode returns the mnemonic for the given entropy. Total for every
// valid entropy length.
func Encode(dict *wordlist.Dictionary, entropy []byte) ([]string, error) {
	if dict.Size() != dictionarySize {
		return nil, fmt.Errorf("mnemonic: dictionary has %d words, need %d", dict.Size(), dictionarySize)
	}
	if !ValidEntropyLength(len(entropy)) {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidEntropyLength, len(entropy))
	}

	csBits := checksumBits(len(entropy))
	var w bitstream.Writer
	w.WriteBytes(entropy)
	w.WriteUint(checksum(entropy, csBits), csBits)

	groups, err := w.Groups(wordBits)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: segment: %w", err)
	}
	words := make([]string, len(groups))
	for i, g := range groups {
		word, err := dict.WordAt(int(g) + 1)
		if err != nil {
			return nil, fmt.Errorf("mnemonic: map index: %w", err)
		}
		words[i] = word
	}
	return words, nil
}
