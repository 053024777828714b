package shamir

import (
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/interstellar-vault/interstellar/internal/bitstream"
	"github.com/interstellar-vault/interstellar/pkg/wordlist"
)

// Share wire format, packed MSB-first and segmented into 11-bit word
// indices:
//
//	group (4 bits) | member-1 (4) | threshold-1 (4) | value (8L) | checksum
//
// The checksum is the leading bits of BLAKE3-256 over the canonical byte
// serialization of the metadata and value, sized to pad the stream to a
// word boundary with at least 11 bits (14..18 bits for the five valid
// value lengths, so the false-accept rate is at most 2^-14). Each value
// length maps to a distinct word count, which makes length inference
// from the word count unambiguous.

var (
	// ErrShareLength is returned when a share's word count matches no
	// valid value length.
	ErrShareLength = errors.New("shamir: invalid share length")

	// ErrShareChecksum is returned when a share's embedded checksum does
	// not match its contents.
	ErrShareChecksum = errors.New("shamir: share checksum mismatch")
)

const (
	shareWordBits = 11
	shareMetaBits = 12 // group(4) + member(4) + threshold(4)
)

// wordCountForValueLen maps value byte lengths to share word counts:
// the smallest word count fitting metadata, value and >= 11 checksum bits.
var wordCountForValueLen = map[int]int{
	16: 14,
	20: 17,
	24: 20,
	28: 23,
	32: 26,
}

// valueLenForWordCount is the inverse of wordCountForValueLen.
var valueLenForWordCount = map[int]int{}

func init() {
	for l, w := range wordCountForValueLen {
		valueLenForWordCount[w] = l
	}
}

// shareChecksum returns the leading n bits of BLAKE3-256 over the
// canonical serialization of a share's metadata and value.
func shareChecksum(group, member, threshold int, value []byte, n int) uint {
	buf := make([]byte, 0, 2+len(value))
	buf = append(buf, byte(group<<4|(member-1)))
	buf = append(buf, byte((threshold-1)<<4))
	buf = append(buf, value...)
	h := blake3.Sum256(buf)

	var v uint
	for i := 0; i < n; i++ {
		v = v<<1 | uint(h[i/8]>>(7-uint(i%8))&1)
	}
	return v
}

// Words encodes the share as a dictionary word sequence.
func (s Share) Words(dict *wordlist.Dictionary) ([]string, error) {
	wordCount, ok := wordCountForValueLen[len(s.Value)]
	if !ok {
		return nil, fmt.Errorf("shamir: unsupported value length %d", len(s.Value))
	}
	if s.Member < 1 || s.Member > MaxShares || s.Threshold < 1 || s.Threshold > MaxShares ||
		s.Group < 0 || s.Group >= MaxGroups {
		return nil, fmt.Errorf("shamir: share metadata out of range (group %d, member %d, threshold %d)",
			s.Group, s.Member, s.Threshold)
	}

	csBits := wordCount*shareWordBits - shareMetaBits - len(s.Value)*8

	var w bitstream.Writer
	w.WriteUint(uint(s.Group), 4)
	w.WriteUint(uint(s.Member-1), 4)
	w.WriteUint(uint(s.Threshold-1), 4)
	w.WriteBytes(s.Value)
	w.WriteUint(shareChecksum(s.Group, s.Member, s.Threshold, s.Value, csBits), csBits)

	groups, err := w.Groups(shareWordBits)
	if err != nil {
		return nil, fmt.Errorf("shamir: segment share: %w", err)
	}
	words := make([]string, len(groups))
	for i, g := range groups {
		word, err := dict.WordAt(int(g) + 1)
		if err != nil {
			return nil, fmt.Errorf("shamir: map index: %w", err)
		}
		words[i] = word
	}
	return words, nil
}

// ParseShare decodes a word sequence back into a share, verifying its
// checksum.
func ParseShare(dict *wordlist.Dictionary, words []string) (Share, error) {
	valueLen, ok := valueLenForWordCount[len(words)]
	if !ok {
		return Share{}, fmt.Errorf("%w: %d words", ErrShareLength, len(words))
	}

	groups := make([]uint, len(words))
	for i, w := range words {
		idx, err := dict.IndexOf(w)
		if err != nil {
			return Share{}, err
		}
		groups[i] = uint(idx - 1)
	}

	r := bitstream.NewReader(groups, shareWordBits)
	group, _ := r.ReadUint(4)
	member, _ := r.ReadUint(4)
	threshold, _ := r.ReadUint(4)
	value, err := r.ReadBytes(valueLen)
	if err != nil {
		return Share{}, fmt.Errorf("shamir: read value: %w", err)
	}
	csBits := r.Remaining()
	embedded, err := r.ReadUint(csBits)
	if err != nil {
		return Share{}, fmt.Errorf("shamir: read checksum: %w", err)
	}

	s := Share{
		Group:     int(group),
		Member:    int(member) + 1,
		Threshold: int(threshold) + 1,
		Value:     value,
	}
	if embedded != shareChecksum(s.Group, s.Member, s.Threshold, s.Value, csBits) {
		return Share{}, fmt.Errorf("%w (%d-bit checksum)", ErrShareChecksum, csBits)
	}
	return s, nil
}
