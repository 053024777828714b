// Package wordlist provides the fixed word dictionary used by mnemonic
// and share encoding.
package wordlist

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tyler-smith/go-bip39/wordlists"
)

var (
	// ErrUnknownWord is returned when a word is not in the dictionary.
	ErrUnknownWord = errors.New("wordlist: unknown word")

	// ErrIndexOutOfRange is returned when an index is outside [1, Size].
	ErrIndexOutOfRange = errors.New("wordlist: index out of range")
)

// Dictionary is an immutable, ordered word list with bidirectional
// word<->index lookup. External indices are 1-based; the zero value of
// an index is never valid. Lookup is case-sensitive and exact-match.
type Dictionary struct {
	words []string
	index map[string]int // word -> 0-based position
}

// New builds a dictionary from an ordered word list. The slice is copied
// so the dictionary cannot be mutated through the caller's reference.
func New(words []string) (*Dictionary, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("wordlist: empty word list")
	}
	d := &Dictionary{
		words: make([]string, len(words)),
		index: make(map[string]int, len(words)),
	}
	copy(d.words, words)
	for i, w := range d.words {
		if _, dup := d.index[w]; dup {
			return nil, fmt.Errorf("wordlist: duplicate word %q at position %d", w, i)
		}
		d.index[w] = i
	}
	return d, nil
}

// NewEnglish returns the standard 2048-word BIP-39 English dictionary.
func NewEnglish() *Dictionary {
	d, err := New(wordlists.English)
	if err != nil {
		// The embedded list is a compile-time constant; a failure here
		// is a build defect, not a runtime condition.
		panic(err)
	}
	return d
}

// Size returns the number of words in the dictionary.
func (d *Dictionary) Size() int {
	return len(d.words)
}

// IndexOf returns the 1-based index of a word.
func (d *Dictionary) IndexOf(word string) (int, error) {
	i, ok := d.index[word]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return i + 1, nil
}

// WordAt returns the word at a 1-based index.
func (d *Dictionary) WordAt(index int) (string, error) {
	if index < 1 || index > len(d.words) {
		return "", fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, index, len(d.words))
	}
	return d.words[index-1], nil
}

// ToDigits converts a word sequence to its decimal 1-based index form.
// Used by the CLI's digits mode; the core codecs always work on words.
func (d *Dictionary) ToDigits(words []string) ([]string, error) {
	out := make([]string, len(words))
	for i, w := range words {
		idx, err := d.IndexOf(w)
		if err != nil {
			return nil, err
		}
		out[i] = strconv.Itoa(idx)
	}
	return out, nil
}

// FromDigits converts decimal 1-based indices back to words.
func (d *Dictionary) FromDigits(digits []string) ([]string, error) {
	out := make([]string, len(digits))
	for i, s := range digits {
		idx, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("wordlist: digit %q: %w", s, err)
		}
		w, err := d.WordAt(idx)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}
