// Package transform is the facade over the codec, splitter, sharing
// engine and verifier. It is the only surface the command layer calls.
package transform

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/interstellar-vault/interstellar/internal/log"
	"github.com/interstellar-vault/interstellar/internal/mnemonic"
	"github.com/interstellar-vault/interstellar/internal/shamir"
	"github.com/interstellar-vault/interstellar/internal/split"
	"github.com/interstellar-vault/interstellar/internal/verify"
	"github.com/interstellar-vault/interstellar/pkg/wordlist"
)

// Standard selects the representation of deconstructed parts.
type Standard string

const (
	// StandardMnemonic emits each part as a plain BIP-39 mnemonic.
	StandardMnemonic Standard = "BIP39"

	// StandardShares wraps each part in threshold shares.
	StandardShares Standard = "SLIP39"
)

var (
	// ErrUnknownStandard is returned for a standard outside the two
	// supported values.
	ErrUnknownStandard = errors.New("transform: unknown standard")

	// ErrPartCountMismatch is returned when the number of groups
	// supplied to Reconstruct differs from the asserted split count.
	// The wire format carries no split-count tag, so the caller must
	// know and assert how many parts the secret was split into.
	ErrPartCountMismatch = errors.New("transform: part count mismatch")
)

// ParseStandard parses a case-insensitive standard name.
func ParseStandard(s string) (Standard, error) {
	switch strings.ToUpper(s) {
	case string(StandardMnemonic):
		return StandardMnemonic, nil
	case string(StandardShares):
		return StandardShares, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStandard, s)
	}
}

// Engine composes the pipeline around a shared read-only dictionary.
// Engines are stateless beyond the dictionary and safe for concurrent
// use; every call owns its inputs and outputs.
type Engine struct {
	dict *wordlist.Dictionary
	log  zerolog.Logger
}

// New returns an engine over the given dictionary.
func New(dict *wordlist.Dictionary) *Engine {
	return &Engine{dict: dict, log: log.Transform}
}

// Dictionary returns the engine's dictionary, for callers that perform
// the word<->digit substitution around the facade.
func (e *Engine) Dictionary() *wordlist.Dictionary {
	return e.dict
}

// DeconstructParams control a Deconstruct call.
type DeconstructParams struct {
	// Standard selects plain part mnemonics or threshold shares.
	Standard Standard

	// SplitCount is the number of XOR parts. Zero selects the historic
	// auto rule: 24-word mnemonics split into 2 parts, all others 1.
	SplitCount int

	// Threshold and TotalShares configure the sharing engine; ignored
	// for StandardMnemonic.
	Threshold   int
	TotalShares int

	// Rand supplies randomness for splitting and share polynomials.
	// Nil means crypto/rand.
	Rand io.Reader
}

// PartResult is one independently consumable part of a deconstruction:
// either a plain mnemonic or a full share group.
type PartResult struct {
	Group     int      `json:"group"`
	Mnemonic  string   `json:"mnemonic,omitempty"`
	Address   string   `json:"eth_addr,omitempty"`
	Shares    []string `json:"shares,omitempty"`
	Threshold int      `json:"threshold,omitempty"`
	Total     int      `json:"total,omitempty"`
}

// DeconstructResult bundles all parts plus echoed parameters.
type DeconstructResult struct {
	Standard   Standard     `json:"standard"`
	SplitCount int          `json:"split"`
	Parts      []PartResult `json:"parts"`
	Address    string       `json:"eth_addr,omitempty"`
}

// Deconstruct decodes a mnemonic, splits its entropy and encodes each
// part per the requested standard.
func (e *Engine) Deconstruct(phrase string, p DeconstructParams) (*DeconstructResult, error) {
	if p.Standard != StandardMnemonic && p.Standard != StandardShares {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStandard, p.Standard)
	}

	words := strings.Fields(phrase)
	entropy, err := mnemonic.Decode(e.dict, words)
	if err != nil {
		return nil, err
	}

	splitCount := p.SplitCount
	if splitCount == 0 {
		splitCount = 1
		if len(words) == 24 {
			splitCount = 2
		}
	}

	parts, err := split.Split(entropy, splitCount, p.Rand)
	if err != nil {
		return nil, err
	}

	result := &DeconstructResult{
		Standard:   p.Standard,
		SplitCount: splitCount,
		Parts:      make([]PartResult, 0, splitCount),
	}
	for g, part := range parts {
		pr := PartResult{Group: g}
		switch p.Standard {
		case StandardMnemonic:
			partWords, err := mnemonic.Encode(e.dict, part)
			if err != nil {
				return nil, err
			}
			pr.Mnemonic = strings.Join(partWords, " ")
			if addr, err := verify.Address(e.dict, part); err != nil {
				e.log.Warn().Err(err).Int("group", g).Msg("part label derivation failed")
			} else {
				pr.Address = addr
			}
		case StandardShares:
			shares, err := shamir.Split(part, p.Threshold, p.TotalShares, g, p.Rand)
			if err != nil {
				return nil, err
			}
			pr.Threshold = p.Threshold
			pr.Total = p.TotalShares
			pr.Shares = make([]string, 0, len(shares))
			for _, s := range shares {
				shareWords, err := s.Words(e.dict)
				if err != nil {
					return nil, err
				}
				pr.Shares = append(pr.Shares, strings.Join(shareWords, " "))
			}
		}
		result.Parts = append(result.Parts, pr)
	}

	// The label is advisory; a derivation failure is reported via logs
	// and an empty field, never by failing the deconstruction.
	addr, err := verify.Address(e.dict, entropy)
	if err != nil {
		e.log.Warn().Err(err).Msg("verification label derivation failed")
	} else {
		result.Address = addr
	}

	e.log.Debug().
		Str("standard", string(p.Standard)).
		Int("split", splitCount).
		Int("words", len(words)).
		Msg("deconstructed mnemonic")
	return result, nil
}

// ReconstructParams control a Reconstruct call.
type ReconstructParams struct {
	// Standard names the representation of the supplied groups.
	Standard Standard

	// SplitCount is the caller's assertion of the original split count.
	// It must be >= 1 and equal the number of supplied groups; there is
	// no auto-detection (see ErrPartCountMismatch).
	SplitCount int
}

// ReconstructResult is the recovered mnemonic plus its verification
// label and echoed parameters.
type ReconstructResult struct {
	Mnemonic   string `json:"mnemonic"`
	Address    string `json:"eth_addr,omitempty"`
	Threshold  int    `json:"required,omitempty"`
	SplitCount int    `json:"split"`
}

// Reconstruct rebuilds the original mnemonic from per-part groups:
// one plain part mnemonic per group for StandardMnemonic, or at least a
// threshold of word-encoded shares per group for StandardShares.
func (e *Engine) Reconstruct(groups [][]string, p ReconstructParams) (*ReconstructResult, error) {
	if p.Standard != StandardMnemonic && p.Standard != StandardShares {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStandard, p.Standard)
	}
	if p.SplitCount < 1 {
		return nil, fmt.Errorf("%w: split count must be asserted (>= 1)", ErrPartCountMismatch)
	}
	if len(groups) != p.SplitCount {
		return nil, fmt.Errorf("%w: got %d groups, split count is %d", ErrPartCountMismatch, len(groups), p.SplitCount)
	}

	threshold := 0
	parts := make([][]byte, 0, len(groups))
	for g, group := range groups {
		if len(group) == 0 {
			return nil, fmt.Errorf("transform: group %d is empty", g)
		}
		switch p.Standard {
		case StandardMnemonic:
			if len(group) != 1 {
				return nil, fmt.Errorf("transform: group %d has %d mnemonics, want exactly 1", g, len(group))
			}
			part, err := mnemonic.Decode(e.dict, strings.Fields(group[0]))
			if err != nil {
				return nil, fmt.Errorf("group %d: %w", g, err)
			}
			parts = append(parts, part)
		case StandardShares:
			shares := make([]shamir.Share, 0, len(group))
			for _, phrase := range group {
				s, err := shamir.ParseShare(e.dict, strings.Fields(phrase))
				if err != nil {
					return nil, fmt.Errorf("group %d: %w", g, err)
				}
				shares = append(shares, s)
			}
			part, err := shamir.Reconstruct(shares)
			if err != nil {
				return nil, fmt.Errorf("group %d: %w", g, err)
			}
			threshold = shares[0].Threshold
			parts = append(parts, part)
		}
	}

	entropy, err := split.Combine(parts)
	if err != nil {
		return nil, err
	}
	words, err := mnemonic.Encode(e.dict, entropy)
	if err != nil {
		return nil, err
	}

	result := &ReconstructResult{
		Mnemonic:   strings.Join(words, " "),
		Threshold:  threshold,
		SplitCount: p.SplitCount,
	}
	addr, err := verify.Address(e.dict, entropy)
	if err != nil {
		e.log.Warn().Err(err).Msg("verification label derivation failed")
	} else {
		result.Address = addr
	}

	e.log.Debug().
		Str("standard", string(p.Standard)).
		Int("groups", len(groups)).
		Msg("reconstructed mnemonic")
	return result, nil
}
