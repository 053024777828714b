// Package config handles command-surface configuration: the sharing
// parameters and logging settings the interstellar CLI runs with.
//
// Nothing here is persisted; a Config lives for one invocation.
package config

import (
	"fmt"

	"github.com/interstellar-vault/interstellar/internal/shamir"
	"github.com/interstellar-vault/interstellar/internal/transform"
)

// Config holds runtime settings for one CLI invocation.
type Config struct {
	// Standard selects BIP39 (plain part mnemonics) or SLIP39
	// (threshold shares) for the non-core side of a transformation.
	Standard string

	// Required and Total are the M-of-N sharing parameters.
	Required int
	Total    int

	// Split is the part count. Zero means auto on deconstruct
	// (24 words -> 2 parts) and must be asserted on reconstruct.
	Split int

	// Digits switches word sequences to 1-based dictionary indices on
	// input and output.
	Digits bool

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool
}

// Default returns the default configuration: 2-of-3 shares, words not
// digits, warn-level console logging.
func Default() *Config {
	return &Config{
		Standard: string(transform.StandardShares),
		Required: 2,
		Total:    3,
		LogLevel: "warn",
	}
}

// Validate checks the configuration for operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, err := transform.ParseStandard(cfg.Standard); err != nil {
		return fmt.Errorf("standard must be %q or %q", transform.StandardMnemonic, transform.StandardShares)
	}
	if cfg.Required < 1 {
		return fmt.Errorf("required must be >= 1")
	}
	if cfg.Total < cfg.Required {
		return fmt.Errorf("total (%d) must be >= required (%d)", cfg.Total, cfg.Required)
	}
	if cfg.Total > shamir.MaxShares {
		return fmt.Errorf("total must be <= %d", shamir.MaxShares)
	}
	if cfg.Split < 0 {
		return fmt.Errorf("split must be >= 0")
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log-level must be debug, info, warn or error")
	}
	return nil
}
