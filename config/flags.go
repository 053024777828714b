package config

import "flag"

// RegisterFlags binds the shared CLI flags onto a flag set. Each
// subcommand owns its flag set; the bindings are identical across them.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Standard, "standard", cfg.Standard, "Mnemonic standard: BIP39 or SLIP39")
	fs.IntVar(&cfg.Required, "required", cfg.Required, "Shares required to reconstruct (M of N)")
	fs.IntVar(&cfg.Total, "total", cfg.Total, "Total shares per part (N)")
	fs.IntVar(&cfg.Split, "split", cfg.Split, "Part count (0 = auto on deconstruct)")
	fs.BoolVar(&cfg.Digits, "digits", cfg.Digits, "Use 1-based word indices instead of words")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "Output logs as JSON")
}
