// interstellar deconstructs BIP-39 mnemonics into XOR parts and
// threshold share groups, and reconstructs them. Results are printed as
// JSON on stdout; logs go to stderr.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/interstellar-vault/interstellar/config"
	"github.com/interstellar-vault/interstellar/internal/log"
	"github.com/interstellar-vault/interstellar/internal/transform"
	"github.com/interstellar-vault/interstellar/pkg/wordlist"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "deconstruct":
		cmdDeconstruct(args)
	case "reconstruct":
		cmdReconstruct(args)
	case "version", "--version", "-v":
		fmt.Println(Version)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`interstellar - split and recover seed-phrase secrets

Usage:
  interstellar <command> [flags]

Commands:
  deconstruct   Split a BIP39 mnemonic into parts or threshold shares
  reconstruct   Recover the original mnemonic from parts or shares
  version       Print version
  help          Show this message

Deconstruct flags:
  --mnemonic <phrase>   Mnemonic to deconstruct (prompted if omitted)
  --file <path>         File containing the mnemonic

Reconstruct flags:
  --shares <groups>     Share groups: members separated by ',', groups by ';'
  --file <path>         File with one group per line, members comma-separated
  --split <n>           Original part count (required; no auto-detection)

Common flags:
  --standard <s>        BIP39 (plain parts) or SLIP39 (threshold shares)
  --required <m>        Shares required to reconstruct (default 2)
  --total <n>           Total shares per part (default 3)
  --digits              Use 1-based word indices instead of words
  --log-level <l>       debug, info, warn, error
  --log-file <path>     Also write JSON logs to a file
  --log-json            JSON logs on stderr

Examples:
  interstellar deconstruct --mnemonic "... 12 words ..." --required 2 --total 3
  interstellar reconstruct --shares "w1 w2 ...,w1 w2 ...; ..." --split 2
`)
}

// setup builds a subcommand flag set with the shared flags bound.
func setup(name string) (*config.Config, *flag.FlagSet) {
	cfg := config.Default()
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	config.RegisterFlags(fs, cfg)
	return cfg, fs
}

// finishSetup validates flags, initializes logging and builds the
// engine. Called after fs.Parse.
func finishSetup(cfg *config.Config) *transform.Engine {
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.LogLevel, cfg.LogJSON, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	return transform.New(wordlist.NewEnglish())
}

func cmdDeconstruct(args []string) {
	cfg, fs := setup("deconstruct")
	var phrase, file string
	fs.StringVar(&phrase, "mnemonic", "", "Mnemonic to deconstruct")
	fs.StringVar(&file, "file", "", "File containing the mnemonic")
	fs.Parse(args)
	engine := finishSetup(cfg)

	if phrase == "" && file != "" {
		groups, err := readGroupsFile(file)
		if err != nil || len(groups) == 0 || len(groups[0]) == 0 {
			fatalf("read mnemonic file: %v", err)
		}
		phrase = groups[0][0]
	}
	if phrase == "" {
		phrase = promptMnemonic()
	}
	if phrase == "" {
		fmt.Fprintln(os.Stderr, "a mnemonic is required (--mnemonic, --file, or interactive prompt)")
		os.Exit(1)
	}
	if cfg.Digits {
		converted, err := digitsToWords(engine.Dictionary(), phrase)
		if err != nil {
			fatalf("convert digits: %v", err)
		}
		phrase = converted
	}

	standard, _ := transform.ParseStandard(cfg.Standard)
	result, err := engine.Deconstruct(phrase, transform.DeconstructParams{
		Standard:    standard,
		SplitCount:  cfg.Split,
		Threshold:   cfg.Required,
		TotalShares: cfg.Total,
	})
	if err != nil {
		fatalf("deconstruct: %v", err)
	}

	// Output shapes follow the historic tool: a list of part objects for
	// BIP39, a single object with nested share groups for SLIP39.
	if standard == transform.StandardMnemonic {
		out := make([]map[string]any, 0, len(result.Parts))
		for _, p := range result.Parts {
			m := p.Mnemonic
			if cfg.Digits {
				m, err = wordsToDigits(engine.Dictionary(), m)
				if err != nil {
					fatalf("convert to digits: %v", err)
				}
			}
			out = append(out, map[string]any{
				"standard": "BIP39",
				"mnemonic": m,
				"eth_addr": p.Address,
				"digits":   cfg.Digits,
			})
		}
		printJSON(out)
		return
	}

	groups := make([][]string, 0, len(result.Parts))
	for _, p := range result.Parts {
		shares := p.Shares
		if cfg.Digits {
			shares = make([]string, len(p.Shares))
			for i, s := range p.Shares {
				shares[i], err = wordsToDigits(engine.Dictionary(), s)
				if err != nil {
					fatalf("convert to digits: %v", err)
				}
			}
		}
		groups = append(groups, shares)
	}
	printJSON(map[string]any{
		"standard": "SLIP39",
		"shares":   groups,
		"split":    result.SplitCount,
		"eth_addr": result.Address,
		"digits":   cfg.Digits,
	})
}

func cmdReconstruct(args []string) {
	cfg, fs := setup("reconstruct")
	var sharesArg, file string
	fs.StringVar(&sharesArg, "shares", "", "Share groups (members ',', groups ';')")
	fs.StringVar(&file, "file", "", "File with one group per line")
	fs.Parse(args)
	engine := finishSetup(cfg)

	var groups [][]string
	var err error
	switch {
	case sharesArg != "":
		groups = parseGroups(sharesArg)
	case file != "":
		groups, err = readGroupsFile(file)
		if err != nil {
			fatalf("read shares file: %v", err)
		}
	default:
		fmt.Fprintln(os.Stderr, "shares are required (--shares or --file)")
		os.Exit(1)
	}

	if cfg.Digits {
		for g := range groups {
			for i := range groups[g] {
				groups[g][i], err = digitsToWords(engine.Dictionary(), groups[g][i])
				if err != nil {
					fatalf("convert digits: %v", err)
				}
			}
		}
	}

	splitCount := cfg.Split
	if splitCount == 0 {
		fmt.Fprintln(os.Stderr, "reconstruct requires --split: the original part count cannot be auto-detected")
		os.Exit(1)
	}

	standard, _ := transform.ParseStandard(cfg.Standard)
	result, err := engine.Reconstruct(groups, transform.ReconstructParams{
		Standard:   standard,
		SplitCount: splitCount,
	})
	if err != nil {
		fatalf("reconstruct: %v", err)
	}

	mnemonic := result.Mnemonic
	if cfg.Digits {
		mnemonic, err = wordsToDigits(engine.Dictionary(), mnemonic)
		if err != nil {
			fatalf("convert to digits: %v", err)
		}
	}
	printJSON(map[string]any{
		"standard": "BIP39",
		"mnemonic": mnemonic,
		"eth_addr": result.Address,
		"required": result.Threshold,
		"split":    result.SplitCount,
		"digits":   cfg.Digits,
	})
}

// parseGroups splits a 2D phrase list: groups separated by ';', members
// by ','.
func parseGroups(value string) [][]string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	var out [][]string
	for _, line := range strings.Split(value, ";") {
		var group []string
		for _, member := range strings.Split(line, ",") {
			group = append(group, strings.TrimSpace(member))
		}
		out = append(out, group)
	}
	return out
}

// readGroupsFile reads one group per line, members comma-separated.
// Blank lines are skipped.
func readGroupsFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out [][]string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var group []string
		for _, member := range strings.Split(line, ",") {
			group = append(group, strings.TrimSpace(member))
		}
		out = append(out, group)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// promptMnemonic reads a mnemonic from the terminal without echoing it.
// Returns "" when stdin is not a terminal.
func promptMnemonic() string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ""
	}
	fmt.Fprint(os.Stderr, "Mnemonic (input hidden): ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fatalf("read mnemonic: %v", err)
	}
	return strings.TrimSpace(string(b))
}

// wordsToDigits converts a space-separated phrase to 1-based indices.
func wordsToDigits(dict *wordlist.Dictionary, phrase string) (string, error) {
	digits, err := dict.ToDigits(strings.Fields(phrase))
	if err != nil {
		return "", err
	}
	return strings.Join(digits, " "), nil
}

// digitsToWords converts a space-separated index phrase back to words.
func digitsToWords(dict *wordlist.Dictionary, phrase string) (string, error) {
	words, err := dict.FromDigits(strings.Fields(phrase))
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		fatalf("encode output: %v", err)
	}
}

func fatalf(format string, args ...any) {
	log.CLI.Error().Msgf(format, args...)
	os.Exit(2)
}
