package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/tempo/internal/config"
	"github.com/danmuck/tempo/internal/logging"
	"github.com/danmuck/tempo/internal/synth"
)

type options struct {
	configPath string
	out        string
	adds       int
	seed       uint64
	locator    uint
	symbol     string
	set        map[string]bool
}

func main() {
	opts := parseFlags()
	logging.ConfigureRuntime()

	cfg, err := resolveConfig(opts)
	if err != nil {
		fatalf("%v", err)
	}
	stats, err := generateFile(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	log.Info().
		Str("path", cfg.Output).
		Int("adds", stats.Adds).
		Int("executes", stats.Executes).
		Int("cancels", stats.Cancels).
		Int64("bytes", stats.Bytes).
		Msg("feed written")
}

func parseFlags() options {
	defaults := config.DefaultDecodeConfig().Generate
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "TOML config path ([generate] table)")
	flag.StringVar(&opts.out, "out", defaults.Output, "output feed path")
	flag.IntVar(&opts.adds, "n", defaults.Adds, "number of AddOrder messages")
	flag.Uint64Var(&opts.seed, "seed", defaults.Seed, "random seed")
	flag.UintVar(&opts.locator, "locator", uint(defaults.StockLocator), "stock locator")
	flag.StringVar(&opts.symbol, "symbol", defaults.Symbol, "stock symbol (up to 8 bytes)")
	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	if flag.NArg() > 0 && !opts.set["n"] {
		// Positional count, as in `itchgen 5000`.
		n, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			fatalf("invalid add count %q", flag.Arg(0))
		}
		opts.adds = n
		opts.set["n"] = true
	}
	return opts
}

func resolveConfig(opts options) (config.GenerateConfig, error) {
	cfg := config.DefaultDecodeConfig().Generate
	if opts.configPath != "" {
		loaded, err := config.LoadDecodeConfig(opts.configPath)
		if err != nil {
			return config.GenerateConfig{}, err
		}
		cfg = loaded.Generate
	}
	fromFlags := opts.configPath == ""
	if fromFlags || opts.set["out"] {
		cfg.Output = opts.out
	}
	if fromFlags || opts.set["n"] {
		cfg.Adds = opts.adds
	}
	if fromFlags || opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if fromFlags || opts.set["locator"] {
		if opts.locator > 0xffff {
			return config.GenerateConfig{}, fmt.Errorf("locator out of range: %d", opts.locator)
		}
		cfg.StockLocator = uint16(opts.locator)
	}
	if fromFlags || opts.set["symbol"] {
		cfg.Symbol = opts.symbol
	}
	if err := config.ValidateGenerateConfig(cfg); err != nil {
		return config.GenerateConfig{}, err
	}
	return cfg, nil
}

func generateFile(cfg config.GenerateConfig) (synth.Stats, error) {
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return synth.Stats{}, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return synth.Stats{}, fmt.Errorf("create output: %w", err)
	}
	stats, err := synth.Generate(f, synth.Config{
		Adds:         cfg.Adds,
		Seed:         cfg.Seed,
		StockLocator: cfg.StockLocator,
		Symbol:       cfg.Symbol,
	})
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}
	return stats, err
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "itchgen: "+format+"\n", args...)
	os.Exit(1)
}
