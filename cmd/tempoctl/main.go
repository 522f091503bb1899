package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/tempo/internal/config"
	"github.com/danmuck/tempo/internal/feedfile"
	"github.com/danmuck/tempo/internal/itch/stream"
	"github.com/danmuck/tempo/internal/logging"
	"github.com/danmuck/tempo/internal/render"
)

type options struct {
	configPath  string
	input       string
	mode        string
	format      string
	chunkSize   int
	limit       int
	summary     bool
	writeConfig string
	force       bool
	set         map[string]bool
}

func main() {
	opts := parseFlags()
	logging.ConfigureRuntime()

	if opts.writeConfig != "" {
		if err := config.WriteTemplate(opts.writeConfig, opts.force); err != nil {
			fatalf("%v", err)
		}
		log.Info().Str("path", opts.writeConfig).Msg("config template written")
		return
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		fatalf("%v", err)
	}
	if err := run(cfg, os.Stdout); err != nil {
		fatalf("%v", err)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "TOML config path")
	flag.StringVar(&opts.input, "input", config.DefaultInput, "feed file to decode")
	flag.StringVar(&opts.mode, "mode", config.ModeMmap, "input mode: mmap | stream")
	flag.StringVar(&opts.format, "format", config.FormatText, "output format: text | json")
	flag.IntVar(&opts.chunkSize, "chunk-size", config.DefaultChunkSize, "read buffer size in stream mode")
	flag.IntVar(&opts.limit, "limit", 0, "print at most this many records (0 = all)")
	flag.BoolVar(&opts.summary, "summary", true, "print per-type counts after decoding")
	flag.StringVar(&opts.writeConfig, "write-config", "", "write a config template to this path and exit")
	flag.BoolVar(&opts.force, "force", false, "overwrite an existing config template")
	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts
}

// resolveConfig loads the config file, if any, and lets explicitly set flags
// win over it.
func resolveConfig(opts options) (config.DecodeConfig, error) {
	cfg := config.DefaultDecodeConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadDecodeConfig(opts.configPath)
		if err != nil {
			return config.DecodeConfig{}, err
		}
		cfg = loaded
	}
	if opts.configPath == "" || opts.set["input"] {
		cfg.Input = opts.input
	}
	if opts.configPath == "" || opts.set["mode"] {
		cfg.Mode = opts.mode
	}
	if opts.configPath == "" || opts.set["format"] {
		cfg.Format = opts.format
	}
	if opts.configPath == "" || opts.set["chunk-size"] {
		cfg.ChunkSize = opts.chunkSize
	}
	if opts.configPath == "" || opts.set["limit"] {
		cfg.Limit = opts.limit
	}
	if opts.configPath == "" || opts.set["summary"] {
		cfg.Summary = opts.summary
	}
	if err := config.ValidateDecodeConfig(cfg); err != nil {
		return config.DecodeConfig{}, err
	}
	return cfg, nil
}

func run(cfg config.DecodeConfig, out io.Writer) error {
	if cfg.LogLevel != "" {
		if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
			zerolog.SetGlobalLevel(lvl)
		}
	}

	printer, err := render.NewPrinter(out, render.Format(cfg.Format), cfg.Limit)
	if err != nil {
		return err
	}

	consumed, decodeErr := decode(cfg, printer)
	if err := printer.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	summary := printer.Summary()
	if cfg.Summary {
		if _, err := summary.WriteTo(out); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	log.Info().
		Str("input", cfg.Input).
		Str("mode", cfg.Mode).
		Int("records", summary.Total).
		Int64("bytes", consumed).
		Msg("decode finished")
	return decodeErr
}

func decode(cfg config.DecodeConfig, h stream.Handler) (int64, error) {
	switch cfg.Mode {
	case config.ModeStream:
		feed, err := feedfile.Open(cfg.Input, cfg.ChunkSize)
		if err != nil {
			return 0, err
		}
		defer feed.Close()
		err = feed.Drain(h)
		return feed.Offset(), err
	default:
		feed, err := feedfile.Map(cfg.Input)
		if err != nil {
			return 0, err
		}
		defer feed.Close()
		n, err := stream.Parse(feed.Bytes(), h)
		return int64(n), err
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tempoctl: "+format+"\n", args...)
	os.Exit(1)
}
