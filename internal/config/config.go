package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/tempo/internal/logging"
)

// Input modes for the decode driver.
const (
	ModeMmap   = "mmap"
	ModeStream = "stream"
)

// Output formats for the decode driver.
const (
	FormatText = "text"
	FormatJSON = "json"
)

const (
	DefaultInput     = "./data/itch_sample"
	DefaultChunkSize = 64 * 1024
	minChunkSize     = 64
)

// DecodeConfig drives tempoctl.
type DecodeConfig struct {
	Input     string
	Mode      string
	ChunkSize int
	Format    string
	// Limit stops output after this many records; 0 prints all.
	Limit    int
	Summary bool
	// LogLevel, when set, replaces the level chosen by logging.Configure.
	LogLevel string
	Generate GenerateConfig
}

// GenerateConfig drives itchgen.
type GenerateConfig struct {
	Output       string
	Adds         int
	Seed         uint64
	StockLocator uint16
	Symbol       string
}

type fileConfig struct {
	Input     string       `toml:"input"`
	Mode      string       `toml:"mode"`
	ChunkSize int          `toml:"chunk_size"`
	Format    string       `toml:"format"`
	Limit     int          `toml:"limit"`
	Summary   bool         `toml:"summary"`
	LogLevel  string       `toml:"log_level"`
	Generate  fileGenerate `toml:"generate"`
}

type fileGenerate struct {
	Output       string `toml:"output"`
	Adds         int    `toml:"adds"`
	Seed         int64  `toml:"seed"`
	StockLocator int    `toml:"stock_locator"`
	Symbol       string `toml:"symbol"`
}

func DefaultDecodeConfig() DecodeConfig {
	return DecodeConfig{
		Input:     DefaultInput,
		Mode:      ModeMmap,
		ChunkSize: DefaultChunkSize,
		Format:    FormatText,
		Summary:   true,
		Generate: GenerateConfig{
			Output:       DefaultInput,
			Adds:         1000,
			Seed:         123456,
			StockLocator: 1,
			Symbol:       "AAPL",
		},
	}
}

// LoadDecodeConfig overlays the keys present in the TOML file at path onto
// DefaultDecodeConfig and validates the result.
func LoadDecodeConfig(path string) (DecodeConfig, error) {
	cfg := DefaultDecodeConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return DecodeConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return DecodeConfig{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("mode") {
		cfg.Mode = normalize(raw.Mode)
	}
	if meta.IsDefined("chunk_size") {
		cfg.ChunkSize = raw.ChunkSize
	}
	if meta.IsDefined("format") {
		cfg.Format = normalize(raw.Format)
	}
	if meta.IsDefined("limit") {
		cfg.Limit = raw.Limit
	}
	if meta.IsDefined("summary") {
		cfg.Summary = raw.Summary
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = normalize(raw.LogLevel)
	}

	if meta.IsDefined("generate", "output") {
		cfg.Generate.Output = strings.TrimSpace(raw.Generate.Output)
	}
	if meta.IsDefined("generate", "adds") {
		cfg.Generate.Adds = raw.Generate.Adds
	}
	if meta.IsDefined("generate", "seed") {
		if raw.Generate.Seed < 0 {
			return DecodeConfig{}, fmt.Errorf("generate.seed must not be negative")
		}
		cfg.Generate.Seed = uint64(raw.Generate.Seed)
	}
	if meta.IsDefined("generate", "stock_locator") {
		if raw.Generate.StockLocator < 0 || raw.Generate.StockLocator > 0xffff {
			return DecodeConfig{}, fmt.Errorf("generate.stock_locator out of range: %d", raw.Generate.StockLocator)
		}
		cfg.Generate.StockLocator = uint16(raw.Generate.StockLocator)
	}
	if meta.IsDefined("generate", "symbol") {
		cfg.Generate.Symbol = strings.TrimSpace(raw.Generate.Symbol)
	}

	if err := ValidateDecodeConfig(cfg); err != nil {
		return DecodeConfig{}, err
	}
	return cfg, nil
}

func ValidateDecodeConfig(cfg DecodeConfig) error {
	if strings.TrimSpace(cfg.Input) == "" {
		return fmt.Errorf("decode config missing input")
	}
	switch cfg.Mode {
	case ModeMmap:
	case ModeStream:
		if cfg.ChunkSize < minChunkSize {
			return fmt.Errorf("chunk_size must be at least %d, got %d", minChunkSize, cfg.ChunkSize)
		}
	default:
		return fmt.Errorf("unknown mode %q (supported: mmap, stream)", cfg.Mode)
	}
	switch cfg.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (supported: text, json)", cfg.Format)
	}
	if cfg.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); cfg.LogLevel != "" && !ok {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if err := ValidateGenerateConfig(cfg.Generate); err != nil {
		return fmt.Errorf("generate invalid: %w", err)
	}
	return nil
}

func ValidateGenerateConfig(cfg GenerateConfig) error {
	if strings.TrimSpace(cfg.Output) == "" {
		return fmt.Errorf("output is required")
	}
	if cfg.Adds < 0 {
		return fmt.Errorf("adds must not be negative")
	}
	if cfg.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if len(cfg.Symbol) > 8 {
		return fmt.Errorf("symbol %q longer than 8 bytes", cfg.Symbol)
	}
	return nil
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
