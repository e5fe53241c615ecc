package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/parser"
	"github.com/chanseg/chanseg/std/utils/toolutils"
	"github.com/dustin/go-humanize"
)

// DefaultIdSize is how many leading bytes identification looks at.
const DefaultIdSize = 100

// DefaultParser is used for content without a dedicated parser.
const DefaultParser = "simple"

type Config struct {
	// Content labels and the literal byte prefix identifying each.
	Types map[string]string `json:"types"`
	// Number of leading bytes examined to identify content.
	IdSize int `json:"id_size"`
	// Channel parser name per content label.
	Parsers map[string]string `json:"parsers"`
	// Whole-buffer parser name per content label.
	ByteParsers map[string]string `json:"byte_parsers"`
	// Channel parser used when no label matches.
	DefaultParser string `json:"default_parser"`
	// Largest input read into memory for a whole-buffer parser.
	FallbackSize string `json:"max_fallback_size"`
	// Initial size of the parse window.
	MinChunk string `json:"min_chunk_size"`
	// Largest parse window, and thereby the largest session.
	MaxChunk string `json:"max_chunk_size"`
	// Growth step of the parse window.
	ChunkStep string `json:"chunk_increment"`
	// Session separator of the delimited parser. Escapes are allowed.
	Delimiter string `json:"delimiter"`
	// Logging level.
	LogLevel string `json:"log_level"`

	// Parsed fallback size
	maxFallbackSize int64
	// Parsed window sizes
	window parser.WindowOptions
	// Unescaped delimiter
	delimiter []byte
	// Parsed log level
	level log.Level
}

func DefaultConfig() *Config {
	return &Config{
		Types:         map[string]string{},
		IdSize:        DefaultIdSize,
		Parsers:       map[string]string{},
		ByteParsers:   map[string]string{},
		DefaultParser: DefaultParser,
		FallbackSize:  "100MiB",
		MinChunk:      "2MiB",
		MaxChunk:      "40MiB",
		ChunkStep:     strconv.Itoa(parser.DefaultChunkIncrement),
		Delimiter:     `\n`,
		LogLevel:      "INFO",
	}
}

// Load reads a YAML configuration file on top of the defaults and parses it.
func Load(path string) (*Config, error) {
	c := DefaultConfig()
	if err := toolutils.ReadYaml(c, path); err != nil {
		return nil, err
	}
	if err := c.Parse(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Parse() (err error) {
	if c.IdSize <= 0 {
		return fmt.Errorf("id_size must be positive")
	}
	if c.DefaultParser == "" {
		return fmt.Errorf("default_parser must be set")
	}
	for label, pattern := range c.Types {
		if pattern == "" {
			return fmt.Errorf("empty pattern for type %s", label)
		}
	}

	fallback, err := parseSize("max_fallback_size", c.FallbackSize)
	if err != nil {
		return err
	}
	c.maxFallbackSize = int64(fallback)

	if c.window.MinChunkSize, err = parseSize("min_chunk_size", c.MinChunk); err != nil {
		return err
	}
	if c.window.MaxChunkSize, err = parseSize("max_chunk_size", c.MaxChunk); err != nil {
		return err
	}
	if c.window.ChunkIncrement, err = parseSize("chunk_increment", c.ChunkStep); err != nil {
		return err
	}
	if c.window.MinChunkSize > c.window.MaxChunkSize {
		return fmt.Errorf("min_chunk_size must not exceed max_chunk_size")
	}

	delimiter := c.Delimiter
	if strings.Contains(delimiter, `\`) {
		if delimiter, err = strconv.Unquote(`"` + delimiter + `"`); err != nil {
			return fmt.Errorf("invalid delimiter %q: %w", c.Delimiter, err)
		}
	}
	if delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	c.delimiter = []byte(delimiter)

	if c.level, err = log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// parseSize parses a human readable, positive byte size.
func parseSize(name, value string) (int, error) {
	size, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if size == 0 || size > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be between 1 and %s", name, humanize.IBytes(math.MaxInt32))
	}
	return int(size), nil
}

// MaxFallbackSize is the largest channel read into memory for a whole-buffer
// parser.
func (c *Config) MaxFallbackSize() int64 {
	return c.maxFallbackSize
}

func (c *Config) Window() parser.WindowOptions {
	return c.window
}

func (c *Config) SessionDelimiter() []byte {
	return c.delimiter
}

func (c *Config) Level() log.Level {
	return c.level
}
