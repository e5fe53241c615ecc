package config_test

import (
	"testing"

	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/parser"
	"github.com/chanseg/chanseg/std/parser/config"
	tu "github.com/chanseg/chanseg/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := config.DefaultConfig()
	require.NoError(t, c.Parse())

	require.Equal(t, 100, c.IdSize)
	require.Equal(t, "simple", c.DefaultParser)
	require.Equal(t, int64(100*1024*1024), c.MaxFallbackSize())
	require.Equal(t, parser.DefaultWindowOptions(), c.Window())
	require.Equal(t, []byte("\n"), c.SessionDelimiter())
	require.Equal(t, log.LevelInfo, c.Level())
}

func TestLoad(t *testing.T) {
	tu.SetT(t)

	path := tu.TempFile(t, "chanseg.yml", []byte(`
types:
  HTML: "<htm"
  PDF: "%PDF-"
id_size: 64
parsers:
  HTML: delimited
byte_parsers:
  PDF: simple
default_parser: simple
max_fallback_size: 1 MB
min_chunk_size: 4KiB
max_chunk_size: 1MiB
chunk_increment: 64KiB
delimiter: '\r\n\r\n'
log_level: debug
`))

	c := tu.NoErr(config.Load(path))
	require.Equal(t, map[string]string{"HTML": "<htm", "PDF": "%PDF-"}, c.Types)
	require.Equal(t, 64, c.IdSize)
	require.Equal(t, "delimited", c.Parsers["HTML"])
	require.Equal(t, "simple", c.ByteParsers["PDF"])
	require.Equal(t, int64(1000*1000), c.MaxFallbackSize())
	require.Equal(t, parser.WindowOptions{
		MinChunkSize:   4 * 1024,
		MaxChunkSize:   1024 * 1024,
		ChunkIncrement: 64 * 1024,
	}, c.Window())
	require.Equal(t, []byte("\r\n\r\n"), c.SessionDelimiter())
	require.Equal(t, log.LevelDebug, c.Level())
}

func TestLoadLiteralDelimiter(t *testing.T) {
	tu.SetT(t)

	path := tu.TempFile(t, "nl.yml", []byte("delimiter: \"\\n--\\n\"\n"))
	c := tu.NoErr(config.Load(path))
	require.Equal(t, []byte("\n--\n"), c.SessionDelimiter())
}

func TestLoadErrors(t *testing.T) {
	tu.SetT(t)

	tests := map[string]string{
		"unknown field":   "no_such_field: 1\n",
		"bad size":        "max_chunk_size: lots\n",
		"zero size":       "min_chunk_size: 0\n",
		"min above max":   "min_chunk_size: 2MiB\nmax_chunk_size: 1MiB\n",
		"empty pattern":   "types:\n  X: \"\"\n",
		"bad level":       "log_level: chatty\n",
		"empty delimiter": "delimiter: \"\"\n",
		"bad id size":     "id_size: 0\n",
		"no default":      "default_parser: \"\"\n",
	}
	for name, yml := range tests {
		t.Run(name, func(t *testing.T) {
			tu.SetT(t)
			tu.Err(config.Load(tu.TempFile(t, "bad.yml", []byte(yml))))
		})
	}

	tu.SetT(t)
	tu.Err(config.Load(t.TempDir() + "/missing.yml"))
}
