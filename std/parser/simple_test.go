package parser_test

import (
	"bytes"
	"testing"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/parser"
	tu "github.com/chanseg/chanseg/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestSimpleParser(t *testing.T) {
	tu.SetT(t)

	c := channel.Memory([]byte("0123456789")).Create()
	p := parser.NewSimpleParser(c)
	require.False(t, p.IsFullyParsed())

	d := tu.NoErr(p.NextSession())
	require.Len(t, d.Data, 10)
	require.Equal(t, []byte("0123456789"), d.Data)
	require.False(t, d.HasHeader())
	require.False(t, d.HasFooter())
	size, ok := d.StringMetaDataItem(parser.OrigDocSizeKey, ";")
	require.True(t, ok)
	require.Equal(t, "10", size)
	require.Equal(t, "", p.SessionName(d))

	_, err := p.NextSession()
	require.ErrorIs(t, err, parser.ErrEndOfInput)
	require.True(t, p.IsFullyParsed())
	require.False(t, c.IsOpen())
}

func TestSimpleParserEmpty(t *testing.T) {
	tu.SetT(t)

	p := parser.NewSimpleParser(channel.Memory(nil).Create())
	d := tu.NoErr(p.NextSession())
	require.True(t, d.HasData())
	require.Empty(t, d.Data)
	require.Equal(t, []any{"0"}, d.MetaDataItem(parser.OrigDocSizeKey))
}

func TestSimpleParserSizeFault(t *testing.T) {
	tu.SetT(t)

	missing := channel.File(t.TempDir() + "/none").Create()
	p := parser.NewSimpleParser(missing)
	_, err := p.NextSession()
	var pe *parser.ParseError
	require.ErrorAs(t, err, &pe)
	require.False(t, p.IsFullyParsed())
}

func TestByteParser(t *testing.T) {
	tu.SetT(t)

	p := parser.NewByteParser(bytes.Repeat([]byte{7}, 25))
	p.Rename = func(k string) string { return "X_" + k }

	var sessions []*parser.DecomposedSession
	for d, err := range parser.All(p) {
		require.NoError(t, err)
		sessions = append(sessions, d)
	}
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Data, 25)
	require.Equal(t, []any{"25"}, sessions[0].MetaDataItem(parser.OrigDocSizeKey))
	require.True(t, p.IsFullyParsed())
}
