package parser_test

import (
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/parser"
	tu "github.com/chanseg/chanseg/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, p parser.SessionParser) (data []string, offsets []string) {
	for d, err := range parser.All(p) {
		require.NoError(t, err)
		data = append(data, string(d.Data))
		offset, _ := d.StringMetaDataItem(parser.SessionOffsetKey, ";")
		offsets = append(offsets, offset)
	}
	return
}

func TestDelimitedParser(t *testing.T) {
	tu.SetT(t)

	c := channel.Memory([]byte("one\n\ntwo\nthree")).Create()
	p := tu.NoErr(parser.NewDelimitedParser(c, []byte("\n"), smallWindow))

	data, offsets := collect(t, p)
	require.Equal(t, []string{"one", "two", "three"}, data)
	require.Equal(t, []string{"0", "5", "9"}, offsets)
	require.True(t, p.IsFullyParsed())

	_, err := p.NextSession()
	require.ErrorIs(t, err, parser.ErrEndOfInput)
}

func TestDelimitedParserManySessions(t *testing.T) {
	tu.SetT(t)

	var sb strings.Builder
	var want []string
	for i := range 100 {
		rec := fmt.Sprintf("rec-%d", i)
		want = append(want, rec)
		sb.WriteString(rec)
		sb.WriteString("%%")
	}

	opts := parser.WindowOptions{MinChunkSize: 5, MaxChunkSize: 16, ChunkIncrement: 3}
	p := tu.NoErr(parser.NewDelimitedParser(channel.Memory([]byte(sb.String())).Create(), []byte("%%"), opts))
	data, _ := collect(t, p)
	require.Equal(t, want, data)
}

func TestDelimitedParserWindowedSource(t *testing.T) {
	tu.SetT(t)

	input := strings.Repeat("abc;", 50)
	w := tu.NoErr(channel.NewWindowed(iotest.HalfReader(strings.NewReader(input)), 32))
	p := tu.NoErr(parser.NewDelimitedParser(w, []byte(";"), smallWindow))

	data, offsets := collect(t, p)
	require.Len(t, data, 50)
	require.Equal(t, "abc", data[49])
	require.Equal(t, "196", offsets[49])
	require.Equal(t, "session-196", p.SessionName(sessionAt("196")))
	require.Equal(t, "", p.SessionName(&parser.DecomposedSession{}))
}

func sessionAt(offset string) *parser.DecomposedSession {
	d := &parser.DecomposedSession{}
	d.AddMetaData(parser.SessionOffsetKey, offset)
	return d
}

func TestDelimitedParserMaxChunk(t *testing.T) {
	tu.SetT(t)

	// exactly the maximum chunk size
	p := tu.NoErr(parser.NewDelimitedParser(channel.Memory([]byte("12345678")).Create(), []byte("|"), smallWindow))
	data, _ := collect(t, p)
	require.Equal(t, []string{"12345678"}, data)

	// one byte more
	p = tu.NoErr(parser.NewDelimitedParser(channel.Memory([]byte("123456789")).Create(), []byte("|"), smallWindow))
	_, err := p.NextSession()
	require.ErrorIs(t, err, parser.ErrCapacityExceeded)
	require.False(t, p.IsFullyParsed())

	// the failure is sticky
	_, err = p.NextSession()
	require.ErrorIs(t, err, parser.ErrCapacityExceeded)
	require.NoError(t, p.Close())
}

func TestDelimitedParserArguments(t *testing.T) {
	tu.SetT(t)

	tu.Err(parser.NewDelimitedParser(channel.Memory(nil).Create(), nil, smallWindow))

	// empty input has no sessions
	p := tu.NoErr(parser.NewDelimitedParser(channel.Memory([]byte("\n\n")).Create(), []byte("\n"), smallWindow))
	data, _ := collect(t, p)
	require.Empty(t, data)
}
