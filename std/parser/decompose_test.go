package parser_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/parser"
	tu "github.com/chanseg/chanseg/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestDecomposeRoundTrip(t *testing.T) {
	tu.SetT(t)
	src := []byte("HDR:hello world:FTR")

	session := parser.NewInputSession()
	require.NoError(t, session.SetOverall(rec(0, int64(len(src)))))
	require.NoError(t, session.AddHeaderRecord(rec(0, 4)))
	require.NoError(t, session.AddDataRecord(rec(4, 11)))
	require.NoError(t, session.AddFooterRecord(rec(15, 4)))

	slicers := map[string]parser.Slicer{
		"bytes":   parser.ByteSlicer(src),
		"channel": parser.ChannelSlicer{Channel: channel.Memory(src).Create()},
	}
	for name, s := range slicers {
		t.Run(name, func(t *testing.T) {
			d := tu.NoErr(parser.Decompose(session, s, nil))
			require.Equal(t, []byte("HDR:"), d.Header)
			require.Equal(t, []byte("hello world"), d.Data)
			require.Equal(t, []byte(":FTR"), d.Footer)

			rebuilt := bytes.Join([][]byte{d.Header, d.Data, d.Footer}, nil)
			require.Equal(t, src, rebuilt)

			size, _ := d.StringMetaDataItem(parser.OrigDocSizeKey, ";")
			require.Equal(t, "11", size)
		})
	}
}

func TestDecomposeMetaData(t *testing.T) {
	tu.SetT(t)
	src := []byte("Subject:  \t Greetings \r\n\x00body")

	session := parser.NewInputSession()
	require.NoError(t, session.SetOverall(rec(0, int64(len(src)))))
	require.NoError(t, session.AddMetaRecord("SUBJECT", rec(8, 17)))
	session.AddMetaString("SOURCE", "  unit test  ")

	rename := func(key string) string { return "MSG_" + key }
	d := tu.NoErr(parser.Decompose(session, parser.ByteSlicer(src), rename))

	require.Equal(t, []string{"MSG_SOURCE", "MSG_SUBJECT", parser.OrigDocSizeKey}, d.Keys())
	require.Equal(t, []any{"Greetings"}, d.MetaDataItem("MSG_SUBJECT"))
	require.Equal(t, []any{"  unit test  "}, d.MetaDataItem("MSG_SOURCE"))

	// without data the overall length is the document size
	require.False(t, d.HasData())
	require.False(t, d.IsValid())
	require.Equal(t, []any{"29"}, d.MetaDataItem(parser.OrigDocSizeKey))
}

func TestDecomposeNil(t *testing.T) {
	tu.SetT(t)
	d := tu.NoErr(parser.Decompose(nil, parser.ByteSlicer(nil), nil))
	require.False(t, d.HasMetaData())
}

func TestSliceRecords(t *testing.T) {
	tu.SetT(t)
	src := []byte("abcdefghij")

	for name, s := range map[string]parser.Slicer{
		"bytes":   parser.ByteSlicer(src),
		"channel": parser.ChannelSlicer{Channel: channel.Memory(src).Create()},
	} {
		t.Run(name, func(t *testing.T) {
			require.Nil(t, tu.NoErr(parser.SliceRecords(s, nil)))

			// zero length and out of bounds records are dropped
			got := tu.NoErr(parser.SliceRecords(s, []parser.PositionRecord{
				rec(0, 2), rec(5, 0), rec(8, 5), rec(4, 3),
			}))
			require.Equal(t, []byte("abefg"), got)

			// a single record past the end is a best-effort partial slice
			require.Equal(t, []byte("ij"), tu.NoErr(parser.SliceRecords(s, []parser.PositionRecord{rec(8, 5)})))
		})
	}
}

func TestSliceTooLarge(t *testing.T) {
	tu.SetT(t)

	var pe *parser.ParseError
	s := parser.ByteSlicer("tiny")
	require.ErrorAs(t, tu.Err(s.Slice(rec(0, 1<<40))), &pe)
	require.ErrorAs(t, tu.Err(parser.SliceRecords(s, []parser.PositionRecord{rec(0, 1<<30), rec(0, 1<<30)})), &pe)
	require.ErrorAs(t, tu.Err(s.Slice(rec(0, -1))), &pe)
	require.True(t, strings.Contains(pe.Error(), "negative"))
}
