package channel_test

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/chanseg/chanseg/std/channel"
	tu "github.com/chanseg/chanseg/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestWindowedSequential(t *testing.T) {
	tu.SetT(t)

	data := bytes.Repeat([]byte("0123456789"), 10)
	w := tu.NoErr(channel.NewWindowed(iotest.OneByteReader(bytes.NewReader(data)), 16))
	defer w.Close()

	require.Equal(t, int64(0), w.MinPosition())
	require.Equal(t, int64(16), w.MaxPosition())
	require.Equal(t, int64(16), tu.NoErr(w.Size()))

	require.Equal(t, data, tu.NoErr(io.ReadAll(w)))
	require.Equal(t, int64(100), tu.NoErr(w.Size()))
	require.LessOrEqual(t, w.MaxPosition()-w.MinPosition(), int64(16))
}

func TestWindowedSeek(t *testing.T) {
	tu.SetT(t)

	data := []byte("abcdefghijklmnopqrstuvwxyz")
	w := tu.NoErr(channel.NewWindowed(bytes.NewReader(data), 8))
	defer w.Close()

	// inside the window, backwards too
	buf := make([]byte, 3)
	require.NoError(t, w.SetPosition(5))
	require.Equal(t, 3, tu.NoErr(channel.ReadFull(w, buf)))
	require.Equal(t, []byte("fgh"), buf)
	require.NoError(t, w.SetPosition(1))
	require.Equal(t, 3, tu.NoErr(channel.ReadFull(w, buf)))
	require.Equal(t, []byte("bcd"), buf)

	// jumping ahead slides the window
	require.NoError(t, w.SetPosition(20))
	require.Equal(t, 3, tu.NoErr(channel.ReadFull(w, buf)))
	require.Equal(t, []byte("uvw"), buf)
	require.Greater(t, w.MinPosition(), int64(0))

	// the start is gone
	require.ErrorIs(t, w.SetPosition(0), channel.ErrOutsideWindow)
	require.NoError(t, w.SetPosition(w.MinPosition()))
	require.Equal(t, 1, tu.NoErr(w.Read(buf[:1])))
	require.Equal(t, data[w.MinPosition()], buf[0])

	// past the end
	require.NoError(t, w.SetPosition(100))
	_, err := w.Read(buf)
	require.Equal(t, io.EOF, err)
	require.Equal(t, int64(26), tu.NoErr(w.Size()))
}

func TestWindowedContract(t *testing.T) {
	tu.SetT(t)

	w := tu.NoErr(channel.NewWindowed(bytes.NewReader([]byte("xyz")), 4))
	_, err := w.Write([]byte{1})
	require.ErrorIs(t, err, channel.ErrNonWritable)
	require.ErrorIs(t, w.Truncate(1), channel.ErrNonWritable)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	require.False(t, w.IsOpen())
	_, err = w.Read(make([]byte, 1))
	require.ErrorIs(t, err, channel.ErrClosed)

	var invalid channel.ErrInvalidArgument
	require.ErrorAs(t, tu.Err(channel.NewWindowed(bytes.NewReader(nil), 1)), &invalid)
	require.ErrorAs(t, tu.Err(channel.NewWindowed(nil, 10)), &invalid)
}

func TestWindowedReadError(t *testing.T) {
	tu.SetT(t)

	r := io.MultiReader(bytes.NewReader([]byte("ab")), iotest.ErrReader(iotest.ErrTimeout))
	w := tu.NoErr(channel.NewWindowed(r, 2))
	require.Equal(t, []byte("ab"), tu.NoErr(io.ReadAll(io.LimitReader(w, 2))))
	_, err := w.Read(make([]byte, 1))
	require.ErrorIs(t, err, iotest.ErrTimeout)
}
