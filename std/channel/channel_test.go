package channel_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
	tu "github.com/chanseg/chanseg/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

// testContract checks the behaviour every channel variant shares.
func testContract(t *testing.T, f channel.Factory, want []byte) {
	tu.SetT(t)

	c := f.Create()
	require.True(t, c.IsOpen())
	require.Equal(t, int64(len(want)), tu.NoErr(c.Size()))
	require.Equal(t, int64(0), tu.NoErr(c.Position()))

	// sequential read
	require.Equal(t, want, tu.NoErr(io.ReadAll(c)))
	require.Equal(t, int64(len(want)), tu.NoErr(c.Position()))
	n, err := c.Read(make([]byte, 4))
	require.Equal(t, 0, n)
	require.Equal(t, io.EOF, err)

	// random access, every start and a few lengths
	for start := range want {
		for _, length := range []int{1, 2, 5, len(want)} {
			require.NoError(t, c.SetPosition(int64(start)))
			buf := make([]byte, length)
			n, err := channel.ReadFull(c, buf)
			require.NoError(t, err)
			end := min(start+length, len(want))
			require.Equal(t, want[start:end], buf[:n])
			require.Equal(t, int64(end), tu.NoErr(c.Position()))
		}
	}

	// empty destination before the end
	if len(want) > 0 {
		require.NoError(t, c.SetPosition(0))
		require.Equal(t, 0, tu.NoErr(c.Read(nil)))
	}

	// seeking beyond the end is allowed, reading there is not
	require.NoError(t, c.SetPosition(int64(len(want))+10))
	_, err = c.Read(make([]byte, 1))
	require.Equal(t, io.EOF, err)

	require.Equal(t, int64(len(want)), tu.NoErr(c.Seek(0, io.SeekEnd)))
	require.Equal(t, int64(0), tu.NoErr(c.Seek(-int64(len(want)), io.SeekCurrent)))

	var invalid channel.ErrInvalidArgument
	require.ErrorAs(t, c.SetPosition(-1), &invalid)

	// never writable
	_, err = c.Write([]byte{1})
	require.ErrorIs(t, err, channel.ErrNonWritable)
	require.ErrorIs(t, c.Truncate(0), channel.ErrNonWritable)

	// channels are independent cursors
	other := f.Create()
	require.NoError(t, c.SetPosition(int64(len(want)/2)))
	require.Equal(t, want, tu.NoErr(io.ReadAll(other)))
	require.Equal(t, int64(len(want)/2), tu.NoErr(c.Position()))
	require.NoError(t, other.Close())

	// close is idempotent and final
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.False(t, c.IsOpen())
	_, err = c.Read(make([]byte, 1))
	require.ErrorIs(t, err, channel.ErrClosed)
	_, err = c.Position()
	require.ErrorIs(t, err, channel.ErrClosed)
	_, err = c.Size()
	require.ErrorIs(t, err, channel.ErrClosed)
	require.ErrorIs(t, c.SetPosition(0), channel.ErrClosed)
}

func TestContract(t *testing.T) {
	tu.SetT(t)
	data := []byte("the quick brown fox jumps over the lazy dog")
	path := tu.TempFile(t, "fox.txt", data)

	fill := tu.NoErr(channel.Fill(17, 'z'))
	stream := tu.NoErr(channel.Stream(channel.SizeUnknown, channel.OpenerFunc(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})))
	half := int64(len(data) / 2)
	concat := tu.NoErr(channel.Concat(channel.Memory(data[:half]), channel.Memory(data[half:])))
	segment := tu.NoErr(channel.Segment(channel.Memory([]byte("__"+string(data)+"__")), 2, int64(len(data))))
	buffered := tu.NoErr(channel.Buffered(channel.File(path), 4))
	logging := tu.NoErr(channel.Logging(channel.Memory(data), "fox", log.Discard(), false))

	tests := map[string]struct {
		f    channel.Factory
		want []byte
	}{
		"memory":    {channel.Memory(data), data},
		"empty":     {channel.Memory(nil), []byte{}},
		"file":      {channel.File(path), data},
		"mapped":    {channel.Mapped(path), data},
		"fill":      {fill, bytes.Repeat([]byte{'z'}, 17)},
		"stream":    {stream, data},
		"immutable": {channel.Immutable(channel.Memory(data)), data},
		"concat":    {concat, data},
		"segment":   {segment, data},
		"buffered":  {buffered, data},
		"logging":   {logging, data},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testContract(t, tt.f, tt.want)
		})
	}
}

func TestFillThenMemory(t *testing.T) {
	tu.SetT(t)

	fill := tu.NoErr(channel.Fill(5, 'A'))
	f := tu.NoErr(channel.Concat(fill, channel.Memory([]byte("BC"))))

	c := f.Create()
	defer c.Close()
	require.Equal(t, int64(7), tu.NoErr(c.Size()))
	require.Equal(t, []byte("AAAAABC"), tu.NoErr(io.ReadAll(c)))
}

func TestFillValues(t *testing.T) {
	tu.SetT(t)

	for _, size := range []int64{0, 1, 2, 3, 1000, 4097} {
		f := tu.NoErr(channel.Fill(size, 0xa5))
		got := tu.NoErr(io.ReadAll(f.Create()))
		require.Len(t, got, int(size))
		for _, b := range got {
			require.Equal(t, byte(0xa5), b)
		}
	}

	var invalid channel.ErrInvalidArgument
	require.ErrorAs(t, tu.Err(channel.Fill(-1, 0)), &invalid)
}

func TestMemoryZeroCopy(t *testing.T) {
	tu.SetT(t)

	data := []byte("abc")
	c := channel.Memory(data).Create()
	data[0] = 'x'
	require.Equal(t, []byte("xbc"), tu.NoErr(io.ReadAll(c)))
}

func TestFileSegment(t *testing.T) {
	tu.SetT(t)

	path := tu.TempFile(t, "letters", []byte("abcdef"))
	f := tu.NoErr(channel.Segment(channel.File(path), 2, 3))

	c := f.Create()
	defer c.Close()
	require.Equal(t, int64(3), tu.NoErr(c.Size()))
	require.Equal(t, []byte("cde"), tu.NoErr(io.ReadAll(c)))
}

func TestFileMissing(t *testing.T) {
	tu.SetT(t)

	path := filepath.Join(t.TempDir(), "missing")
	f := channel.File(path)
	require.Equal(t, path, fmt.Sprint(f))

	c := f.Create()
	require.True(t, c.IsOpen())

	// the failure surfaces on first use
	_, err := c.Size()
	require.Error(t, err)
	require.NoError(t, c.Close())
}

func TestDeferredOpensOnce(t *testing.T) {
	tu.SetT(t)

	opens := 0
	f := channel.Deferred(func() (channel.Channel, error) {
		opens++
		if opens == 1 {
			return nil, errors.New("transient")
		}
		return channel.Memory([]byte("late")).Create(), nil
	})

	c := f.Create()
	require.Equal(t, 0, opens)
	tu.Err(c.Size())
	require.Equal(t, int64(4), tu.NoErr(c.Size()))
	require.Equal(t, []byte("late"), tu.NoErr(io.ReadAll(c)))
	require.Equal(t, 2, opens)

	// closing an unopened channel does not open it
	c = f.Create()
	require.NoError(t, c.Close())
	require.Equal(t, 2, opens)
	_, err := c.Size()
	require.ErrorIs(t, err, channel.ErrClosed)
}
