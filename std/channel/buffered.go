package channel

import (
	"fmt"
	"io"
)

type bufferedFactory struct {
	inner      Factory
	bufferSize int
}

// Buffered returns a factory whose channels cache one aligned block of f.
// The block is min(size of f, maxBufferSize) bytes.
func Buffered(f Factory, maxBufferSize int) (Factory, error) {
	if f == nil {
		return nil, ErrInvalidArgument{Msg: "buffering a nil factory"}
	}
	if maxBufferSize <= 0 {
		return nil, ErrInvalidArgument{Msg: fmt.Sprintf("buffer size %d <= 0", maxBufferSize)}
	}

	bufferSize := maxBufferSize
	c := f.Create()
	defer c.Close()
	size, err := c.Size()
	if err != nil {
		return nil, fmt.Errorf("unable to determine size of buffered channel: %w", err)
	}
	if size > 0 && size < int64(bufferSize) {
		bufferSize = int(size)
	}

	return bufferedFactory{inner: f, bufferSize: bufferSize}, nil
}

func (f bufferedFactory) Create() Channel {
	return newBase(&bufferedSource{
		inner:      f.inner.Create(),
		buf:        make([]byte, f.bufferSize),
		blockStart: -1,
	})
}

type bufferedSource struct {
	inner      Channel
	buf        []byte
	blockStart int64
	valid      int
}

func (s *bufferedSource) readAt(p []byte, pos int64) (int, error) {
	blockSize := int64(len(s.buf))
	blockStart := pos / blockSize * blockSize

	if blockStart != s.blockStart {
		n, err := readFullAt(s.inner, blockStart, s.buf)
		if err != nil {
			s.blockStart = -1
			return 0, err
		}
		s.blockStart, s.valid = blockStart, n
	}

	offset := int(pos - blockStart)
	if offset >= s.valid {
		return 0, io.ErrUnexpectedEOF
	}
	return copy(p, s.buf[offset:s.valid]), nil
}

func (s *bufferedSource) size() (int64, error) {
	return s.inner.Size()
}

func (s *bufferedSource) close() error {
	s.buf = nil
	return s.inner.Close()
}
