package channel

import (
	"fmt"
	"io"
	"sync"
)

// SizeUnknown asks Stream to measure the size by draining one stream.
const SizeUnknown = -1

// Opener yields a fresh stream over the same bytes on every call.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func() (io.ReadCloser, error)

func (f OpenerFunc) Open() (io.ReadCloser, error) {
	return f()
}

type streamFactory struct {
	opener Opener

	once sync.Once
	size int64
	err  error
}

// Stream returns a factory of channels over the streams produced by opener.
// Reading backwards re-opens the stream and skips forward. If size is
// SizeUnknown it is measured once, on first request, by draining a stream.
func Stream(size int64, opener Opener) (Factory, error) {
	if opener == nil {
		return nil, ErrInvalidArgument{Msg: "stream without opener"}
	}
	if size < SizeUnknown {
		return nil, ErrInvalidArgument{Msg: fmt.Sprintf("stream size %d < 0", size)}
	}
	return &streamFactory{opener: opener, size: size}, nil
}

func (f *streamFactory) Create() Channel {
	return newBase(&streamSource{factory: f})
}

func (f *streamFactory) streamSize() (int64, error) {
	f.once.Do(func() {
		if f.size != SizeUnknown {
			return
		}
		rc, err := f.opener.Open()
		if err != nil {
			f.err = fmt.Errorf("unable to open stream to determine size: %w", err)
			return
		}
		defer rc.Close()
		f.size = Available(rc)
	})
	return f.size, f.err
}

type streamSource struct {
	factory  *streamFactory
	rc       io.ReadCloser
	consumed int64
}

func (s *streamSource) readAt(p []byte, pos int64) (int, error) {
	if s.rc != nil && pos < s.consumed {
		s.rc.Close()
		s.rc = nil
	}
	if s.rc == nil {
		rc, err := s.factory.opener.Open()
		if err != nil {
			return 0, err
		}
		s.rc, s.consumed = rc, 0
	}

	if skip := pos - s.consumed; skip > 0 {
		n, err := io.CopyN(io.Discard, s.rc, skip)
		s.consumed += n
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		} else if err != nil {
			return 0, err
		}
	}

	n, err := io.ReadAtLeast(s.rc, p, 1)
	s.consumed += int64(n)
	return n, err
}

func (s *streamSource) size() (int64, error) {
	return s.factory.streamSize()
}

func (s *streamSource) close() error {
	if s.rc == nil {
		return nil
	}
	rc := s.rc
	s.rc = nil
	return rc.Close()
}
