package channel

import (
	"fmt"
	"io"
)

// Windowed is a seekable channel over a forward-only reader. It keeps at
// most windowSize bytes of the reader in memory; when the window is full
// and the cursor moves past it, the older half is discarded. Positions
// before the window can no longer be reached.
//
// Size reports the number of bytes read from the reader so far, which grows
// as the cursor advances.
type Windowed struct {
	in     io.Reader
	buf    []byte
	minPos int64
	pos    int64
	eof    bool
	open   bool
}

// NewWindowed creates a window of windowSize bytes over in and fills it.
func NewWindowed(in io.Reader, windowSize int) (*Windowed, error) {
	if in == nil {
		return nil, ErrInvalidArgument{Msg: "window over a nil reader"}
	}
	if windowSize < 2 {
		return nil, ErrInvalidArgument{Msg: fmt.Sprintf("window size %d < 2", windowSize)}
	}

	w := &Windowed{
		in:   in,
		buf:  make([]byte, 0, windowSize),
		open: true,
	}
	for len(w.buf) < cap(w.buf) && !w.eof {
		if err := w.fill(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// fill reads once from the underlying reader, sliding the window forward
// first if it is full.
func (w *Windowed) fill() error {
	if w.eof {
		return nil
	}
	if len(w.buf) == cap(w.buf) {
		drop := int64(len(w.buf) / 2)
		if behind := w.pos - w.minPos; behind < drop {
			drop = behind
		}
		n := copy(w.buf, w.buf[drop:])
		w.buf = w.buf[:n]
		w.minPos += drop
	}

	n, err := w.in.Read(w.buf[len(w.buf):cap(w.buf)])
	w.buf = w.buf[:len(w.buf)+n]
	if err == io.EOF {
		w.eof = true
		return nil
	}
	return err
}

func (w *Windowed) maxPos() int64 {
	return w.minPos + int64(len(w.buf))
}

func (w *Windowed) Read(p []byte) (int, error) {
	if !w.open {
		return 0, ErrClosed
	}
	for w.pos >= w.maxPos() && !w.eof {
		if err := w.fill(); err != nil {
			return 0, err
		}
	}
	if w.pos >= w.maxPos() {
		return 0, io.EOF
	}

	n := copy(p, w.buf[w.pos-w.minPos:])
	w.pos += int64(n)
	return n, nil
}

func (w *Windowed) Write([]byte) (int, error) {
	return 0, ErrNonWritable
}

func (w *Windowed) Truncate(int64) error {
	return ErrNonWritable
}

func (w *Windowed) Position() (int64, error) {
	if !w.open {
		return 0, ErrClosed
	}
	return w.pos, nil
}

func (w *Windowed) SetPosition(pos int64) error {
	if !w.open {
		return ErrClosed
	}
	if pos < 0 {
		return ErrInvalidArgument{Msg: fmt.Sprintf("negative position %d", pos)}
	}
	if pos < w.minPos {
		return fmt.Errorf("%w: %d < %d", ErrOutsideWindow, pos, w.minPos)
	}
	w.pos = pos
	return nil
}

func (w *Windowed) Seek(offset int64, whence int) (int64, error) {
	return seek(w, offset, whence)
}

func (w *Windowed) Size() (int64, error) {
	if !w.open {
		return 0, ErrClosed
	}
	return w.maxPos(), nil
}

// MinPosition is the earliest position still held in the window.
func (w *Windowed) MinPosition() int64 {
	return w.minPos
}

// MaxPosition is one past the last position held in the window.
func (w *Windowed) MaxPosition() int64 {
	return w.maxPos()
}

func (w *Windowed) IsOpen() bool {
	return w.open
}

func (w *Windowed) Close() error {
	if !w.open {
		return nil
	}
	w.open = false
	w.buf = nil
	if c, ok := w.in.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
