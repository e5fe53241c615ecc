package channel

import (
	"fmt"
	"io"
)

// source is the variant specific half of a channel built on base.
type source interface {
	// readAt fills p from absolute position pos. base guarantees that p is
	// not empty and does not extend beyond size().
	readAt(p []byte, pos int64) (int, error)
	size() (int64, error)
	close() error
}

// base keeps the open flag and the cursor, short-circuits end of channel and
// right-sizes the destination before delegating to the source.
type base struct {
	src  source
	open bool
	pos  int64
}

func newBase(src source) *base {
	return &base{src: src, open: true}
}

func (c *base) IsOpen() bool {
	return c.open
}

func (c *base) Close() error {
	if !c.open {
		return nil
	}
	c.open = false
	return c.src.close()
}

func (c *base) Position() (int64, error) {
	if !c.open {
		return 0, ErrClosed
	}
	return c.pos, nil
}

func (c *base) SetPosition(pos int64) error {
	if !c.open {
		return ErrClosed
	}
	if pos < 0 {
		return ErrInvalidArgument{Msg: fmt.Sprintf("negative position %d", pos)}
	}
	c.pos = pos
	return nil
}

func (c *base) Seek(offset int64, whence int) (int64, error) {
	return seek(c, offset, whence)
}

func (c *base) Size() (int64, error) {
	if !c.open {
		return 0, ErrClosed
	}
	return c.src.size()
}

func (c *base) Read(p []byte) (int, error) {
	if !c.open {
		return 0, ErrClosed
	}

	size, err := c.src.size()
	if err != nil {
		return 0, err
	}
	remaining := size - c.pos
	if remaining <= 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := c.src.readAt(p, c.pos)
	c.pos += int64(n)

	// The size promised more bytes than the source delivered
	switch {
	case err == io.EOF && n > 0:
		err = nil
	case err == io.EOF:
		err = io.ErrUnexpectedEOF
	case n == 0 && err == nil:
		err = io.ErrNoProgress
	}
	return n, err
}

func (c *base) Write([]byte) (int, error) {
	return 0, ErrNonWritable
}

func (c *base) Truncate(int64) error {
	return ErrNonWritable
}

// seek implements io.Seeker on top of Position, Size and SetPosition.
func seek(c Channel, offset int64, whence int) (int64, error) {
	var origin int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		pos, err := c.Position()
		if err != nil {
			return 0, err
		}
		origin = pos
	case io.SeekEnd:
		size, err := c.Size()
		if err != nil {
			return 0, err
		}
		origin = size
	default:
		return 0, ErrInvalidArgument{Msg: fmt.Sprintf("invalid whence %d", whence)}
	}

	abs := origin + offset
	if offset > 0 && abs < origin {
		return 0, ErrInvalidArgument{Msg: "seek position overflows int64"}
	}
	if err := c.SetPosition(abs); err != nil {
		return 0, err
	}
	return abs, nil
}
