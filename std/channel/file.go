package channel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type fileFactory struct {
	path string
}

// File returns a factory of read-only channels over the file at path. The
// file is opened on first use by each channel.
func File(path string) Factory {
	return fileFactory{path: filepath.Clean(path)}
}

func (f fileFactory) Create() Channel {
	return Immutable(Deferred(func() (Channel, error) {
		return openFile(f.path)
	})).Create()
}

func (f fileFactory) String() string {
	return f.path
}

// osFile exposes an *os.File as a Channel. Write and Truncate are forwarded
// to the OS, so it must only be handed out behind Immutable.
type osFile struct {
	f      *os.File
	closed bool
}

func openFile(path string) (*osFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &osFile{f: f}, nil
}

func (c *osFile) Read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.f.Read(p)
}

func (c *osFile) Write(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.f.Write(p)
}

func (c *osFile) Truncate(size int64) error {
	if c.closed {
		return ErrClosed
	}
	return c.f.Truncate(size)
}

func (c *osFile) Position() (int64, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.f.Seek(0, io.SeekCurrent)
}

func (c *osFile) SetPosition(pos int64) error {
	if c.closed {
		return ErrClosed
	}
	if pos < 0 {
		return ErrInvalidArgument{Msg: fmt.Sprintf("negative position %d", pos)}
	}
	_, err := c.f.Seek(pos, io.SeekStart)
	return err
}

func (c *osFile) Seek(offset int64, whence int) (int64, error) {
	return seek(c, offset, whence)
}

func (c *osFile) Size() (int64, error) {
	if c.closed {
		return 0, ErrClosed
	}
	info, err := c.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (c *osFile) IsOpen() bool {
	return !c.closed
}

func (c *osFile) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.f.Close()
}
