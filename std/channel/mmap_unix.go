//go:build unix

package channel

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Mapped returns a factory of channels over a read-only memory mapping of
// the file at path. Each channel maps the file on first use and unmaps it
// on Close.
func Mapped(path string) Factory {
	path = filepath.Clean(path)
	return Deferred(func() (Channel, error) {
		return mapFile(path)
	})
}

func mapFile(path string) (Channel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return Memory(nil).Create(), nil
	}
	if size != int64(int(size)) {
		return nil, fmt.Errorf("file %s too large to map: %d bytes", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unable to map %s: %w", path, err)
	}
	return newBase(&mappedSource{data: data}), nil
}

type mappedSource struct {
	data []byte
}

func (s *mappedSource) readAt(p []byte, pos int64) (int, error) {
	return copy(p, s.data[pos:]), nil
}

func (s *mappedSource) size() (int64, error) {
	return int64(len(s.data)), nil
}

func (s *mappedSource) close() error {
	data := s.data
	s.data = nil
	return unix.Munmap(data)
}
