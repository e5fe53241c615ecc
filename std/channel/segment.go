package channel

import (
	"fmt"

	"github.com/chanseg/chanseg/std/utils"
)

type segmentFactory struct {
	parent Factory
	start  int64
	length int64
}

// Segment returns a factory of channels exposing length bytes of f starting
// at start. The bounds are checked against the size of f immediately.
func Segment(f Factory, start, length int64) (Factory, error) {
	if f == nil {
		return nil, ErrInvalidArgument{Msg: "segment of a nil factory"}
	}
	if start < 0 {
		return nil, ErrInvalidArgument{Msg: fmt.Sprintf("segment start %d < 0", start)}
	}
	if length < 0 {
		return nil, ErrInvalidArgument{Msg: fmt.Sprintf("segment length %d < 0", length)}
	}
	end, ok := utils.AddExact(start, length)
	if !ok {
		return nil, ErrInvalidArgument{Msg: "segment start + length overflows int64"}
	}

	c := f.Create()
	defer c.Close()
	size, err := c.Size()
	if err != nil {
		return nil, fmt.Errorf("unable to determine size of segmented channel: %w", err)
	}
	if end > size {
		return nil, ErrInvalidArgument{Msg: fmt.Sprintf("segment end %d > size %d", end, size)}
	}

	return segmentFactory{parent: f, start: start, length: length}, nil
}

func (f segmentFactory) Create() Channel {
	return newBase(&segmentSource{
		parent: f.parent.Create(),
		start:  f.start,
		length: f.length,
	})
}

type segmentSource struct {
	parent Channel
	start  int64
	length int64
}

func (s *segmentSource) readAt(p []byte, pos int64) (int, error) {
	if err := s.parent.SetPosition(s.start + pos); err != nil {
		return 0, err
	}
	return s.parent.Read(p)
}

func (s *segmentSource) size() (int64, error) {
	return s.length, nil
}

func (s *segmentSource) close() error {
	return s.parent.Close()
}
