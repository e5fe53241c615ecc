package channel

import (
	"errors"

	"github.com/chanseg/chanseg/std/utils"
)

type concatFactory struct {
	first  Factory
	second Factory
}

// Concat returns a factory whose channels present the bytes of first
// followed by the bytes of second. Nesting Concat yields concatenations of
// any length.
func Concat(first, second Factory) (Factory, error) {
	if first == nil || second == nil {
		return nil, ErrInvalidArgument{Msg: "concat of a nil factory"}
	}
	return concatFactory{first: first, second: second}, nil
}

func (f concatFactory) Create() Channel {
	return newBase(&concatSource{
		first:  f.first.Create(),
		second: f.second.Create(),
		total:  -1,
	})
}

type concatSource struct {
	first  Channel
	second Channel
	total  int64
}

func (s *concatSource) size() (int64, error) {
	if s.total >= 0 {
		return s.total, nil
	}
	firstSize, err := s.first.Size()
	if err != nil {
		return 0, err
	}
	secondSize, err := s.second.Size()
	if err != nil {
		return 0, err
	}
	total, ok := utils.AddExact(firstSize, secondSize)
	if !ok {
		return 0, ErrOverflow
	}
	s.total = total
	return total, nil
}

func (s *concatSource) readAt(p []byte, pos int64) (int, error) {
	firstSize, err := s.first.Size()
	if err != nil {
		return 0, err
	}

	end := pos + int64(len(p))
	switch {
	case end <= firstSize:
		return readFullAt(s.first, pos, p)
	case pos >= firstSize:
		return readFullAt(s.second, pos-firstSize, p)
	}

	// Straddles the boundary
	split := firstSize - pos
	n, err := readFullAt(s.first, pos, p[:split])
	if err != nil || int64(n) < split {
		return n, err
	}
	m, err := readFullAt(s.second, 0, p[split:])
	return n + m, err
}

func (s *concatSource) close() error {
	return errors.Join(s.first.Close(), s.second.Close())
}
