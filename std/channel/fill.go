package channel

import "fmt"

type fillFactory struct {
	size  int64
	value byte
}

// Fill returns a factory of synthetic channels holding size copies of value.
// No backing storage is allocated.
func Fill(size int64, value byte) (Factory, error) {
	if size < 0 {
		return nil, ErrInvalidArgument{Msg: fmt.Sprintf("fill size %d < 0", size)}
	}
	return fillFactory{size: size, value: value}, nil
}

func (f fillFactory) Create() Channel {
	return newBase(&fillSource{length: f.size, value: f.value})
}

type fillSource struct {
	length int64
	value  byte
}

func (s *fillSource) readAt(p []byte, _ int64) (int, error) {
	// Doubling copy fills the destination in log(n) bulk moves
	p[0] = s.value
	for filled := 1; filled < len(p); filled *= 2 {
		copy(p[filled:], p[:filled])
	}
	return len(p), nil
}

func (s *fillSource) size() (int64, error) {
	return s.length, nil
}

func (s *fillSource) close() error {
	return nil
}
