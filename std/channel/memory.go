package channel

type memoryFactory struct {
	data []byte
}

// Memory returns a factory over b. The bytes are shared, not copied, by
// every channel the factory creates; the caller must not modify them.
func Memory(b []byte) Factory {
	return memoryFactory{data: b}
}

func (f memoryFactory) Create() Channel {
	return newBase(&memorySource{data: f.data})
}

type memorySource struct {
	data []byte
}

func (s *memorySource) readAt(p []byte, pos int64) (int, error) {
	return copy(p, s.data[pos:]), nil
}

func (s *memorySource) size() (int64, error) {
	return int64(len(s.data)), nil
}

func (s *memorySource) close() error {
	s.data = nil
	return nil
}
