package storage

import (
	"slices"
	"strings"
	"sync"
)

type MemoryStore struct {
	blobs map[string][]byte
	// thread safety
	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.blobs[key], nil
}

func (s *MemoryStore) Put(key string, blob []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// an empty blob is still present
	if blob == nil {
		blob = []byte{}
	}
	s.blobs[key] = slices.Clone(blob)
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.blobs, key)
	return nil
}

func (s *MemoryStore) RemovePrefix(prefix string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.blobs {
		if strings.HasPrefix(key, prefix) {
			delete(s.blobs, key)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
