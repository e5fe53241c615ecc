// Package storage keeps raw inputs in key/value stores and exposes them as
// channel factories.
package storage

import (
	"fmt"

	"github.com/chanseg/chanseg/std/channel"
)

// Store is a key/value store of blobs.
type Store interface {
	// Get returns the blob stored under key, or nil if there is none.
	Get(key string) ([]byte, error)
	// Put stores a copy of blob under key, replacing any previous one.
	Put(key string, blob []byte) error
	// Remove deletes the blob under key. Missing keys are ignored.
	Remove(key string) error
	// RemovePrefix deletes every blob whose key starts with prefix.
	RemovePrefix(prefix string) error
	// Close releases the store.
	Close() error
}

type ErrNotFound struct {
	Key string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("blob not found: %s", e.Key)
}

// ChannelFactory returns a factory of channels over the blob stored under
// key. Each channel fetches the blob on first use.
func ChannelFactory(store Store, key string) channel.Factory {
	return channel.Deferred(func() (channel.Channel, error) {
		blob, err := store.Get(key)
		if err != nil {
			return nil, fmt.Errorf("unable to fetch %s: %w", key, err)
		}
		if blob == nil {
			return nil, ErrNotFound{Key: key}
		}
		return channel.Memory(blob).Create(), nil
	})
}
