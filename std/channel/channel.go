// Package channel provides immutable, randomly addressable views over byte
// sources, and combinators that compose them into larger virtual views.
//
// A Factory is a reusable blueprint: every call to Create yields a new,
// independent Channel (cursor) over the same logical bytes. Factories hold no
// per-cursor state and may be shared between goroutines; a Channel may not.
//
// Channels never mutate their source. Write and Truncate always fail with
// ErrNonWritable.
package channel

import "io"

// Channel is a single read cursor over a byte source.
//
// Read returns io.EOF when the position is at or beyond Size. Otherwise it
// transfers at least one byte, unless p is empty. The position may be set
// beyond Size. Once closed, every operation except Close and IsOpen fails
// with ErrClosed; Close itself is idempotent.
type Channel interface {
	io.ReadSeekCloser
	io.Writer

	// Position returns the current read position.
	Position() (int64, error)
	// SetPosition moves the cursor. Negative positions are rejected.
	SetPosition(pos int64) error
	// Size returns the number of bytes available from the source.
	Size() (int64, error)
	// Truncate is always rejected.
	Truncate(size int64) error
	// IsOpen reports whether Close has not been called yet.
	IsOpen() bool
}

// Factory manufactures independent channels over the same logical data.
type Factory interface {
	Create() Channel
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func() Channel

func (f FactoryFunc) Create() Channel {
	return f()
}
