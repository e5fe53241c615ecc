package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
)

const (
	DefaultMinChunkSize   = 2 * 1024 * 1024
	DefaultMaxChunkSize   = 40 * 1024 * 1024
	DefaultChunkIncrement = 10*1024*1024 + 100
)

type WindowOptions struct {
	// MinChunkSize is the size of the first buffer.
	MinChunkSize int
	// MaxChunkSize bounds the buffer, and thereby the size of one session.
	MaxChunkSize int
	// ChunkIncrement is how much the buffer grows when it is full.
	ChunkIncrement int
}

func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		MinChunkSize:   DefaultMinChunkSize,
		MaxChunkSize:   DefaultMaxChunkSize,
		ChunkIncrement: DefaultChunkIncrement,
	}
}

// Window holds the region of a channel a parser is currently working on.
// The buffer starts at absolute offset ChunkStart of the channel; its first
// writeOffset bytes are populated.
//
// The window owns the channel and closes it once it has been read to the
// end.
type Window struct {
	channel     channel.Channel
	chunkStart  int64
	data        []byte
	writeOffset int
	opts        WindowOptions
}

// NewWindow creates a window over c. Non-positive options take their
// defaults, and the minimum is capped at the maximum.
func NewWindow(c channel.Channel, opts WindowOptions) *Window {
	def := DefaultWindowOptions()
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = def.MaxChunkSize
	}
	if opts.MinChunkSize <= 0 {
		opts.MinChunkSize = def.MinChunkSize
	}
	if opts.ChunkIncrement <= 0 {
		opts.ChunkIncrement = def.ChunkIncrement
	}
	opts.MinChunkSize = min(opts.MinChunkSize, opts.MaxChunkSize)

	return &Window{channel: c, opts: opts}
}

func (w *Window) String() string {
	return fmt.Sprintf("window@%d", w.chunkStart)
}

// LoadNextRegion reads more of the channel into the buffer and returns the
// populated bytes.
//
// A full buffer grows by the increment, up to the maximum chunk size. If
// it is already at the maximum and the channel has more data, a
// *ParseError wrapping ErrCapacityExceeded is returned. Once the channel is
// exhausted and closed, ErrEndOfInput is returned.
func (w *Window) LoadNextRegion() ([]byte, error) {
	log.Debug(w, "Loading next region", "dataLength", len(w.data), "maxChunkSize", w.opts.MaxChunkSize,
		"chunkStart", w.chunkStart, "writeOffset", w.writeOffset)

	if !w.channel.IsOpen() {
		return nil, ErrEndOfInput
	}

	if w.data == nil {
		w.data = make([]byte, w.opts.MinChunkSize)
	}

	if w.writeOffset >= len(w.data) {
		more, err := w.hasMore()
		if err != nil {
			return nil, err
		}
		if !more {
			w.closeChannel()
			return w.Data(), nil
		}

		if len(w.data) >= w.opts.MaxChunkSize {
			return nil, &ParseError{
				Msg: fmt.Sprintf("buffer size required to read session at %d is larger than max chunk size %d",
					w.chunkStart, w.opts.MaxChunkSize),
				Err: ErrCapacityExceeded,
			}
		}

		grown := make([]byte, min(len(w.data)+w.opts.ChunkIncrement, w.opts.MaxChunkSize))
		copy(grown, w.data[:w.writeOffset])
		w.data = grown
	}

	if err := w.channel.SetPosition(w.chunkStart + int64(w.writeOffset)); err != nil {
		return nil, &ParseError{Msg: "exception reading from channel", Err: err}
	}
	for w.writeOffset < len(w.data) {
		n, err := w.channel.Read(w.data[w.writeOffset:])
		w.writeOffset += n
		if errors.Is(err, io.EOF) {
			log.Debug(w, "End of channel reached", "read", w.writeOffset, "expected", len(w.data))
			w.closeChannel()
			w.data = w.data[:w.writeOffset]
			break
		} else if err != nil {
			return nil, &ParseError{Msg: "exception reading from channel", Err: err}
		}
	}

	return w.Data(), nil
}

// hasMore probes for a byte past the populated region.
func (w *Window) hasMore() (bool, error) {
	if err := w.channel.SetPosition(w.chunkStart + int64(w.writeOffset)); err != nil {
		return false, &ParseError{Msg: "exception reading from channel", Err: err}
	}
	var probe [1]byte
	for {
		n, err := w.channel.Read(probe[:])
		if n > 0 {
			return true, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		} else if err != nil {
			return false, &ParseError{Msg: "exception reading from channel", Err: err}
		}
	}
}

func (w *Window) closeChannel() {
	if err := w.channel.Close(); err != nil {
		log.Warn(w, "Unable to close consumed channel", "err", err)
	}
}

// Data returns the populated part of the buffer.
func (w *Window) Data() []byte {
	if w.data == nil {
		return nil
	}
	return w.data[:w.writeOffset]
}

// ChunkStart is the channel offset of the first byte of Data.
func (w *Window) ChunkStart() int64 {
	return w.chunkStart
}

// Advance drops the first n bytes of Data, which start the next region.
func (w *Window) Advance(n int) {
	n = min(max(n, 0), w.writeOffset)
	copy(w.data, w.data[n:w.writeOffset])
	w.writeOffset -= n
	w.chunkStart += int64(n)
}

// Exhausted reports whether the channel has been read to the end.
func (w *Window) Exhausted() bool {
	return !w.channel.IsOpen()
}

// Close releases the channel.
func (w *Window) Close() error {
	w.data = nil
	w.writeOffset = 0
	return w.channel.Close()
}
