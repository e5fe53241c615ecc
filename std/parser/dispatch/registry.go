// Package dispatch picks and builds a session parser for a channel based on
// its content.
package dispatch

import (
	"fmt"
	"sync"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/parser"
	"github.com/chanseg/chanseg/std/parser/config"
)

// Constructor builds a parser that reads sessions from c and owns it.
type Constructor func(c channel.Channel) (parser.SessionParser, error)

// ByteConstructor builds a parser over a whole input held in memory.
type ByteConstructor func(data []byte) (parser.SessionParser, error)

// Registry maps parser names to constructors.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]Constructor
	buffers  map[string]ByteConstructor
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]Constructor),
		buffers:  make(map[string]ByteConstructor),
	}
}

// NewDefaultRegistry registers the built-in parsers: "simple" for channels
// and buffers, and "delimited" for channels, splitting on the configured
// delimiter within the configured window.
func NewDefaultRegistry(cfg *config.Config) *Registry {
	r := NewRegistry()
	r.Register("simple", func(c channel.Channel) (parser.SessionParser, error) {
		return parser.NewSimpleParser(c), nil
	})
	r.Register("delimited", func(c channel.Channel) (parser.SessionParser, error) {
		return parser.NewDelimitedParser(c, cfg.SessionDelimiter(), cfg.Window())
	})
	r.RegisterBytes("simple", func(data []byte) (parser.SessionParser, error) {
		return parser.NewByteParser(data), nil
	})
	return r
}

// Register adds a channel parser. Names may only be registered once.
func (r *Registry) Register(name string, c Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.channels[name]; ok {
		return fmt.Errorf("parser %q already registered", name)
	}
	r.channels[name] = c
	return nil
}

// RegisterBytes adds a whole-buffer parser. Names may only be registered
// once.
func (r *Registry) RegisterBytes(name string, c ByteConstructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.buffers[name]; ok {
		return fmt.Errorf("byte parser %q already registered", name)
	}
	r.buffers[name] = c
	return nil
}

func (r *Registry) channelConstructor(name string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.channels[name]
	return c, ok
}

func (r *Registry) byteConstructor(name string) (ByteConstructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.buffers[name]
	return c, ok
}
