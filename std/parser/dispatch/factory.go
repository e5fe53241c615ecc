package dispatch

import (
	"fmt"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/parser"
	"github.com/chanseg/chanseg/std/parser/config"
	"github.com/chanseg/chanseg/std/parser/ident"
)

// Factory identifies content and builds the configured parser for it.
// A Factory is immutable; to reconfigure, build a new one.
type Factory struct {
	cfg        *config.Config
	registry   *Registry
	identifier *ident.Identifier
}

// NewFactory creates a factory from a parsed configuration.
func NewFactory(cfg *config.Config, registry *Registry) *Factory {
	f := &Factory{
		cfg:        cfg,
		registry:   registry,
		identifier: ident.New(cfg.Types, cfg.IdSize),
	}
	log.Debug(f, "Loaded parsers", "channel", len(cfg.Parsers), "byte", len(cfg.ByteParsers),
		"fallbackSize", cfg.MaxFallbackSize())
	return f
}

func (f *Factory) String() string {
	return "parser-factory"
}

// Identify labels the content at the current position of c, leaving the
// position unchanged.
func (f *Factory) Identify(c channel.Channel) string {
	label, err := f.identifier.IdentifyChannel(c)
	if err != nil {
		log.Warn(f, "Unable to identify channel content", "err", err)
		return ident.UnknownType
	}
	return label
}

// MakeSessionParser identifies c and builds the parser for its label. It
// returns nil if no parser could be built.
func (f *Factory) MakeSessionParser(c channel.Channel) parser.SessionParser {
	return f.MakeSessionParserForType(c, f.Identify(c))
}

// MakeSessionParserForType builds the parser configured for label: the
// channel parser if there is one, otherwise the whole-buffer parser if the
// channel is small enough, otherwise the default parser. It returns nil if
// the parser could not be built.
func (f *Factory) MakeSessionParserForType(c channel.Channel, label string) parser.SessionParser {
	if name, ok := f.cfg.Parsers[label]; ok {
		return f.makeChannelParser(name, c)
	}

	if name, ok := f.cfg.ByteParsers[label]; ok {
		size, err := c.Size()
		switch {
		case err != nil:
			log.Warn(f, "Unable to determine channel size", "err", err)
		case size <= f.cfg.MaxFallbackSize():
			return f.makeByteParser(name, c, size)
		default:
			log.Debug(f, "Channel too large for byte parser", "type", label, "size", size)
		}
	}

	return f.makeChannelParser(f.cfg.DefaultParser, c)
}

func (f *Factory) makeChannelParser(name string, c channel.Channel) parser.SessionParser {
	construct, ok := f.registry.channelConstructor(name)
	if !ok {
		log.Error(f, "Unable to instantiate session parser", "name", name, "err", "not registered")
		return nil
	}
	p, err := construct(c)
	if err != nil {
		log.Error(f, "Unable to instantiate session parser", "name", name, "err", err)
		return nil
	}
	return p
}

func (f *Factory) makeByteParser(name string, c channel.Channel, size int64) parser.SessionParser {
	construct, ok := f.registry.byteConstructor(name)
	if !ok {
		log.Error(f, "Unable to instantiate byte parser", "name", name, "err", "not registered")
		return nil
	}

	data, err := readAll(c, size)
	if err != nil {
		log.Error(f, "Unable to read channel for byte parser", "name", name, "err", err)
		return nil
	}

	p, err := construct(data)
	if err != nil {
		log.Error(f, "Unable to instantiate byte parser", "name", name, "err", err)
		return nil
	}
	return p
}

// readAll reads the whole channel into memory and closes it.
func readAll(c channel.Channel, size int64) ([]byte, error) {
	defer c.Close()
	if err := c.SetPosition(0); err != nil {
		return nil, err
	}
	data := make([]byte, size)
	n, err := channel.ReadFull(c, data)
	if err != nil {
		return nil, err
	}
	if int64(n) != size {
		return nil, fmt.Errorf("short read: %d of %d bytes", n, size)
	}
	return data, nil
}
