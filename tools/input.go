package tools

import (
	"fmt"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/object/storage"
	"github.com/chanseg/chanseg/std/parser/config"
)

// inputs resolves command line arguments to channels.
type inputs struct {
	config string
	mmap   bool
	store  string
}

func (in *inputs) String() string {
	return "inputs"
}

// loadConfig reads the configuration file, or the defaults if there is none,
// and applies its log level.
func (in *inputs) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if in.config == "" {
		cfg = config.DefaultConfig()
		if err := cfg.Parse(); err != nil {
			return nil, err
		}
	} else {
		var err error
		if cfg, err = config.Load(in.config); err != nil {
			return nil, err
		}
	}
	log.Default().SetLevel(cfg.Level())
	return cfg, nil
}

// each calls fn with a channel factory for every named input, stopping at
// the first error. Names are file paths, or keys if a store is used.
func (in *inputs) each(names []string, fn func(name string, f channel.Factory) error) error {
	if in.store == "" {
		for _, name := range names {
			f := channel.File(name)
			if in.mmap {
				f = channel.Mapped(name)
			}
			if err := fn(name, f); err != nil {
				return err
			}
		}
		return nil
	}

	store, err := storage.NewBadgerStore(in.store)
	if err != nil {
		return fmt.Errorf("unable to open store %s: %w", in.store, err)
	}
	defer store.Close()

	for _, name := range names {
		if err := fn(name, storage.ChannelFactory(store, name)); err != nil {
			return err
		}
	}
	return nil
}
