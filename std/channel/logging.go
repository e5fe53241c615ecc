package channel

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/chanseg/chanseg/std/log"
)

type loggingFactory struct {
	inner      Factory
	identifier string
	logger     *log.Logger
	withStack  bool
	instances  *atomic.Int64
}

// Logging wraps f so that every call on its channels is logged at INFO,
// tagged "identifier : n" where n numbers the channels in creation order.
// With withStack set each line also carries the caller's stack.
func Logging(f Factory, identifier string, logger *log.Logger, withStack bool) (Factory, error) {
	if f == nil {
		return nil, ErrInvalidArgument{Msg: "logging a nil factory"}
	}
	if logger == nil {
		logger = log.Default()
	}
	return loggingFactory{
		inner:      f,
		identifier: identifier,
		logger:     logger,
		withStack:  withStack,
		instances:  &atomic.Int64{},
	}, nil
}

func (f loggingFactory) Create() Channel {
	c := &loggingChannel{
		inner:     f.inner.Create(),
		tag:       fmt.Sprintf("%s : %d", f.identifier, f.instances.Add(1)-1),
		logger:    f.logger,
		withStack: f.withStack,
	}
	c.log("Channel created")
	return c
}

type loggingChannel struct {
	inner     Channel
	tag       string
	logger    *log.Logger
	withStack bool
}

func (c *loggingChannel) String() string {
	return c.tag
}

func (c *loggingChannel) log(msg string, v ...any) {
	if c.withStack {
		v = append(v, "stack", string(debug.Stack()))
	}
	c.logger.Info(c, msg, v...)
}

func (c *loggingChannel) Read(p []byte) (int, error) {
	pos, _ := c.inner.Position()
	n, err := c.inner.Read(p)
	c.log("Read", "len", len(p), "pos", pos, "n", n, "err", err)
	return n, err
}

func (c *loggingChannel) Write(p []byte) (int, error) {
	n, err := c.inner.Write(p)
	c.log("Write", "len", len(p), "n", n, "err", err)
	return n, err
}

func (c *loggingChannel) Truncate(size int64) error {
	err := c.inner.Truncate(size)
	c.log("Truncate", "size", size, "err", err)
	return err
}

func (c *loggingChannel) Position() (int64, error) {
	pos, err := c.inner.Position()
	c.log("Position", "pos", pos, "err", err)
	return pos, err
}

func (c *loggingChannel) SetPosition(pos int64) error {
	err := c.inner.SetPosition(pos)
	c.log("SetPosition", "pos", pos, "err", err)
	return err
}

func (c *loggingChannel) Seek(offset int64, whence int) (int64, error) {
	abs, err := c.inner.Seek(offset, whence)
	c.log("Seek", "offset", offset, "whence", whence, "abs", abs, "err", err)
	return abs, err
}

func (c *loggingChannel) Size() (int64, error) {
	size, err := c.inner.Size()
	c.log("Size", "size", size, "err", err)
	return size, err
}

func (c *loggingChannel) IsOpen() bool {
	open := c.inner.IsOpen()
	c.log("IsOpen", "open", open)
	return open
}

func (c *loggingChannel) Close() error {
	err := c.inner.Close()
	c.log("Close", "err", err)
	return err
}
