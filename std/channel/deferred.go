package channel

// Deferred returns a factory whose channels call open on the first operation
// that needs the underlying channel. A failed open is reported by that
// operation and retried by the next one.
func Deferred(open func() (Channel, error)) Factory {
	return FactoryFunc(func() Channel {
		return &deferred{open: open}
	})
}

type deferred struct {
	open   func() (Channel, error)
	inner  Channel
	closed bool
}

func (c *deferred) get() (Channel, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.inner == nil {
		inner, err := c.open()
		if err != nil {
			return nil, err
		}
		c.inner = inner
	}
	return c.inner, nil
}

func (c *deferred) Read(p []byte) (int, error) {
	inner, err := c.get()
	if err != nil {
		return 0, err
	}
	return inner.Read(p)
}

func (c *deferred) Write(p []byte) (int, error) {
	inner, err := c.get()
	if err != nil {
		return 0, err
	}
	return inner.Write(p)
}

func (c *deferred) Truncate(size int64) error {
	inner, err := c.get()
	if err != nil {
		return err
	}
	return inner.Truncate(size)
}

func (c *deferred) Position() (int64, error) {
	inner, err := c.get()
	if err != nil {
		return 0, err
	}
	return inner.Position()
}

func (c *deferred) SetPosition(pos int64) error {
	inner, err := c.get()
	if err != nil {
		return err
	}
	return inner.SetPosition(pos)
}

func (c *deferred) Seek(offset int64, whence int) (int64, error) {
	return seek(c, offset, whence)
}

func (c *deferred) Size() (int64, error) {
	inner, err := c.get()
	if err != nil {
		return 0, err
	}
	return inner.Size()
}

func (c *deferred) IsOpen() bool {
	return !c.closed
}

func (c *deferred) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.inner == nil {
		return nil
	}
	return c.inner.Close()
}
