package channel

type immutableFactory struct {
	inner Factory
}

// Immutable wraps f so that its channels reject Write and Truncate.
func Immutable(f Factory) Factory {
	if f, ok := f.(immutableFactory); ok {
		return f
	}
	return immutableFactory{inner: f}
}

func (f immutableFactory) Create() Channel {
	return &immutable{inner: f.inner.Create()}
}

type immutable struct {
	inner Channel
}

func (c *immutable) Read(p []byte) (int, error) {
	return c.inner.Read(p)
}

func (c *immutable) Write([]byte) (int, error) {
	return 0, ErrNonWritable
}

func (c *immutable) Truncate(int64) error {
	return ErrNonWritable
}

func (c *immutable) Position() (int64, error) {
	return c.inner.Position()
}

func (c *immutable) SetPosition(pos int64) error {
	return c.inner.SetPosition(pos)
}

func (c *immutable) Seek(offset int64, whence int) (int64, error) {
	return seek(c, offset, whence)
}

func (c *immutable) Size() (int64, error) {
	return c.inner.Size()
}

func (c *immutable) IsOpen() bool {
	return c.inner.IsOpen()
}

func (c *immutable) Close() error {
	return c.inner.Close()
}
