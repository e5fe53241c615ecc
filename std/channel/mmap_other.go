//go:build !unix

package channel

// Mapped falls back to File where memory mapping is unavailable.
func Mapped(path string) Factory {
	return File(path)
}
