package channel

import (
	"io"

	"github.com/chanseg/chanseg/std/log"
)

// ReadBytes reads at most maxSize bytes from a new channel of f. Truncation
// is logged as a warning. On error the failure is logged and an empty slice
// is returned.
func ReadBytes(name string, f Factory, maxSize int) []byte {
	c := f.Create()
	defer c.Close()

	size, err := c.Size()
	if err != nil {
		log.Error(name, "Unable to determine channel size", "err", err)
		return []byte{}
	}
	if dropped := size - int64(maxSize); dropped > 0 {
		log.Warn(name, "Data will be truncated due to size constraints", "truncatedBy", dropped)
		size = int64(maxSize)
	}

	buf := make([]byte, size)
	n, err := ReadFull(c, buf)
	if err != nil {
		log.Error(name, "Unable to read channel into memory", "err", err)
		return []byte{}
	}
	return buf[:n]
}

// ReadFull reads from the current position of c until p is full or the end
// of the channel is reached. Reaching the end is not an error.
func ReadFull(c Channel, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := c.Read(p[total:])
		total += n
		if err == io.EOF {
			break
		} else if err != nil {
			return total, err
		}
	}
	return total, nil
}

func readFullAt(c Channel, pos int64, p []byte) (int, error) {
	if err := c.SetPosition(pos); err != nil {
		return 0, err
	}
	return ReadFull(c, p)
}

// Available counts the bytes readable from r before end of stream. A read
// error ends the count like end of stream does.
func Available(r io.Reader) int64 {
	n, _ := io.Copy(io.Discard, r)
	return n
}

// ReadFromStream discards skip bytes of r and then reads once into p.
func ReadFromStream(r io.Reader, p []byte, skip int64) (int, error) {
	if skip > 0 {
		if _, err := io.CopyN(io.Discard, r, skip); err != nil {
			return 0, err
		}
	}
	return r.Read(p)
}
