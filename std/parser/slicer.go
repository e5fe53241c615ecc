package parser

import (
	"fmt"
	"math"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/utils"
)

// maxSliceSize bounds the bytes a single slice may hold.
const maxSliceSize = math.MaxInt32 - 8

// Slicer copies extents out of a byte source.
type Slicer interface {
	Size() (int64, error)
	// Slice copies the extent r. If the source ends early the bytes that
	// could be read are returned.
	Slice(r PositionRecord) ([]byte, error)
}

// ByteSlicer slices a byte array.
type ByteSlicer []byte

func (s ByteSlicer) Size() (int64, error) {
	return int64(len(s)), nil
}

func (s ByteSlicer) Slice(r PositionRecord) ([]byte, error) {
	if err := checkSliceSize(r.Length); err != nil {
		return nil, err
	}
	start := min(max(r.Position, 0), int64(len(s)))
	end := min(r.End(), int64(len(s)))
	end = max(end, start)
	if end-start < r.Length {
		log.Warn(nil, "Underflow slicing byte array", "want", r.Length, "got", end-start, "pos", r.Position)
	}
	out := make([]byte, end-start)
	copy(out, s[start:end])
	return out, nil
}

// ChannelSlicer slices a channel, moving its position.
type ChannelSlicer struct {
	Channel channel.Channel
}

func (s ChannelSlicer) Size() (int64, error) {
	return s.Channel.Size()
}

func (s ChannelSlicer) Slice(r PositionRecord) ([]byte, error) {
	if err := checkSliceSize(r.Length); err != nil {
		return nil, err
	}
	if err := s.Channel.SetPosition(r.Position); err != nil {
		return nil, err
	}
	out := make([]byte, r.Length)
	n, err := channel.ReadFull(s.Channel, out)
	if err != nil {
		return nil, err
	}
	if int64(n) < r.Length {
		log.Warn(nil, "Underflow slicing channel", "want", r.Length, "got", n, "pos", r.Position)
	}
	return out[:n], nil
}

// SliceRecords concatenates the extents rs of s. A single record is copied
// directly. With several records, empty ones are skipped and those outside
// the source are dropped. No records yield nil.
func SliceRecords(s Slicer, rs []PositionRecord) ([]byte, error) {
	switch len(rs) {
	case 0:
		return nil, nil
	case 1:
		return s.Slice(rs[0])
	}

	total := int64(0)
	for _, r := range rs {
		var ok bool
		if total, ok = utils.AddExact(total, max(r.Length, 0)); !ok {
			return nil, checkSliceSize(math.MaxInt64)
		}
	}
	if err := checkSliceSize(total); err != nil {
		return nil, err
	}

	size, err := s.Size()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, total)
	for _, r := range rs {
		if r.Length <= 0 {
			continue
		}
		if r.Position < 0 || r.End() > size {
			continue
		}
		b, err := s.Slice(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func checkSliceSize(n int64) error {
	if n < 0 {
		return &ParseError{Msg: fmt.Sprintf("negative slice length %d", n)}
	}
	if n > maxSliceSize {
		return &ParseError{Msg: fmt.Sprintf("cannot create data larger than %d bytes", maxSliceSize)}
	}
	return nil
}
