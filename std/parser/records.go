package parser

import "fmt"

// MetaValue is a raw metadata value of an InputSession: either a literal
// MetaString or a PositionRecord to be sliced out at decomposition.
type MetaValue interface {
	isMetaValue()
}

type MetaString string

func (MetaString) isMetaValue() {}

// PositionRecord is an (offset, length) extent.
type PositionRecord struct {
	Position int64
	Length   int64
}

func (PositionRecord) isMetaValue() {}

// End is one past the last position covered by the record.
func (r PositionRecord) End() int64 {
	return r.Position + r.Length
}

// Within reports whether r lies entirely inside outer.
func (r PositionRecord) Within(outer PositionRecord) bool {
	return r.Position >= outer.Position && r.End() <= outer.End()
}

func (r PositionRecord) String() string {
	return fmt.Sprintf("[%d+%d]", r.Position, r.Length)
}
