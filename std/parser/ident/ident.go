// Package ident labels content by matching its leading bytes against a
// table of literal patterns.
package ident

import (
	"bytes"
	"maps"
	"slices"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
)

// UnknownType is the label of content no pattern matches.
const UnknownType = "simple"

// DefaultTestSize is the default number of leading bytes examined.
const DefaultTestSize = 100

type entry struct {
	label   string
	pattern []byte
}

// Identifier matches content prefixes against labeled patterns. Patterns
// are tried in label order, so the outcome is deterministic even when
// several patterns match.
type Identifier struct {
	entries  []entry
	testSize int
}

// New creates an identifier from label to pattern entries. A non-positive
// testSize selects DefaultTestSize.
func New(types map[string]string, testSize int) *Identifier {
	if testSize <= 0 {
		testSize = DefaultTestSize
	}
	id := &Identifier{testSize: testSize}
	for _, label := range slices.Sorted(maps.Keys(types)) {
		id.entries = append(id.entries, entry{label: label, pattern: []byte(types[label])})
	}
	log.Debug(id, "Configured identification types", "count", len(id.entries))
	return id
}

func (id *Identifier) String() string {
	return "identifier"
}

// TestSize is the number of leading bytes Identify needs.
func (id *Identifier) TestSize() int {
	return id.testSize
}

// Identify returns the label of the first pattern data starts with, or
// UnknownType.
func (id *Identifier) Identify(data []byte) string {
	for _, e := range id.entries {
		if bytes.HasPrefix(data, e.pattern) {
			log.Debug(id, "Data identified", "type", e.label)
			return e.label
		}
	}
	log.Debug(id, "No identification possible", "type", UnknownType)
	return UnknownType
}

// IdentifyChannel identifies the bytes at the current position of c. The
// position is restored afterwards.
func (id *Identifier) IdentifyChannel(c channel.Channel) (string, error) {
	pos, err := c.Position()
	if err != nil {
		return UnknownType, err
	}

	buf := make([]byte, id.testSize)
	n, err := channel.ReadFull(c, buf)
	if rerr := c.SetPosition(pos); err == nil {
		err = rerr
	}
	if err != nil {
		return UnknownType, err
	}

	return id.Identify(buf[:n]), nil
}
