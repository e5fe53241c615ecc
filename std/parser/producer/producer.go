// Package producer turns decomposed sessions into payloads ready for
// downstream processing.
package producer

import (
	"fmt"
	"strings"

	"github.com/chanseg/chanseg/std/parser"
)

// UnknownForm is the form of a payload nothing has been said about.
const UnknownForm = "UNKNOWN"

// Payload is one session in consumer form.
type Payload struct {
	Name           string
	Data           []byte
	Header         []byte
	Footer         []byte
	Classification string
	// Forms is the form stack, current form first.
	Forms []string
	// Parameters holds the textual metadata.
	Parameters map[string][]string
	// AltViews holds binary alternate views by view name.
	AltViews map[string][]byte
}

// CurrentForm is the top of the form stack.
func (p *Payload) CurrentForm() string {
	if len(p.Forms) == 0 {
		return ""
	}
	return p.Forms[0]
}

// Producer pulls sessions from a parser and wraps them as payloads.
type Producer struct {
	parser       parser.SessionParser
	initialForms []string
	sessions     int
}

func New(p parser.SessionParser, initialForms ...string) *Producer {
	return &Producer{parser: p, initialForms: initialForms}
}

// NextPayload returns the next session as a payload. It passes on the
// parser's errors, including parser.ErrEndOfInput.
func (pr *Producer) NextPayload(defaultName string) (*Payload, error) {
	d, err := pr.parser.NextSession()
	if err != nil {
		return nil, err
	}
	pr.sessions++
	return pr.CreatePayload(d, defaultName), nil
}

// Sessions is the number of payloads produced so far.
func (pr *Producer) Sessions() int {
	return pr.sessions
}

// CreatePayload builds a payload from d. The parser's session name wins
// over defaultName. Metadata keys with parser.AltViewPrefix become
// alternate views named after the rest of the key, with repeated values
// numbered view, view.1, view.2 and so on. Other metadata becomes
// parameters.
func (pr *Producer) CreatePayload(d *parser.DecomposedSession, defaultName string) *Payload {
	name := ""
	if pr.parser != nil {
		name = pr.parser.SessionName(d)
	}
	if name == "" {
		name = defaultName
	}

	p := &Payload{
		Name:           name,
		Data:           d.Data,
		Header:         d.Header,
		Footer:         d.Footer,
		Classification: d.Classification,
		Forms:          []string{UnknownForm},
		Parameters:     make(map[string][]string),
		AltViews:       make(map[string][]byte),
	}

	// Each non-empty form list replaces the current form
	if len(pr.initialForms) > 0 {
		p.Forms = append(append([]string{}, pr.initialForms...), p.Forms[1:]...)
	}
	if len(d.InitialForms) > 0 {
		p.Forms = append(append([]string{}, d.InitialForms...), p.Forms[1:]...)
	}

	for _, key := range d.Keys() {
		values := d.MetaDataItem(key)
		if view, ok := strings.CutPrefix(key, parser.AltViewPrefix); ok {
			for i, v := range values {
				viewName := view
				if i > 0 {
					viewName = fmt.Sprintf("%s.%d", view, i)
				}
				p.AltViews[viewName] = toBytes(v)
			}
			continue
		}
		for _, v := range values {
			p.Parameters[key] = append(p.Parameters[key], string(toBytes(v)))
		}
	}

	return p
}

func toBytes(v any) []byte {
	switch v := v.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return []byte(fmt.Sprint(v))
	}
}
