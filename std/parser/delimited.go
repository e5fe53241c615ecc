package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/chanseg/chanseg/std/channel"
	"github.com/chanseg/chanseg/std/log"
)

// SessionOffsetKey carries the channel offset at which a delimited session
// starts.
const SessionOffsetKey = "SESSION_OFFSET"

// DelimitedParser splits a channel into sessions separated by a delimiter.
// Empty sessions are skipped and the bytes after the last delimiter form
// the final session. Sessions are searched in a Window, so none may be
// larger than the maximum chunk size.
//
// Once NextSession has failed, it keeps returning the same error.
type DelimitedParser struct {
	window     *Window
	delim      []byte
	searchFrom int
	sessions   int
	err        error
	// Rename maps metadata keys when set.
	Rename func(string) string
}

func NewDelimitedParser(c channel.Channel, delim []byte, opts WindowOptions) (*DelimitedParser, error) {
	if len(delim) == 0 {
		return nil, fmt.Errorf("empty session delimiter")
	}
	return &DelimitedParser{
		window: NewWindow(c, opts),
		delim:  bytes.Clone(delim),
	}, nil
}

func (p *DelimitedParser) String() string {
	return fmt.Sprintf("delimited-parser@%d", p.window.ChunkStart())
}

func (p *DelimitedParser) NextSession() (*DecomposedSession, error) {
	if p.err != nil {
		return nil, p.err
	}

	for {
		data := p.window.Data()
		if i := bytes.Index(data[p.searchFrom:], p.delim); i >= 0 {
			end := p.searchFrom + i
			p.searchFrom = 0
			if end == 0 {
				p.window.Advance(len(p.delim))
				continue
			}
			return p.emit(end, end+len(p.delim))
		}

		// Only bytes that could start a delimiter need another look
		p.searchFrom = max(0, len(data)-len(p.delim)+1)

		if p.window.Exhausted() {
			if len(data) == 0 {
				p.err = ErrEndOfInput
				return nil, p.err
			}
			p.searchFrom = 0
			return p.emit(len(data), len(data))
		}

		if _, err := p.window.LoadNextRegion(); err != nil {
			if !errors.Is(err, ErrEndOfInput) {
				log.Error(p, "Unable to load next region", "err", err)
			}
			p.err = err
			return nil, err
		}
	}
}

// emit decomposes the first length bytes of the window as a session and
// consumes the first consumed bytes.
func (p *DelimitedParser) emit(length, consumed int) (*DecomposedSession, error) {
	offset := p.window.ChunkStart()

	session := NewInputSession()
	whole := PositionRecord{Position: 0, Length: int64(length)}
	if err := session.SetOverall(whole); err != nil {
		return nil, p.fail(err)
	}
	if err := session.AddDataRecord(whole); err != nil {
		return nil, p.fail(err)
	}
	session.AddMetaString(SessionOffsetKey, strconv.FormatInt(offset, 10))

	d, err := Decompose(session, ByteSlicer(p.window.Data()[:length]), p.Rename)
	if err != nil {
		return nil, p.fail(err)
	}

	p.window.Advance(consumed)
	p.sessions++
	log.Trace(p, "Session found", "offset", offset, "length", length, "count", p.sessions)
	return d, nil
}

func (p *DelimitedParser) fail(err error) error {
	p.err = err
	return err
}

func (p *DelimitedParser) IsFullyParsed() bool {
	return p.window.Exhausted() && len(p.window.Data()) == 0
}

// SessionName names a session after its offset in the channel.
func (p *DelimitedParser) SessionName(d *DecomposedSession) string {
	offset, ok := d.StringMetaDataItem(SessionOffsetKey, DefaultParamSeparator)
	if !ok {
		return ""
	}
	return "session-" + offset
}

// Close releases the channel.
func (p *DelimitedParser) Close() error {
	return p.window.Close()
}
