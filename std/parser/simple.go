package parser

import (
	"github.com/chanseg/chanseg/std/channel"
)

// SimpleParser treats the whole channel as a single session. The parser
// owns the channel and closes it after producing the session.
type SimpleParser struct {
	channel     channel.Channel
	fullyParsed bool
	// Rename maps metadata keys when set.
	Rename func(string) string
}

func NewSimpleParser(c channel.Channel) *SimpleParser {
	return &SimpleParser{channel: c}
}

func (p *SimpleParser) String() string {
	return "simple-parser"
}

func (p *SimpleParser) NextSession() (*DecomposedSession, error) {
	if p.fullyParsed {
		return nil, ErrEndOfInput
	}

	size, err := p.channel.Size()
	if err != nil {
		return nil, &ParseError{Msg: "exception occurred reading channel", Err: err}
	}
	session, err := wholeSession(size)
	if err != nil {
		return nil, err
	}
	p.fullyParsed = true
	defer p.channel.Close()

	return Decompose(session, ChannelSlicer{Channel: p.channel}, p.Rename)
}

func (p *SimpleParser) IsFullyParsed() bool {
	return p.fullyParsed
}

func (p *SimpleParser) SessionName(*DecomposedSession) string {
	return ""
}

// ByteParser is SimpleParser over an in-memory buffer.
type ByteParser struct {
	data        []byte
	fullyParsed bool
	Rename      func(string) string
}

func NewByteParser(data []byte) *ByteParser {
	return &ByteParser{data: data}
}

func (p *ByteParser) String() string {
	return "byte-parser"
}

func (p *ByteParser) NextSession() (*DecomposedSession, error) {
	if p.fullyParsed {
		return nil, ErrEndOfInput
	}

	session, err := wholeSession(int64(len(p.data)))
	if err != nil {
		return nil, err
	}
	p.fullyParsed = true

	return Decompose(session, ByteSlicer(p.data), p.Rename)
}

func (p *ByteParser) IsFullyParsed() bool {
	return p.fullyParsed
}

func (p *ByteParser) SessionName(*DecomposedSession) string {
	return ""
}

// wholeSession is a session whose single data record spans size bytes.
func wholeSession(size int64) (*InputSession, error) {
	whole := PositionRecord{Position: 0, Length: size}
	session := NewInputSession()
	if err := session.SetOverall(whole); err != nil {
		return nil, err
	}
	if err := session.AddDataRecord(whole); err != nil {
		return nil, err
	}
	return session, nil
}
