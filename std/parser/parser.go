// Package parser splits inputs into sessions and materializes them.
//
// A SessionParser yields one DecomposedSession per call to NextSession and
// then ErrEndOfInput. Parsers discover session boundaries as InputSessions
// of PositionRecords and materialize them with Decompose.
package parser

import (
	"errors"
	"iter"
)

type SessionParser interface {
	// NextSession returns the next session, ErrEndOfInput when there are
	// no more, or a *ParseError for malformed or oversized input.
	NextSession() (*DecomposedSession, error)
	// IsFullyParsed reports whether all input has been consumed.
	IsFullyParsed() bool
	// SessionName suggests a name for d, or "" to let the caller decide.
	SessionName(d *DecomposedSession) string
}

// All iterates over the remaining sessions of p. Iteration stops after the
// last session, or after yielding the first error.
func All(p SessionParser) iter.Seq2[*DecomposedSession, error] {
	return func(yield func(*DecomposedSession, error) bool) {
		for {
			d, err := p.NextSession()
			if errors.Is(err, ErrEndOfInput) {
				return
			}
			if !yield(d, err) || err != nil {
				return
			}
		}
	}
}
