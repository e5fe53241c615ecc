package parser

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Decompose materializes session from s. Metadata extents are sliced into
// trimmed strings, literal strings pass through, and rename, if not nil,
// maps every metadata key. OrigDocSizeKey is always set: to the data
// length, or to the overall length if there is no data.
func Decompose(session *InputSession, s Slicer, rename func(string) string) (*DecomposedSession, error) {
	d := &DecomposedSession{}
	if session == nil {
		return d, nil
	}

	var err error
	if d.Header, err = SliceRecords(s, session.Header()); err != nil {
		return nil, decomposeError(err)
	}
	if d.Footer, err = SliceRecords(s, session.Footer()); err != nil {
		return nil, decomposeError(err)
	}
	if d.Data, err = SliceRecords(s, session.Data()); err != nil {
		return nil, decomposeError(err)
	}

	meta := session.MetaData()
	for _, key := range slices.Sorted(maps.Keys(meta)) {
		var value string
		switch v := meta[key].(type) {
		case PositionRecord:
			b, err := s.Slice(v)
			if err != nil {
				return nil, decomposeError(err)
			}
			value = trim(string(b))
		case MetaString:
			value = string(v)
		default:
			continue
		}
		if rename != nil {
			key = rename(key)
		}
		d.AddMetaData(key, value)
	}

	length := session.Length()
	if d.Data != nil {
		length = int64(len(d.Data))
	}
	d.AddMetaData(OrigDocSizeKey, strconv.FormatInt(length, 10))

	return d, nil
}

func decomposeError(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Msg: "error while building decomposed session", Err: err}
}

// trim strips leading and trailing spaces and control characters.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
