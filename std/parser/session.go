package parser

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/chanseg/chanseg/std/log"
	"github.com/chanseg/chanseg/std/types/optional"
	"github.com/chanseg/chanseg/std/utils"
)

// InputSession collects the extents of one session while a parser discovers
// its boundaries.
//
// Every record added is checked against the overall extent. If the overall
// extent is not known yet, the check is deferred until SetOverall, which
// then validates everything added so far.
type InputSession struct {
	overall optional.Optional[PositionRecord]
	header  []PositionRecord
	footer  []PositionRecord
	data    []PositionRecord
	meta    map[string]MetaValue
	valid   bool
}

func NewInputSession() *InputSession {
	return &InputSession{
		meta:  make(map[string]MetaValue),
		valid: true,
	}
}

// SetOverall sets the overall extent and validates all records against it.
// The extent stays set even if validation fails.
func (s *InputSession) SetOverall(r PositionRecord) error {
	s.overall = optional.Some(r)
	return s.validateAll()
}

func (s *InputSession) Overall() (PositionRecord, bool) {
	return s.overall.Get()
}

// Start is the position of the overall extent, or zero if unset.
func (s *InputSession) Start() int64 {
	return s.overall.GetOr(PositionRecord{}).Position
}

// Length is the length of the overall extent, or zero if unset.
func (s *InputSession) Length() int64 {
	return s.overall.GetOr(PositionRecord{}).Length
}

func (s *InputSession) SetValid(valid bool) {
	s.valid = valid
}

func (s *InputSession) IsValid() bool {
	return s.valid
}

func (s *InputSession) AddHeaderRecord(r PositionRecord) error {
	return s.add(&s.header, r)
}

func (s *InputSession) AddFooterRecord(r PositionRecord) error {
	return s.add(&s.footer, r)
}

func (s *InputSession) AddDataRecord(r PositionRecord) error {
	return s.add(&s.data, r)
}

// AddHeaderRecords appends rs if all of them are valid.
func (s *InputSession) AddHeaderRecords(rs []PositionRecord) error {
	return s.addAll(&s.header, rs)
}

// AddFooterRecords appends rs if all of them are valid.
func (s *InputSession) AddFooterRecords(rs []PositionRecord) error {
	return s.addAll(&s.footer, rs)
}

// AddDataRecords appends rs if all of them are valid.
func (s *InputSession) AddDataRecords(rs []PositionRecord) error {
	return s.addAll(&s.data, rs)
}

// AddMetaRecord stores an extent to be sliced into a metadata value.
func (s *InputSession) AddMetaRecord(name string, r PositionRecord) error {
	if err := s.validate(r); err != nil {
		return err
	}
	s.meta[name] = r
	return nil
}

// AddMetaString stores a literal metadata value.
func (s *InputSession) AddMetaString(name, value string) {
	s.meta[name] = MetaString(value)
}

// AddMetaData merges m into the metadata if every record in it is valid.
// Nil values are ignored.
func (s *InputSession) AddMetaData(m map[string]MetaValue) error {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if r, ok := m[key].(PositionRecord); ok {
			if err := s.validate(r); err != nil {
				return err
			}
		}
	}
	for key, value := range m {
		if value == nil {
			log.Warn(nil, "Ignoring empty metadata record", "name", key)
			continue
		}
		s.meta[key] = value
	}
	return nil
}

func (s *InputSession) Header() []PositionRecord {
	return s.header
}

func (s *InputSession) Footer() []PositionRecord {
	return s.footer
}

func (s *InputSession) Data() []PositionRecord {
	return s.data
}

func (s *InputSession) MetaData() map[string]MetaValue {
	return s.meta
}

func (s *InputSession) HeaderCount() int {
	return len(s.header)
}

func (s *InputSession) FooterCount() int {
	return len(s.footer)
}

func (s *InputSession) DataCount() int {
	return len(s.data)
}

func (s *InputSession) MetaDataCount() int {
	return len(s.meta)
}

func (s *InputSession) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "Session is %svalid\n", utils.If(s.valid, "", "not "))
	fmt.Fprintf(&sb, "Session overall %s\n", s.overall)
	fmt.Fprintf(&sb, "Header records %v\n", s.header)
	fmt.Fprintf(&sb, "Data records %v\n", s.data)
	fmt.Fprintf(&sb, "Footer records %v\n", s.footer)
	fmt.Fprintf(&sb, "Metadata count %d\n", len(s.meta))
	return sb.String()
}

func (s *InputSession) add(list *[]PositionRecord, r PositionRecord) error {
	if err := s.validate(r); err != nil {
		return err
	}
	*list = append(*list, r)
	return nil
}

func (s *InputSession) addAll(list *[]PositionRecord, rs []PositionRecord) error {
	if err := s.validateList(rs); err != nil {
		return err
	}
	*list = append(*list, rs...)
	return nil
}

func (s *InputSession) validate(r PositionRecord) error {
	overall, ok := s.overall.Get()
	if !ok {
		return nil
	}
	if !r.Within(overall) {
		return &ParseError{
			Msg: fmt.Sprintf("position record %s is out of bounds for the data %s", r, overall),
		}
	}
	return nil
}

func (s *InputSession) validateList(rs []PositionRecord) error {
	for _, r := range rs {
		if err := s.validate(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *InputSession) validateAll() error {
	for _, list := range [][]PositionRecord{s.header, s.footer, s.data} {
		if err := s.validateList(list); err != nil {
			return err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(s.meta)) {
		if r, ok := s.meta[key].(PositionRecord); ok {
			if err := s.validate(r); err != nil {
				return err
			}
		}
	}
	return nil
}
