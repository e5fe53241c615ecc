package parser

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	// OrigDocSizeKey carries the size of the original document.
	OrigDocSizeKey = "OrigDocSize"
	// AltViewPrefix marks metadata entries holding alternate views.
	AltViewPrefix = "ALT_VIEW_"
	// DefaultParamSeparator joins repeated metadata values.
	DefaultParamSeparator = ";"
)

// DecomposedSession is the materialized form of one session. Nil byte
// slices denote absent sections.
//
// Metadata is an ordered multimap: keys keep their insertion order and one
// key may hold several values, each a string or a []byte.
type DecomposedSession struct {
	Header         []byte
	Footer         []byte
	Data           []byte
	Classification string
	InitialForms   []string

	keys []string
	meta map[string][]any
}

// SetDataRange stores a copy of b[start:end] as the data section.
func (d *DecomposedSession) SetDataRange(b []byte, start, end int) {
	d.Data = slices.Clone(b[start:end])
	if d.Data == nil {
		d.Data = []byte{}
	}
}

// AddInitialForm appends form to the initial forms. Empty forms are ignored.
func (d *DecomposedSession) AddInitialForm(form string) {
	if form != "" {
		d.InitialForms = append(d.InitialForms, form)
	}
}

// AddMetaData appends value under key. Nil values and empty keys are ignored.
func (d *DecomposedSession) AddMetaData(key string, value any) {
	if key == "" || value == nil {
		return
	}
	if d.meta == nil {
		d.meta = make(map[string][]any)
	}
	if _, ok := d.meta[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.meta[key] = append(d.meta[key], value)
}

// AddMetaDataMap appends every entry of m in key order. Slice values other
// than []byte add one value per element.
func (d *DecomposedSession) AddMetaDataMap(m map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		switch v := m[key].(type) {
		case []string:
			for _, s := range v {
				d.AddMetaData(key, s)
			}
		case [][]byte:
			for _, b := range v {
				d.AddMetaData(key, b)
			}
		case []any:
			for _, a := range v {
				d.AddMetaData(key, a)
			}
		default:
			d.AddMetaData(key, v)
		}
	}
}

// SetMetaData replaces all metadata with m.
func (d *DecomposedSession) SetMetaData(m map[string]any) {
	d.keys, d.meta = nil, nil
	d.AddMetaDataMap(m)
}

// MetaDataItem returns the values stored under key.
func (d *DecomposedSession) MetaDataItem(key string) []any {
	return d.meta[key]
}

// StringMetaDataItem joins the values under key with sep. The second result
// is false if there are none.
func (d *DecomposedSession) StringMetaDataItem(key, sep string) (string, bool) {
	values := d.meta[key]
	if len(values) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if b, ok := v.([]byte); ok {
			parts = append(parts, string(b))
		} else {
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return strings.Join(parts, sep), true
}

// RemoveMetaData deletes key and returns its values.
func (d *DecomposedSession) RemoveMetaData(key string) []any {
	values, ok := d.meta[key]
	if !ok {
		return nil
	}
	delete(d.meta, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
	return values
}

// Keys returns the metadata keys in insertion order.
func (d *DecomposedSession) Keys() []string {
	return slices.Clone(d.keys)
}

func (d *DecomposedSession) HasHeader() bool {
	return d.Header != nil
}

func (d *DecomposedSession) HasFooter() bool {
	return d.Footer != nil
}

func (d *DecomposedSession) HasData() bool {
	return d.Data != nil
}

func (d *DecomposedSession) HasClassification() bool {
	return d.Classification != ""
}

func (d *DecomposedSession) HasMetaData() bool {
	return len(d.keys) > 0
}

// IsValid reports whether any of data, header or footer is present.
func (d *DecomposedSession) IsValid() bool {
	return d.HasData() || d.HasHeader() || d.HasFooter()
}
