package services

import (
	"bytes"
	"encoding/json"
)

// RawValue models a provider field whose shape is not fixed: depending on the
// provider (and sometimes the listing) a rate can arrive as an object of
// price fields, a display string, or a bare number. Decoding never fails on
// an unexpected shape; it just records which variant was present.
type RawValue struct {
	Map map[string]any
	Str string
	Num float64

	kind rawKind
}

type rawKind int

const (
	rawAbsent rawKind = iota
	rawMap
	rawString
	rawNumber
)

// IsAbsent reports whether the field was missing, null, or of an unusable
// shape (e.g. an array).
func (v RawValue) IsAbsent() bool {
	return v.kind == rawAbsent
}

func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		v.kind = rawAbsent
		return nil
	}

	switch data[0] {
	case '{':
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			v.kind = rawAbsent
			return nil
		}
		v.Map = m
		v.kind = rawMap
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			v.kind = rawAbsent
			return nil
		}
		v.Str = s
		v.kind = rawString
	case '[', 't', 'f':
		// Arrays and booleans carry no price information.
		v.kind = rawAbsent
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			v.kind = rawAbsent
			return nil
		}
		v.Num = f
		v.kind = rawNumber
	}
	return nil
}

// RawMap builds a map-variant RawValue. Test and normalization helper.
func RawMap(m map[string]any) RawValue {
	return RawValue{Map: m, kind: rawMap}
}

// RawString builds a string-variant RawValue.
func RawString(s string) RawValue {
	return RawValue{Str: s, kind: rawString}
}

// RawNumber builds a number-variant RawValue.
func RawNumber(f float64) RawValue {
	return RawValue{Num: f, kind: rawNumber}
}
