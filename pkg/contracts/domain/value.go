package domain

import (
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// ValueKind identifies what a cell holds
type ValueKind int

const (
	// KindMissing is the missing marker: no data in the cell
	KindMissing ValueKind = iota
	KindText
	KindNumber
)

// String returns the kind name used in diagnostics
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

// Value is a single table cell
type Value struct {
	Kind ValueKind
	Text string
	Num  float64
}

// Missing returns the missing marker
func Missing() Value {
	return Value{Kind: KindMissing}
}

// Text returns a text cell
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Number returns a numeric cell. NaN is stored as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{Kind: KindNumber, Num: f}
}

// IsMissing reports whether v is the missing marker
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Equal compares kind and payload. Two missing markers are equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Text == o.Text
	case KindNumber:
		return v.Num == o.Num
	default:
		return true
	}
}

// String renders the value as text. Missing renders as the empty string and
// numbers use the shortest representation that round-trips.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return cast.ToString(v.Num)
	default:
		return ""
	}
}

// Key returns a representation that is unique per (kind, payload) pair and is
// used for hashing rows.
func (v Value) Key() string {
	switch v.Kind {
	case KindText:
		return "t" + strconv.Quote(v.Text)
	case KindNumber:
		if v.Num == 0 {
			return "n0" // -0 and 0 compare equal
		}
		return "n" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return "m"
	}
}
