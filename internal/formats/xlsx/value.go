package xlsx

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindNone is an empty cell.
	KindNone Kind = iota
	// KindText is a string cell, including formula string results and errors.
	KindText
	// KindInt is a numeric cell stored without a fractional part or exponent.
	KindInt
	// KindFloat is any other numeric cell.
	KindFloat
	// KindBool is a boolean cell.
	KindBool
	// KindDateTime is a numeric cell carrying a date number format.
	KindDateTime
	// KindTimeOfDay is a date-formatted cell whose serial is below one day.
	KindTimeOfDay
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDateTime:
		return "datetime"
	case KindTimeOfDay:
		return "time"
	default:
		return "none"
	}
}

// Value is a typed cell value. It is converted to a string only when results
// are rendered.
type Value struct {
	kind Kind
	text string
	i    int64
	f    float64
	b    bool
	t    time.Time
	// wide marks an integer beyond int64, held in f.
	wide bool
}

// None returns the empty value.
func None() Value { return Value{} }

// Text returns a string value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// DateTime returns a date/time value.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// TimeOfDay returns a time value with no date part.
func TimeOfDay(t time.Time) Value { return Value{kind: KindTimeOfDay, t: t} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether v is the empty value.
func (v Value) IsNone() bool { return v.kind == KindNone }

// String renders v the way the tools report cell values. None renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		if v.wide {
			return strconv.FormatFloat(v.f, 'f', 0, 64)
		}
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindDateTime:
		return v.t.Format("2006-01-02 15:04:05")
	case KindTimeOfDay:
		return v.t.Format("15:04:05")
	default:
		return ""
	}
}

// Interface returns the Go value to hand to excelize when writing v.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		if v.wide {
			return v.f
		}
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindDateTime, KindTimeOfDay:
		return v.t
	default:
		return nil
	}
}

// ParseLiteral coerces a command-line literal into a cell value. A literal
// that parses as a finite number becomes an Int when integral and a Float
// otherwise; anything else stays Text. Integral values outside the int64
// range are stored as floats but still render without an exponent.
func ParseLiteral(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.ContainsAny(trimmed, "xX") {
		return Text(s)
	}
	if strings.Contains(trimmed, "_") {
		var ok bool
		if trimmed, ok = stripDigitSeparators(trimmed); !ok {
			return Text(s)
		}
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Text(s)
	}
	if f == math.Trunc(f) {
		if math.Abs(f) < math.MaxInt64 {
			return Int(int64(f))
		}
		return Value{kind: KindInt, f: f, wide: true}
	}
	return Float(f)
}

// stripDigitSeparators removes underscores that sit between two digits, as
// in "1_000". Any other underscore makes the literal non-numeric.
func stripDigitSeparators(s string) (string, bool) {
	isDigit := func(i int) bool { return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9' }
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			if !isDigit(i-1) || !isDigit(i+1) {
				return "", false
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String(), true
}

// parseStoredNumber converts a raw numeric cell string. Literals with a
// decimal point or exponent are floats, everything else is an integer.
func parseStoredNumber(raw string) (Value, bool) {
	if strings.ContainsAny(raw, ".eE") {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, false
		}
		return Float(f), true
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return Value{}, false
		}
		return Float(f), true
	}
	return Int(i), true
}

// formatFloat renders f in shortest round-trip form, using exponent notation
// outside [1e-4, 1e16) and keeping a ".0" on integral values.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
