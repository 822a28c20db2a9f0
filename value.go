package fuzzydate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/fuzzydate/date"
	"github.com/shopspring/decimal"
)

// Kind is the type of a Value.
type Kind int

const (
	Missing Kind = iota
	Number
	Text
	Bool
	Day  // a date.Date
	Time // a time.Time
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Number:
		return "number"
	case Text:
		return "text"
	case Bool:
		return "bool"
	case Day:
		return "date"
	case Time:
		return "time"
	default:
		panic(fmt.Sprintf("unknown kind %d", k))
	}
}

// Value is a single typed cell of a Table.
//
// The zero Value is missing.
type Value struct {
	kind Kind
	num  decimal.Decimal
	str  string
	b    bool
	day  date.Date
	at   time.Time
}

// Null returns a missing value.
func Null() Value { return Value{} }

// Num returns a number value.
func Num[T float64 | int | int64 | decimal.Decimal](v T) Value {
	switch x := any(v).(type) {
	case float64:
		return Value{kind: Number, num: decimal.NewFromFloat(x)}
	case int:
		return Value{kind: Number, num: decimal.NewFromInt(int64(x))}
	case int64:
		return Value{kind: Number, num: decimal.NewFromInt(x)}
	case decimal.Decimal:
		return Value{kind: Number, num: x}
	}
	panic("unreachable")
}

// Str returns a text value.
func Str(s string) Value { return Value{kind: Text, str: s} }

// Flag returns a boolean value.
func Flag(b bool) Value { return Value{kind: Bool, b: b} }

// On returns a date value.
func On(d date.Date) Value { return Value{kind: Day, day: d} }

// At returns a time value.
func At(t time.Time) Value { return Value{kind: Time, at: t} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v holds no value.
func (v Value) IsMissing() bool { return v.kind == Missing }

// Decimal returns the number held by v.
func (v Value) Decimal() (decimal.Decimal, bool) { return v.num, v.kind == Number }

// Text returns the string held by v.
func (v Value) Text() (string, bool) { return v.str, v.kind == Text }

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Bool }

// Date returns the date held by v.
func (v Value) Date() (date.Date, bool) { return v.day, v.kind == Day }

// Instant returns the point in time of a date or time value.
// Dates are midnight UTC.
func (v Value) Instant() (time.Time, bool) {
	switch v.kind {
	case Day:
		return v.day.Time(), true
	case Time:
		return v.at, true
	}
	return time.Time{}, false
}

// IsTemporal reports whether v is a date or a time.
func (v Value) IsTemporal() bool { return v.kind == Day || v.kind == Time }

// Equal reports whether v and w hold the same value.
// Numbers are equal if they are numerically equal, instants if they are the same instant.
func (v Value) Equal(w Value) bool {
	if v.kind == Day && w.kind == Day {
		return v.day.Compare(w.day) == 0
	}
	if v.IsTemporal() && w.IsTemporal() {
		a, _ := v.Instant()
		b, _ := w.Instant()
		return a.Equal(b)
	}
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case Missing:
		return true
	case Number:
		return v.num.Equal(w.num)
	case Text:
		return v.str == w.str
	case Bool:
		return v.b == w.b
	}
	return false
}

// key is a canonical encoding of v, equal values have equal keys.
func (v Value) key() string {
	switch v.kind {
	case Number:
		return "n" + v.num.String()
	case Text:
		return "s" + v.str
	case Bool:
		return "b" + strconv.FormatBool(v.b)
	case Day, Time:
		at, _ := v.Instant()
		return "t" + at.UTC().Format(time.RFC3339Nano)
	}
	return "-"
}

// String formats v for display. Missing values are empty.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return v.num.String()
	case Text:
		return v.str
	case Bool:
		return strconv.FormatBool(v.b)
	case Day:
		return v.day.String()
	case Time:
		return v.at.Format(time.RFC3339Nano)
	}
	return ""
}

// Interface returns the go value held by v: nil, decimal.Decimal, string, bool, date.Date or time.Time.
func (v Value) Interface() any {
	switch v.kind {
	case Number:
		return v.num
	case Text:
		return v.str
	case Bool:
		return v.b
	case Day:
		return v.day
	case Time:
		return v.at
	}
	return nil
}

// parseTemporal reads a date ("2025-7-1") or an RFC 3339 time.
func parseTemporal(s string) (Value, error) {
	if d, err := date.Parse(s); err == nil {
		return On(d), nil
	}
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Value{}, fmt.Errorf("invalid date %q: want a date (2006-01-02) or a time (RFC 3339)", s)
	}
	return At(at), nil
}

// parseCell infers the value of a raw text cell: empty is missing, numbers
// and booleans are recognized, and everything else is text.
// Digits with a leading zero ("007") are codes, they stay text.
func parseCell(s string) Value {
	if s == "" {
		return Value{}
	}
	if d, err := decimal.NewFromString(s); err == nil && !leadingZero(s) {
		return Num(d)
	}
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return Flag(b)
	}
	return Str(s)
}

// leadingZero reports whether s starts with a zero followed by another digit, after an optional sign.
func leadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}
