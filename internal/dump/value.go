package dump

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 form used everywhere an artifact
// carries a time: the header comment, timestamp literals and object
// metadata. Millisecond precision, always UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Kind discriminates the closed set of scalar shapes a row cell can
// take.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindTimestamp
	KindRaw
)

// Value is a tagged variant over the scalar types the driver can hand
// back. Keeping the set closed makes SQL() total: every kind has
// exactly one rendering.
type Value struct {
	kind Kind
	text string
	flag bool
	ts   time.Time
}

func Null() Value                 { return Value{kind: KindNull} }
func Text(s string) Value         { return Value{kind: KindText, text: s} }
func Number(s string) Value       { return Value{kind: KindNumber, text: s} }
func Bool(b bool) Value           { return Value{kind: KindBool, flag: b} }
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, ts: t} }
func Raw(s string) Value          { return Value{kind: KindRaw, text: s} }

func (v Value) Kind() Kind { return v.kind }

// SQL renders the value as a standalone SQL literal. Text doubles
// embedded single quotes and nothing more: the script is replayed
// against the same engine that produced it, so no further escaping is
// applied.
func (v Value) SQL() string {
	switch v.kind {
	case KindText:
		return "'" + strings.ReplaceAll(v.text, "'", "''") + "'"
	case KindNumber, KindRaw:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindTimestamp:
		return "'" + v.ts.UTC().Format(TimestampLayout) + "'"
	default:
		return "NULL"
	}
}

// FromDriver classifies a database/sql scan result into a Value.
// Anything outside the driver's standard set is passed through in its
// default textual form.
func FromDriver(src any) Value {
	switch s := src.(type) {
	case nil:
		return Null()
	case string:
		return Text(s)
	case []byte:
		return Text(string(s))
	case int64:
		return Number(strconv.FormatInt(s, 10))
	case float64:
		return Number(strconv.FormatFloat(s, 'g', -1, 64))
	case bool:
		return Bool(s)
	case time.Time:
		return Timestamp(s)
	default:
		return Raw(fmt.Sprintf("%v", s))
	}
}

// QuoteIdent double-quotes an identifier for use in a statement.
func QuoteIdent(name string) string {
	return `"` + name + `"`
}

// ColumnList renders column names double-quoted and comma-joined,
// preserving order.
func ColumnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}
