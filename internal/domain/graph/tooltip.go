package graph

import (
	"strconv"
	"strings"

	"github.com/okian/benchgraph/internal/domain/bench"
)

const (
	// MessageLength caps the commit message shown in the tooltip header.
	MessageLength = 140
	// Omission replaces the truncated tail of a long message.
	Omission = "…"
)

// Tooltips formats hover text for points of one dataset.
type Tooltips struct {
	ds bench.DataSet
}

// NewTooltips binds a formatter to ds.
func NewTooltips(ds bench.DataSet) Tooltips {
	return Tooltips{ds: ds}
}

// Detail returns the header shown above the value of point i: the truncated
// commit message, then timestamp and committer. Missing points yield "".
func (t Tooltips) Detail(i int) string {
	e, ok := t.ds.At(i)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(Truncate(e.Commit.Message, MessageLength, Omission))
	b.WriteString("\n\n")
	b.WriteString(e.Commit.Timestamp)
	b.WriteString(" committed by @")
	b.WriteString(e.Commit.Committer.Username)
	b.WriteString("\n")
	return b.String()
}

// Label returns "<value> <unit>" for point i, followed by " (<range>)" when
// the measurement has a range. Missing points yield the bare value.
func (t Tooltips) Label(value float64, i int) string {
	v := FormatValue(value)
	e, ok := t.ds.At(i)
	if !ok {
		return v
	}
	label := v + " " + e.Bench.Unit
	if e.Bench.Range != nil {
		label += " (" + *e.Bench.Range + ")"
	}
	return label
}

// FormatValue renders v with the fewest digits that round-trip.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Truncate shortens s to at most length characters. When s is cut, the tail
// is replaced by omission and the result is exactly length characters long.
// Cuts fall on character boundaries, not words.
func Truncate(s string, length int, omission string) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	keep := length - len([]rune(omission))
	if keep < 0 {
		keep = 0
	}
	return string(r[:keep]) + omission
}
