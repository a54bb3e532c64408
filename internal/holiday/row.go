package holiday

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind tags what a table cell holds after extraction
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "absent"
	}
}

// Value is a single cell value. Empty cells are absent; cells whose whole text is
// a plain decimal number are tagged KindNumber so they never count as text.
type Value struct {
	kind Kind
	raw  string
}

// NewValue classifies raw cell text
func NewValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{}
	}
	if isNumeric(raw) {
		return Value{kind: KindNumber, raw: raw}
	}
	return Value{kind: KindText, raw: raw}
}

// Absent is the zero Value
func Absent() Value {
	return Value{}
}

// Kind reports the tag of the value
func (v Value) Kind() Kind {
	return v.kind
}

// Present reports whether the cell holds non-empty text or a non-zero number
func (v Value) Present() bool {
	switch v.kind {
	case KindText:
		return v.raw != ""
	case KindNumber:
		n, err := strconv.ParseFloat(strings.ReplaceAll(v.raw, ",", ""), 64)
		return err == nil && n != 0
	default:
		return false
	}
}

// Text returns the cell text only when the cell is textual
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.raw, true
}

// String returns the raw cell text regardless of kind
func (v Value) String() string {
	return v.raw
}

// Digits with an optional fraction, or digits grouped by thousands
var numberPattern = regexp.MustCompile(`^-?(\d+(\.\d+)?|\d{1,3}(,\d{3})+(\.\d+)?)$`)

func isNumeric(s string) bool {
	return numberPattern.MatchString(s)
}

// ColumnKey identifies a column by its group header and sub header.
// Single-tier headers use the same label for both.
type ColumnKey struct {
	Group string `json:"group"`
	Sub   string `json:"sub"`
}

func (k ColumnKey) String() string {
	return k.Group + "/" + k.Sub
}

// RawRow is one extracted table row
type RawRow struct {
	keys  []ColumnKey
	cells map[ColumnKey]Value
}

// NewRawRow creates an empty row
func NewRawRow() RawRow {
	return RawRow{cells: make(map[ColumnKey]Value)}
}

// Set stores the cell text for key. When a key repeats within a row the first
// present value wins.
func (r *RawRow) Set(key ColumnKey, text string) {
	if r.cells == nil {
		r.cells = make(map[ColumnKey]Value)
	}
	existing, seen := r.cells[key]
	if !seen {
		r.keys = append(r.keys, key)
	}
	if seen && existing.Present() {
		return
	}
	r.cells[key] = NewValue(text)
}

// Get returns the value stored under key, or an absent Value
func (r RawRow) Get(key ColumnKey) Value {
	v, ok := r.cells[key]
	if !ok {
		return Absent()
	}
	return v
}

// Keys returns the column keys in table order
func (r RawRow) Keys() []ColumnKey {
	out := make([]ColumnKey, len(r.keys))
	copy(out, r.keys)
	return out
}

// Empty reports whether no cell in the row is present
func (r RawRow) Empty() bool {
	for _, v := range r.cells {
		if v.Present() {
			return false
		}
	}
	return true
}

// InferColumnKinds types whole columns the way a table reader does: a column
// keeps KindNumber only if every present cell in it is a number. Numbers in a
// column that also holds text become text.
func InferColumnKinds(rows []RawRow) {
	textual := make(map[ColumnKey]bool)
	for _, row := range rows {
		for key, v := range row.cells {
			if v.kind == KindText {
				textual[key] = true
			}
		}
	}
	for _, row := range rows {
		for key, v := range row.cells {
			if v.kind == KindNumber && textual[key] {
				row.cells[key] = Value{kind: KindText, raw: v.raw}
			}
		}
	}
}

// String renders the row for diagnostics
func (r RawRow) String() string {
	parts := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		v := r.cells[k]
		if !v.Present() {
			continue
		}
		parts = append(parts, k.String()+"="+v.String())
	}
	return strings.Join(parts, "; ")
}
