package holiday

import (
	"fmt"
	"strings"
)

// DescriptionSeparator joins the optional description fields
const DescriptionSeparator = " — "

// SkipReason explains why a row produced no holiday
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipMissingDate
	SkipMissingName
	SkipUnparseableDate
)

func (r SkipReason) String() string {
	switch r {
	case SkipMissingDate:
		return "missing-date"
	case SkipMissingName:
		return "missing-name"
	case SkipUnparseableDate:
		return "unparseable-date"
	default:
		return "none"
	}
}

// Column keys of the Wikipedia "Public holidays in Nepal" table
var (
	KeyDateAD  = ColumnKey{Group: "Date", Sub: "Date (A.D.)"}
	KeyDateBS  = ColumnKey{Group: "Date", Sub: "Date (B.S.)"}
	KeyEnglish = ColumnKey{Group: "Name", Sub: "English"}
	KeyNepali  = ColumnKey{Group: "Name", Sub: "Nepali"}
	KeyRemarks = ColumnKey{Group: "Remarks", Sub: "Remarks"}
)

// Columns maps the fields a holiday is built from to table columns
type Columns struct {
	Date          ColumnKey
	SecondaryDate ColumnKey
	Name          ColumnKey
	SecondaryName ColumnKey
	Remarks       ColumnKey
}

// DefaultColumns matches the Wikipedia table layout
var DefaultColumns = Columns{
	Date:          KeyDateAD,
	SecondaryDate: KeyDateBS,
	Name:          KeyEnglish,
	SecondaryName: KeyNepali,
	Remarks:       KeyRemarks,
}

// Result is the outcome of normalizing one row: either a Holiday or a skip.
type Result struct {
	Row     int        `json:"row"`
	Holiday *Holiday   `json:"holiday,omitempty"`
	Skip    SkipReason `json:"-"`
	Raw     string     `json:"raw,omitempty"`
	Err     error      `json:"-"`
}

// Skipped reports whether the row was dropped
func (r Result) Skipped() bool {
	return r.Holiday == nil
}

// Normalizer maps rows to holidays
type Normalizer struct {
	Columns Columns
	Parser  DateParser
}

// NewNormalizer creates a Normalizer for the default table layout.
// A nil parser selects the lenient parser on the wall clock.
func NewNormalizer(p DateParser) *Normalizer {
	if p == nil {
		p = NewLenientParser()
	}
	return &Normalizer{Columns: DefaultColumns, Parser: p}
}

// Normalize converts row with a default-layout Normalizer using p
func Normalize(row RawRow, p DateParser) Result {
	return NewNormalizer(p).Normalize(row)
}

// Normalize converts one row into a Holiday or a skip decision
func (n *Normalizer) Normalize(row RawRow) Result {
	date := row.Get(n.Columns.Date)
	name := row.Get(n.Columns.Name)

	if !date.Present() {
		return Result{Skip: SkipMissingDate, Raw: row.String()}
	}
	if !name.Present() {
		return Result{Skip: SkipMissingName, Raw: row.String()}
	}

	start, err := n.Parser.Parse(date.String())
	if err != nil {
		return Result{Skip: SkipUnparseableDate, Raw: date.String(), Err: err}
	}

	summary := name.String()
	if secondary, ok := row.Get(n.Columns.SecondaryName).Text(); ok {
		summary = fmt.Sprintf("%s (%s)", summary, secondary)
	}

	return Result{Holiday: NewHoliday(summary, n.description(row), start)}
}

// description joins remarks and the secondary calendar date, in that order
func (n *Normalizer) description(row RawRow) string {
	parts := make([]string, 0, 2)
	if remarks, ok := row.Get(n.Columns.Remarks).Text(); ok {
		parts = append(parts, remarks)
	}
	if secondaryDate, ok := row.Get(n.Columns.SecondaryDate).Text(); ok {
		parts = append(parts, secondaryDate)
	}
	return strings.Join(parts, DescriptionSeparator)
}

// NormalizeAll normalizes rows in order. It returns the holidays produced and the
// results of every skipped row, numbered from 1.
func (n *Normalizer) NormalizeAll(rows []RawRow) ([]*Holiday, []Result) {
	holidays := make([]*Holiday, 0, len(rows))
	skipped := make([]Result, 0)
	for i, row := range rows {
		res := n.Normalize(row)
		res.Row = i + 1
		if res.Skipped() {
			skipped = append(skipped, res)
			continue
		}
		holidays = append(holidays, res.Holiday)
	}
	return holidays, skipped
}
