package holiday

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newRow(cells map[ColumnKey]string) RawRow {
	row := NewRawRow()
	for _, key := range []ColumnKey{KeyDateAD, KeyDateBS, KeyEnglish, KeyNepali, KeyRemarks} {
		if text, ok := cells[key]; ok {
			row.Set(key, text)
		}
	}
	return row
}

func TestNormalize(t *testing.T) {
	p := &LenientParser{Now: fixedClock(2025)}

	tests := []struct {
		name            string
		cells           map[ColumnKey]string
		wantSkip        SkipReason
		wantSummary     string
		wantDescription string
		wantStart       time.Time
	}{
		{
			name: "full row",
			cells: map[ColumnKey]string{
				KeyDateAD:  "October 2",
				KeyDateBS:  "Ashoj 10",
				KeyEnglish: "Dashain",
				KeyNepali:  "दशैं",
				KeyRemarks: "National holiday",
			},
			wantSummary:     "Dashain (दशैं)",
			wantDescription: "National holiday — Ashoj 10",
			wantStart:       time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "only remarks",
			cells: map[ColumnKey]string{
				KeyDateAD:  "May 1",
				KeyEnglish: "Labour Day",
				KeyRemarks: "National holiday",
			},
			wantSummary:     "Labour Day",
			wantDescription: "National holiday",
			wantStart:       time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "only secondary date",
			cells: map[ColumnKey]string{
				KeyDateAD:  "May 1",
				KeyDateBS:  "Baisakh 18",
				KeyEnglish: "Labour Day",
			},
			wantSummary:     "Labour Day",
			wantDescription: "Baisakh 18",
			wantStart:       time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "no optional fields",
			cells: map[ColumnKey]string{
				KeyDateAD:  "May 1",
				KeyEnglish: "Labour Day",
			},
			wantSummary:     "Labour Day",
			wantDescription: "",
			wantStart:       time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "numeric secondary name is ignored",
			cells: map[ColumnKey]string{
				KeyDateAD:  "May 1",
				KeyEnglish: "Labour Day",
				KeyNepali:  "2082",
			},
			wantSummary: "Labour Day",
			wantStart:   time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "numeric remarks are ignored",
			cells: map[ColumnKey]string{
				KeyDateAD:  "May 1",
				KeyEnglish: "Labour Day",
				KeyRemarks: "1",
				KeyDateBS:  "Baisakh 18",
			},
			wantSummary:     "Labour Day",
			wantDescription: "Baisakh 18",
			wantStart:       time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "numeric name passes the gate",
			cells: map[ColumnKey]string{
				KeyDateAD:  "May 1",
				KeyEnglish: "2025",
			},
			wantSummary: "2025",
			wantStart:   time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "zero name is missing",
			cells: map[ColumnKey]string{
				KeyDateAD:  "May 1",
				KeyEnglish: "0",
			},
			wantSkip: SkipMissingName,
		},
		{
			name: "non-numeric spellings stay text",
			cells: map[ColumnKey]string{
				KeyDateAD:  "May 1",
				KeyEnglish: "Labour Day",
				KeyNepali:  "Infinity",
				KeyRemarks: "1e5",
			},
			wantSummary:     "Labour Day (Infinity)",
			wantDescription: "1e5",
			wantStart:       time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "missing date",
			cells: map[ColumnKey]string{
				KeyEnglish: "Dashain",
			},
			wantSkip: SkipMissingDate,
		},
		{
			name: "blank date",
			cells: map[ColumnKey]string{
				KeyDateAD:  "   ",
				KeyEnglish: "Dashain",
			},
			wantSkip: SkipMissingDate,
		},
		{
			name: "missing name",
			cells: map[ColumnKey]string{
				KeyDateAD: "May 1",
				KeyNepali: "दशैं",
			},
			wantSkip: SkipMissingName,
		},
		{
			name:     "missing both reports date first",
			cells:    map[ColumnKey]string{KeyRemarks: "Something"},
			wantSkip: SkipMissingDate,
		},
		{
			name: "unparseable date",
			cells: map[ColumnKey]string{
				KeyDateAD:  "not a date",
				KeyEnglish: "Dashain",
			},
			wantSkip: SkipUnparseableDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Normalize(newRow(tt.cells), p)

			if tt.wantSkip != SkipNone {
				if !res.Skipped() {
					t.Fatalf("Normalize() produced %+v, want skip %s", res.Holiday, tt.wantSkip)
				}
				if res.Skip != tt.wantSkip {
					t.Errorf("Normalize() skip = %s, want %s", res.Skip, tt.wantSkip)
				}
				return
			}

			if res.Skipped() {
				t.Fatalf("Normalize() skipped with %s, want holiday", res.Skip)
			}
			h := res.Holiday
			if h.Summary != tt.wantSummary {
				t.Errorf("Summary = %q, want %q", h.Summary, tt.wantSummary)
			}
			if h.Description != tt.wantDescription {
				t.Errorf("Description = %q, want %q", h.Description, tt.wantDescription)
			}
			if !h.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", h.Start, tt.wantStart)
			}
			if got := h.End.Sub(h.Start); got != 24*time.Hour {
				t.Errorf("End - Start = %v, want 24h", got)
			}
		})
	}
}

func TestNormalize_UnparseableDateKeepsRawText(t *testing.T) {
	row := newRow(map[ColumnKey]string{
		KeyDateAD:  "sometime in spring",
		KeyEnglish: "Holi",
	})

	res := Normalize(row, &LenientParser{Now: fixedClock(2025)})
	if res.Skip != SkipUnparseableDate {
		t.Fatalf("skip = %s, want %s", res.Skip, SkipUnparseableDate)
	}
	if res.Raw != "sometime in spring" {
		t.Errorf("Raw = %q, want the offending date text", res.Raw)
	}
	if !errors.Is(res.Err, ErrUnparseableDate) {
		t.Errorf("Err = %v, want ErrUnparseableDate", res.Err)
	}
}

func TestNormalize_ParserFailureIsASkip(t *testing.T) {
	boom := errors.New("boom")
	p := DateParserFunc(func(string) (time.Time, error) {
		return time.Time{}, boom
	})

	res := Normalize(newRow(map[ColumnKey]string{
		KeyDateAD:  "May 1",
		KeyEnglish: "Labour Day",
	}), p)

	if res.Skip != SkipUnparseableDate {
		t.Errorf("skip = %s, want %s", res.Skip, SkipUnparseableDate)
	}
	if !errors.Is(res.Err, boom) {
		t.Errorf("Err = %v, want parser error", res.Err)
	}
}

func TestNormalizer_CustomColumns(t *testing.T) {
	n := NewNormalizer(&LenientParser{Now: fixedClock(2025)})
	n.Columns = Columns{
		Date: ColumnKey{Group: "Date", Sub: "Date"},
		Name: ColumnKey{Group: "Holiday", Sub: "Holiday"},
	}

	row := NewRawRow()
	row.Set(ColumnKey{Group: "Date", Sub: "Date"}, "11 January")
	row.Set(ColumnKey{Group: "Holiday", Sub: "Holiday"}, "Prithvi Jayanti")

	res := n.Normalize(row)
	if res.Skipped() {
		t.Fatalf("Normalize() skipped with %s", res.Skip)
	}
	if res.Holiday.Summary != "Prithvi Jayanti" {
		t.Errorf("Summary = %q, want %q", res.Holiday.Summary, "Prithvi Jayanti")
	}
}

func TestNormalizeAll(t *testing.T) {
	rows := []RawRow{
		newRow(map[ColumnKey]string{KeyDateAD: "11 January", KeyEnglish: "Prithvi Jayanti"}),
		newRow(map[ColumnKey]string{KeyDateAD: "", KeyEnglish: "Maghe Sankranti"}),
		newRow(map[ColumnKey]string{KeyDateAD: "19 February", KeyEnglish: "Democracy Day"}),
		newRow(map[ColumnKey]string{KeyDateAD: "soon", KeyEnglish: "Holi"}),
		newRow(map[ColumnKey]string{KeyDateAD: "11 January", KeyEnglish: "Prithvi Jayanti"}),
	}

	holidays, skipped := NewNormalizer(&LenientParser{Now: fixedClock(2025)}).NormalizeAll(rows)

	if len(holidays) != 3 {
		t.Fatalf("expected 3 holidays, got %d", len(holidays))
	}
	wantOrder := []string{"Prithvi Jayanti", "Democracy Day", "Prithvi Jayanti"}
	for i, h := range holidays {
		if h.Summary != wantOrder[i] {
			t.Errorf("holiday %d = %q, want %q", i, h.Summary, wantOrder[i])
		}
	}

	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", len(skipped))
	}
	if skipped[0].Row != 2 || skipped[0].Skip != SkipMissingDate {
		t.Errorf("skipped[0] = row %d %s, want row 2 missing-date", skipped[0].Row, skipped[0].Skip)
	}
	if skipped[1].Row != 4 || skipped[1].Skip != SkipUnparseableDate {
		t.Errorf("skipped[1] = row %d %s, want row 4 unparseable-date", skipped[1].Row, skipped[1].Skip)
	}
}

func TestSkipReason_String(t *testing.T) {
	tests := map[SkipReason]string{
		SkipNone:            "none",
		SkipMissingDate:     "missing-date",
		SkipMissingName:     "missing-name",
		SkipUnparseableDate: "unparseable-date",
	}
	for reason, want := range tests {
		if got := reason.String(); got != want {
			t.Errorf("SkipReason(%d).String() = %q, want %q", int(reason), got, want)
		}
	}
}

func TestDescriptionSeparator(t *testing.T) {
	if !strings.Contains(DescriptionSeparator, "—") {
		t.Errorf("DescriptionSeparator = %q, want an em dash", DescriptionSeparator)
	}
}
