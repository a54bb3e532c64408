package holiday

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// ErrUnparseableDate is returned when no known layout matches the date text
var ErrUnparseableDate = errors.New("unparseable date")

// DateParser turns free-form date text into a calendar date
type DateParser interface {
	Parse(text string) (time.Time, error)
}

// DateParserFunc adapts a function to DateParser
type DateParserFunc func(text string) (time.Time, error)

// Parse calls f(text)
func (f DateParserFunc) Parse(text string) (time.Time, error) {
	return f(text)
}

// Layouts carrying a year. Month-only layouts start on the first of the month.
var datedLayouts = []string{
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006 January 2",
	"2-January-2006",
	"2-Jan-2006",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1-2-2006",
	"2.1.2006",
	"January 2006",
	"Jan 2006",
}

// Layouts without a year; the year comes from the parser's clock
var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
}

var (
	footnotePattern = regexp.MustCompile(`\[[^\]]*\]`)
	weekdayPattern  = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)\b`)
	ordinalPattern  = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	abbrevDot       = regexp.MustCompile(`([A-Za-z]{3,})\.`)
	septPattern     = regexp.MustCompile(`(?i)\bsept\b`)
	ofPattern       = regexp.MustCompile(`(?i)\bof\b`)
)

// Natural-language fallback; parseNatural restricts it to English so that
// month names of other calendars are not mistaken for Gregorian ones
var fallbackParser = &dps.Parser{}

// LenientParser parses the date spellings found in holiday tables:
// "14 April 2026", "April 14, 2026", "Tue, 14 Apr", "14th of April", "May 1",
// "2026-04-14", "14.04.2026". Text no layout matches goes through go-dateparser.
// Dates without a year are placed in the year reported by Now.
type LenientParser struct {
	Now func() time.Time
}

// NewLenientParser returns a parser using the wall clock
func NewLenientParser() *LenientParser {
	return &LenientParser{Now: time.Now}
}

// Parse returns the date at UTC midnight
func (p *LenientParser) Parse(text string) (time.Time, error) {
	cleaned := cleanDateText(text)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, text)
	}

	for _, layout := range datedLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		year := p.now().Year()
		d := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// Feb 29 in a non-leap year rolls over; reject it
		if d.Month() != t.Month() || d.Day() != t.Day() {
			return time.Time{}, fmt.Errorf("%w: %q does not exist in %d", ErrUnparseableDate, text, year)
		}
		return d, nil
	}

	return p.parseNatural(text, cleaned)
}

// parseNatural hands text to go-dateparser, anchored on the parser's clock
func (p *LenientParser) parseNatural(text, cleaned string) (time.Time, error) {
	cfg := &dps.Configuration{
		Languages:           []string{"en"},
		CurrentTime:         p.now(),
		DefaultTimezone:     time.UTC,
		PreferredDayOfMonth: dps.First,
	}
	dt, err := fallbackParser.Parse(cfg, cleaned)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, text)
	}
	t := dt.Time
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (p *LenientParser) now() time.Time {
	if p == nil || p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// cleanDateText strips footnote markers, weekday names, ordinal suffixes and
// punctuation so the text can be matched against plain layouts
func cleanDateText(text string) string {
	s := footnotePattern.ReplaceAllString(text, " ")
	s = weekdayPattern.ReplaceAllString(s, " ")
	s = ordinalPattern.ReplaceAllString(s, "$1")
	s = abbrevDot.ReplaceAllString(s, "$1")
	s = septPattern.ReplaceAllString(s, "Sep")
	s = ofPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ",", " ")
	return strings.Join(strings.Fields(s), " ")
}
