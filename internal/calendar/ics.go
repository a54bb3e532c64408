package calendar

import (
	"bytes"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/nepali-holidays/nepcal/internal/config"
	"github.com/nepali-holidays/nepcal/internal/holiday"
)

// UIDDomain is appended to every event UID
const UIDDomain = "nepcal"

// Meta is the calendar header
type Meta struct {
	Name        string
	Description string
	ProductID   string
	Version     string
}

// DefaultMeta returns the header used for the Nepali holidays calendar
func DefaultMeta() Meta {
	return MetaFromConfig(config.DefaultConfig().Calendar)
}

// MetaFromConfig copies the calendar section of a config
func MetaFromConfig(c config.Calendar) Meta {
	return Meta{
		Name:        c.Name,
		Description: c.Description,
		ProductID:   c.ProductID,
		Version:     c.Version,
	}
}

// Builder accumulates holidays into a calendar
type Builder struct {
	cal   *ics.Calendar
	stamp time.Time
	count int
}

// NewBuilder starts a calendar with meta. stamp becomes the DTSTAMP of every
// event; a fixed stamp makes the output reproducible.
func NewBuilder(meta Meta, stamp time.Time) *Builder {
	cal := ics.NewCalendar()
	cal.SetProductId(meta.ProductID)
	cal.SetVersion(meta.Version)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	if meta.Name != "" {
		cal.SetXWRCalName(meta.Name)
	}
	if meta.Description != "" {
		cal.SetXWRCalDesc(meta.Description)
	}

	return &Builder{cal: cal, stamp: stamp.UTC()}
}

// Add appends h as an all-day event
func (b *Builder) Add(h *holiday.Holiday) {
	b.count++

	event := b.cal.AddEvent(UID(b.count, h))
	event.SetDtStampTime(b.stamp)
	event.SetSummary(h.Summary)
	event.SetDescription(h.Description)
	event.SetAllDayStartAt(h.Start)
	event.SetAllDayEndAt(h.End)
}

// Len returns the number of events added
func (b *Builder) Len() int {
	return b.count
}

// Calendar returns the document built so far
func (b *Builder) Calendar() *ics.Calendar {
	return b.cal
}

// Build creates a calendar holding holidays in the given order
func Build(meta Meta, holidays []*holiday.Holiday, stamp time.Time) *ics.Calendar {
	b := NewBuilder(meta, stamp)
	for _, h := range holidays {
		b.Add(h)
	}
	return b.Calendar()
}

// Encode serializes cal to the iCalendar wire format with CRLF line endings
func Encode(cal *ics.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf, ics.WithNewLineWindows); err != nil {
		return nil, fmt.Errorf("encoding calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// UID identifies the n-th event (1-based). The position keeps duplicate
// holidays distinct while staying stable across identical runs. Holidays built
// without an ID are hashed from their date and summary.
func UID(n int, h *holiday.Holiday) string {
	id := h.ID
	if len(id) < 12 {
		id = holiday.GenerateID(h.Start, h.Summary)
	}
	return fmt.Sprintf("%d-%s@%s", n, id[:12], UIDDomain)
}
