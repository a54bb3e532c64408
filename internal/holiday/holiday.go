package holiday

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// Holiday is a normalized all-day calendar entry. End is exclusive and always
// one day after Start.
type Holiday struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// GenerateID creates a deterministic ID from the date and summary
func GenerateID(start time.Time, summary string) string {
	h := sha1.New()
	h.Write([]byte(start.Format("2006-01-02") + "|" + summary))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewHoliday creates a Holiday spanning the single day of start
func NewHoliday(summary, description string, start time.Time) *Holiday {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return &Holiday{
		ID:          GenerateID(day, summary),
		Summary:     summary,
		Description: description,
		Start:       day,
		End:         day.AddDate(0, 0, 1),
	}
}
