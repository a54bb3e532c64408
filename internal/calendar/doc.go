// Package calendar assembles holidays into an iCalendar document.
//
// The document carries fixed header metadata (PRODID, VERSION, X-WR-CALNAME,
// X-WR-CALDESC) and one all-day VEVENT per holiday, in the order the holidays were
// added. Encoding is delegated to github.com/arran4/golang-ical.
package calendar
