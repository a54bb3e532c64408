// Package holiday turns scraped table rows into all-day holiday entries.
//
// A RawRow holds the cells of one table row keyed by their two-tier column header
// ("Date" / "Date (A.D.)"). Normalize applies the required-field gate, parses the
// Gregorian date leniently and composes the summary and description. Rows that
// cannot become a Holiday are reported as a Result carrying a SkipReason instead of
// an error, so a single bad row never aborts a run.
package holiday
