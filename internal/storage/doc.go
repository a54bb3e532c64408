// Package storage writes the generated calendar to disk.
//
// The parent directory is created on demand and the file is written with a
// single call. The default location is public/nepali-holidays.ics.
package storage
