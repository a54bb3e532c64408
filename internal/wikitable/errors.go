package wikitable

import (
	"errors"
	"fmt"
)

// ErrNoTableFound is returned when the page has no table with the wanted class
var ErrNoTableFound = errors.New("no wikitable found")

// ParseError reports markup that could not be turned into rows
type ParseError struct {
	Table  int // 1-based index of the table, 0 for the whole document
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Table > 0 {
		msg = fmt.Sprintf("table %d: %s", e.Table, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "parsing table: " + msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
