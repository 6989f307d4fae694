package cueparse

import (
	"errors"
	"fmt"
)

// ErrMissingTimestamp is returned for a unit that does not open with a
// timestamp marker
var ErrMissingTimestamp = errors.New("no timestamp found in line")

// ParseError locates a malformed logical unit
type ParseError struct {
	Index int // zero-based unit index, -1 when parsing a single unit
	Unit  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("unit %d %q: %v", e.Index+1, preview(e.Unit), e.Err)
	}
	return fmt.Sprintf("unit %q: %v", preview(e.Unit), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func preview(s string) string {
	const max = 60
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
