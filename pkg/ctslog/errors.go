package ctslog

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEntries is returned when the input contains no TestCaseResult blocks.
	ErrNoEntries = errors.New("no TestCaseResult entries found")

	// ErrInputNotFound is returned by ReadFile when the input path does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrMissingResult is returned for a block without a Result element.
	ErrMissingResult = errors.New("missing Result element")

	// ErrInvalidDuration is returned when the Number field is not an integer.
	ErrInvalidDuration = errors.New("invalid duration")
)

// ParseError is a structural error in the input. It aborts the run.
type ParseError struct {
	Offset   int    // byte offset of the offending block, -1 for document-level errors
	CasePath string // empty when unknown
	Err      error
}

func (e *ParseError) Error() string {
	switch {
	case e.CasePath != "":
		return fmt.Sprintf("parse %s (offset %d): %v", e.CasePath, e.Offset, e.Err)
	case e.Offset >= 0:
		return fmt.Sprintf("parse block at offset %d: %v", e.Offset, e.Err)
	default:
		return fmt.Sprintf("parse document: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
