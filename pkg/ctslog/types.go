// Package ctslog extracts conformance test results from CTS logs and XML reports.
package ctslog

import "github.com/dkoosis/ctsreport/internal/detect"

// Status is the literal StatusCode reported for a test case.
type Status string

const (
	StatusPass         Status = "Pass"
	StatusFail         Status = "Fail"
	StatusNotSupported Status = "NotSupported"

	// StatusUnknown is used when a Result element carries no StatusCode.
	StatusUnknown Status = "UNKNOWN"
)

// UnknownCasePath is used when a TestCaseResult has no CasePath attribute.
const UnknownCasePath = "unknown"

// Class groups statuses for aggregation.
type Class string

const (
	ClassPass         Class = "Pass"
	ClassFail         Class = "Fail"
	ClassNotSupported Class = "NotSupported"
	ClassOther        Class = "Other"
)

// Class returns the aggregation bucket for s. Matching is case-sensitive.
func (s Status) Class() Class {
	switch s {
	case StatusPass:
		return ClassPass
	case StatusFail:
		return ClassFail
	case StatusNotSupported:
		return ClassNotSupported
	default:
		return ClassOther
	}
}

// Record is one parsed test case result.
type Record struct {
	CasePath       string
	DurationMicros int64
	Status         Status
	Message        string // raw Text content, not normalized
}

// Block is one TestCaseResult fragment as found in the input.
type Block struct {
	Data   []byte
	Offset int // byte offset of the fragment within the input
}

// Result is the outcome of parsing a whole input.
type Result struct {
	Format  detect.Format
	Records []Record
}
