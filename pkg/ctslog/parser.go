package ctslog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type caseElement struct {
	Attrs   []xml.Attr      `xml:",any,attr"`
	Numbers []string        `xml:"Number"`
	Results []resultElement `xml:"Result"`
	Texts   []string        `xml:"Text"`
}

type resultElement struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// ParseBlock parses one fragment as a standalone element.
// CasePath, Number, Text and the StatusCode attribute fall back to defaults
// when absent; a missing Result element or a non-numeric Number is an error.
func ParseBlock(b Block) (Record, error) {
	var el caseElement
	if err := xml.Unmarshal(b.Data, &el); err != nil {
		return Record{}, &ParseError{Offset: b.Offset, Err: err}
	}

	rec := Record{CasePath: UnknownCasePath}
	if cp, ok := attr(el.Attrs, "CasePath"); ok {
		rec.CasePath = cp
	}

	raw := "0"
	if len(el.Numbers) > 0 {
		raw = el.Numbers[0]
	}
	d, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || d < 0 {
		return Record{}, &ParseError{
			Offset:   b.Offset,
			CasePath: rec.CasePath,
			Err:      fmt.Errorf("%w: %q", ErrInvalidDuration, raw),
		}
	}
	rec.DurationMicros = d

	if len(el.Results) == 0 {
		return Record{}, &ParseError{Offset: b.Offset, CasePath: rec.CasePath, Err: ErrMissingResult}
	}
	rec.Status = StatusUnknown
	if code, ok := attr(el.Results[0].Attrs, "StatusCode"); ok {
		rec.Status = Status(code)
	}

	if len(el.Texts) > 0 {
		rec.Message = el.Texts[0]
	}
	return rec, nil
}

// ParseBytes extracts and parses every record in data, preserving input order.
// Invalid UTF-8 bytes are dropped first; block offsets refer to the cleaned input.
// Returns ErrNoEntries when no blocks are found.
func ParseBytes(data []byte) (Result, error) {
	data = bytes.ToValidUTF8(data, nil)
	blocks, format, err := Extract(data)
	if err != nil {
		return Result{Format: format}, err
	}
	if len(blocks) == 0 {
		return Result{Format: format}, ErrNoEntries
	}
	records := make([]Record, 0, len(blocks))
	for _, b := range blocks {
		rec, err := ParseBlock(b)
		if err != nil {
			return Result{Format: format}, err
		}
		records = append(records, rec)
	}
	return Result{Format: format, Records: records}, nil
}

// ReadFile reads and parses the input file at path.
func ReadFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return Result{}, fmt.Errorf("read input: %w", err)
	}
	return ParseBytes(data)
}
