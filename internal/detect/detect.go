// Package detect sniffs CTS input to determine how records should be extracted.
package detect

import "bytes"

// Format represents a recognized input format.
type Format int

const (
	RawLog Format = iota // unstructured log text with embedded TestCaseResult fragments
	XML                  // well-formed XML document containing TestCaseResult elements
)

// Marker is the opening of the element every test record is wrapped in.
const Marker = "<TestCaseResult"

const xmlDecl = "<?xml"

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	default:
		return "raw-log"
	}
}

// Describe returns the phrase used in the detection info line.
func (f Format) Describe() string {
	if f == XML {
		return "pure XML input"
	}
	return "raw CTS log input"
}

// Sniff examines the input to determine format.
// XML is chosen only when the marker is present and the trimmed input starts
// with an XML declaration. Everything else is treated as a raw log.
func Sniff(data []byte) Format {
	if !bytes.Contains(data, []byte(Marker)) {
		return RawLog
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(xmlDecl)) {
		return XML
	}
	return RawLog
}
