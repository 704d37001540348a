package ctslog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"

	"github.com/dkoosis/ctsreport/internal/detect"
)

const elementName = "TestCaseResult"

// fragmentRE matches one TestCaseResult block in raw log text. It is
// non-greedy, so a literal closing tag inside a field ends the match early.
var fragmentRE = regexp.MustCompile(`(?s)<TestCaseResult[^>]*>.*?</TestCaseResult>`)

// Extract locates every TestCaseResult block in data using the variant
// selected by detect.Sniff. A document sniffed as XML that fails to parse
// is an error; it is never retried as a raw log.
func Extract(data []byte) ([]Block, detect.Format, error) {
	format := detect.Sniff(data)
	switch format {
	case detect.XML:
		blocks, err := extractXML(data)
		return blocks, format, err
	default:
		return extractRawLog(data), format, nil
	}
}

// extractRawLog scans unstructured text for embedded fragments. Fragments need
// not share a common root.
func extractRawLog(data []byte) []Block {
	locs := fragmentRE.FindAllIndex(data, -1)
	blocks := make([]Block, 0, len(locs))
	for _, loc := range locs {
		blocks = append(blocks, Block{Data: data[loc[0]:loc[1]], Offset: loc[0]})
	}
	return blocks
}

// extractXML walks a well-formed document and collects TestCaseResult
// elements at any depth, in document order. The whole document is read so
// that trailing malformed content is still reported.
func extractXML(data []byte) ([]Block, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		blocks []Block
		depth  int
		roots  int
	)
	for {
		start := int(dec.InputOffset())
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if roots == 0 {
				return nil, &ParseError{Offset: -1, Err: errNoRoot}
			}
			return blocks, nil
		}
		if err != nil {
			return nil, &ParseError{Offset: -1, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return nil, &ParseError{Offset: start, Err: errExtraRoot}
				}
			}
			if t.Name.Local != elementName {
				depth++
				continue
			}
			if err := dec.Skip(); err != nil {
				return nil, &ParseError{Offset: start, Err: err}
			}
			end := int(dec.InputOffset())
			blocks = append(blocks, Block{Data: data[start:end], Offset: start})
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, &ParseError{Offset: start, Err: errTextOutsideRoot}
			}
		}
	}
}

var (
	errNoRoot          = errors.New("document has no root element")
	errExtraRoot       = errors.New("junk after document element")
	errTextOutsideRoot = errors.New("text outside document element")
)
