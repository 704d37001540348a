package render

import (
	"encoding/json"

	"github.com/dkoosis/ctsreport/pkg/pattern"
)

// SchemaVersion is stamped into every JSON document.
const SchemaVersion = "1.0"

// ReportInfo identifies the HTML report a summary belongs to.
type ReportInfo struct {
	ID          string   `json:"id"`
	InputFormat string   `json:"input_format"` // "xml" or "raw-log"
	Files       []string `json:"files"`        // written HTML files, page order
}

// JSON renders the summary and report metadata as one JSON document.
type JSON struct {
	info ReportInfo
}

// NewJSON creates a JSON renderer for the given report.
func NewJSON(info ReportInfo) *JSON {
	return &JSON{info: info}
}

type jsonDocument struct {
	Version  string        `json:"version"`
	Report   ReportInfo    `json:"report"`
	Sections []jsonSection `json:"sections"`
}

type jsonSection struct {
	Type pattern.PatternType `json:"type"`
	Data pattern.Pattern     `json:"data"`
}

// Render formats all patterns as JSON. Marshal failures are reported as
// {"error": ...} so the output stays machine-readable.
func (j *JSON) Render(patterns []pattern.Pattern) string {
	doc := jsonDocument{
		Version:  SchemaVersion,
		Report:   j.info,
		Sections: make([]jsonSection, 0, len(patterns)),
	}
	if doc.Report.Files == nil {
		doc.Report.Files = []string{}
	}
	for _, p := range patterns {
		doc.Sections = append(doc.Sections, jsonSection{Type: p.Type(), Data: p})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON) + "\n"
	}
	return string(data) + "\n"
}
