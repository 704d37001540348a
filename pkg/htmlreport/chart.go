package htmlreport

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dkoosis/ctsreport/pkg/ctslog"
)

// Segment is one slice of the status breakdown.
type Segment struct {
	Label   string
	Class   ctslog.Class
	Count   int
	Percent float64
	Color   string // hex, without '#'
}

// Segments returns the non-empty status buckets in display order.
func Segments(s ctslog.Stats) []Segment {
	all := []Segment{
		{Label: "Pass", Class: ctslog.ClassPass, Count: s.Pass, Color: "22c55e"},
		{Label: "Fail", Class: ctslog.ClassFail, Count: s.Fail, Color: "f97373"},
		{Label: "Not Supported", Class: ctslog.ClassNotSupported, Count: s.NotSupported, Color: "eab308"},
		{Label: "Other", Class: ctslog.ClassOther, Count: s.Other, Color: "64748b"},
	}
	segs := all[:0]
	for _, seg := range all {
		if seg.Count == 0 {
			continue
		}
		seg.Percent = s.Percent(seg.Count)
		segs = append(segs, seg)
	}
	return segs
}

// PieChartSVG renders the status breakdown as an inline SVG pie chart.
// Returns an empty chart when there are no records.
func PieChartSVG(s ctslog.Stats) (template.HTML, error) {
	segs := Segments(s)
	if len(segs) == 0 {
		return "", nil
	}

	values := make([]chart.Value, 0, len(segs))
	for _, seg := range segs {
		values = append(values, chart.Value{
			Label: seg.Label,
			Value: float64(seg.Count),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(seg.Color),
				StrokeColor: drawing.ColorFromHex("0f172a"),
				StrokeWidth: 1,
				FontColor:   drawing.ColorFromHex("0f172a"),
				FontSize:    8,
			},
		})
	}

	pie := chart.PieChart{
		Width:      200,
		Height:     200,
		Values:     values,
		Background: chart.Style{FillColor: drawing.ColorTransparent},
		Canvas:     chart.Style{FillColor: drawing.ColorTransparent},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render pie chart: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // generated by go-chart from numeric input
}
