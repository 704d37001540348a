// Package render provides output renderers for ctsreport's console patterns.
package render

import "github.com/dkoosis/ctsreport/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// ForFormat returns the renderer for a resolved output format. info is only
// used by the JSON renderer. Unknown formats fall back to the plain LLM renderer.
func ForFormat(format string, theme Theme, width int, info ReportInfo) Renderer {
	switch format {
	case "terminal":
		return NewTerminal(theme, width)
	case "json":
		return NewJSON(info)
	default:
		return NewLLM()
	}
}
