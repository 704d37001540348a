// Package message turns raw CTS diagnostic text into display-ready HTML.
package message

import (
	"bytes"
	"encoding/json"
	"html"
	"html/template"
	"strings"
	"unicode/utf8"
)

// Kind identifies how a normalized message is presented.
type Kind int

const (
	Empty   Kind = iota
	Inline       // short single-line text, shown as-is
	Details      // multi-line or long text in a collapsible block
	JSON         // pretty-printed JSON in a collapsible block
)

func (k Kind) String() string {
	switch k {
	case Inline:
		return "inline"
	case Details:
		return "details"
	case JSON:
		return "json"
	default:
		return "empty"
	}
}

// MaxInlineLength is the longest text rendered without a collapsible wrapper.
const MaxInlineLength = 100

// Message is a normalized diagnostic. Text is plain (unescaped) text.
type Message struct {
	Kind Kind
	Text string
}

// Normalize decodes escapes, dedents, and classifies raw. It never fails:
// undecodable escapes and invalid JSON degrade to plain text handling.
func Normalize(raw string) Message {
	if raw == "" {
		return Message{Kind: Empty}
	}

	text, err := Unescape(raw)
	if err != nil {
		text = replaceBasicEscapes(raw)
	}
	text = strings.TrimSpace(Dedent(text))

	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(text), "", "  "); err == nil {
			return Message{Kind: JSON, Text: buf.String()}
		}
	}

	if strings.ContainsAny(text, "\n\t") || utf8.RuneCountInString(text) > MaxInlineLength {
		return Message{Kind: Details, Text: text}
	}
	return Message{Kind: Inline, Text: text}
}

// HTML renders the message for a table cell. All text is escaped.
func (m Message) HTML() template.HTML {
	escaped := html.EscapeString(m.Text)
	switch m.Kind {
	case Empty:
		return ""
	case JSON:
		return template.HTML(`<details class="message-details"><summary>View JSON</summary><pre class="message-pre message-json">` +
			escaped + `</pre></details>`)
	case Details:
		return template.HTML(`<details class="message-details"><summary>View details</summary><pre class="message-pre">` +
			escaped + `</pre></details>`)
	default:
		return template.HTML(escaped) //nolint:gosec // escaped above
	}
}

// Collapsible reports whether the message renders inside a details block.
func (m Message) Collapsible() bool {
	return m.Kind == Details || m.Kind == JSON
}

func replaceBasicEscapes(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "\r").Replace(s)
}
