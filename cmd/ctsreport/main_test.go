package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- End-to-end tests ---
// These exercise the full pipeline: file → detect → parse → aggregate → HTML → summary.

const threeCaseLog = `Test case 'dEQP-VK.a'..
<TestCaseResult CasePath="dEQP-VK.a"><Number>100</Number><Result StatusCode="Pass"/><Text></Text></TestCaseResult>
  Pass (ok)
Test case 'dEQP-VK.b'..
<TestCaseResult CasePath="dEQP-VK.b"><Number>200</Number><Result StatusCode="Fail"/><Text>boom</Text></TestCaseResult>
  Fail (boom)
Test case 'dEQP-VK.c'..
<TestCaseResult CasePath="dEQP-VK.c"><Number>300</Number><Result StatusCode="NotSupported"/><Text></Text></TestCaseResult>
`

// sandbox runs the test in an empty working directory with no config file
// and no ctsreport environment overrides.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{"CTSREPORT_OUT_DIR", "CTSREPORT_PAGE_SIZE", "CTSREPORT_THEME", "CTSREPORT_DEBUG", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	return name
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_RawLogThreeCases(t *testing.T) {
	sandbox(t)
	in := writeInput(t, "results.log", threeCaseLog)

	code, stdout, stderr := runCLI(in, "report.html")

	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "[INFO] Detected raw CTS log input\n")
	assert.Contains(t, stdout, "[OK] HTML report saved to: "+filepath.Join("cts_report", "report_page_1.html"))
	assert.Contains(t, stdout, "Total tests:      3\n")
	assert.Contains(t, stdout, "Passed:           1 (33.3%)\n")
	assert.Contains(t, stdout, "Failed:           1 (33.3%)\n")
	assert.Contains(t, stdout, "Not Supported:    1 (33.3%)\n")
	assert.NotContains(t, stdout, "Other:")
	assert.Contains(t, stdout, "Total Duration:   0.60ms\n")
	assert.Contains(t, stdout, "Average Duration: 200 µs/test\n")

	page, err := os.ReadFile(filepath.Join("cts_report", "report_page_1.html"))
	require.NoError(t, err)
	html := string(page)
	a, b, c := strings.Index(html, "dEQP-VK.a"), strings.Index(html, "dEQP-VK.b"), strings.Index(html, "dEQP-VK.c")
	assert.True(t, a >= 0 && a < b && b < c, "rows must keep log order")
	assert.NoFileExists(t, filepath.Join("cts_report", "report_page_2.html"))
}

func TestRun_XMLInput(t *testing.T) {
	sandbox(t)
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<BatchResult><Group>
<TestCaseResult CasePath="dEQP-VK.x"><Number>5</Number><Result StatusCode="Pass"/></TestCaseResult>
</Group></BatchResult>`
	in := writeInput(t, "results.xml", doc)

	code, stdout, stderr := runCLI("--single", in, "out/single.html")

	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "[INFO] Detected pure XML input\n")
	assert.Contains(t, stdout, "[OK] HTML report saved to: out/single.html")
	assert.FileExists(t, filepath.Join("out", "single.html"))
	assert.NoDirExists(t, "cts_report")
}

func TestRun_Pagination(t *testing.T) {
	sandbox(t)
	var sb strings.Builder
	for i := range 250 {
		fmt.Fprintf(&sb, `<TestCaseResult CasePath="dEQP-VK.case.%d"><Number>%d</Number><Result StatusCode="Pass"/></TestCaseResult>`+"\n", i, i)
	}
	in := writeInput(t, "big.log", sb.String())

	code, _, stderr := runCLI("--out-dir", "pages", in, "big.html")

	require.Equal(t, 0, code, "stderr: %s", stderr)
	for n := 1; n <= 3; n++ {
		assert.FileExists(t, filepath.Join("pages", fmt.Sprintf("big_page_%d.html", n)))
	}
	assert.NoFileExists(t, filepath.Join("pages", "big_page_4.html"))
}

func TestRun_NonNumericDurationWritesNothing(t *testing.T) {
	sandbox(t)
	in := writeInput(t, "bad.log",
		`<TestCaseResult CasePath="dEQP-VK.bad"><Number>fast</Number><Result StatusCode="Pass"/></TestCaseResult>`)

	code, _, stderr := runCLI(in, "report.html")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "ctsreport: ")
	assert.Contains(t, stderr, "dEQP-VK.bad")
	assert.NoDirExists(t, "cts_report")
	assert.NoFileExists(t, "report.html")
}

func TestRun_NoEntries(t *testing.T) {
	sandbox(t)
	in := writeInput(t, "empty.log", "nothing to see here\n")

	code, stdout, stderr := runCLI(in, "report.html")

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "[INFO] Detected raw CTS log input")
	assert.Contains(t, stderr, "no TestCaseResult entries found")
	assert.NoDirExists(t, "cts_report")
}

func TestRun_InputNotFound(t *testing.T) {
	sandbox(t)

	code, stdout, stderr := runCLI("missing.log", "report.html")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "input file not found: missing.log")
	assert.NotContains(t, stdout, "[INFO]")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no args", args: nil},
		{name: "one arg", args: []string{"in.log"}},
		{name: "three args", args: []string{"a", "b", "c"}},
		{name: "unknown flag", args: []string{"--nope", "a", "b"}},
		{name: "bad format", args: []string{"--format", "xml", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sandbox(t)
			code, _, stderr := runCLI(tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr, "Usage: ctsreport")
		})
	}
}

func TestRun_JSONSummary(t *testing.T) {
	sandbox(t)
	in := writeInput(t, "results.log", threeCaseLog)

	code, stdout, _ := runCLI("--format", "json", "--single", in, "r.html")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"type": "summary"`)
	assert.Contains(t, stdout, `"type": "leaderboard"`)
	assert.Contains(t, stdout, `"input_format": "raw-log"`)
	assert.Contains(t, stdout, `"files": [`)
	assert.Regexp(t, `"id": "[0-9A-Z]{26}"`, stdout)
}

func TestTermWidth_DefaultsForNonTerminal(t *testing.T) {
	assert.Equal(t, 80, termWidth(&bytes.Buffer{}))
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI("version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "ctsreport "))
}

func TestRun_DebugLogsPages(t *testing.T) {
	sandbox(t)
	in := writeInput(t, "results.log", threeCaseLog)

	code, stdout, _ := runCLI("--debug", in, "report.html")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "[DEBUG] wrote page")
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "llm", resolveFormat("auto", &buf))
	assert.Equal(t, "json", resolveFormat("json", &buf))
	assert.Equal(t, "terminal", resolveFormat("terminal", &buf))
}
