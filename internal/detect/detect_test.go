package detect

import "testing"

func TestSniff_XMLDocument(t *testing.T) {
	input := `<?xml version="1.0"?>
<BatchResult><TestCaseResult CasePath="a.b"/></BatchResult>`
	if got := Sniff([]byte(input)); got != XML {
		t.Errorf("expected XML, got %s", got)
	}
}

func TestSniff_LeadingWhitespace(t *testing.T) {
	input := "\n\t  <?xml version=\"1.0\"?><TestCaseResult CasePath=\"x\"/>"
	if got := Sniff([]byte(input)); got != XML {
		t.Errorf("expected XML with leading whitespace, got %s", got)
	}
}

func TestSniff_DeclarationWithoutMarker(t *testing.T) {
	input := `<?xml version="1.0"?><Other/>`
	if got := Sniff([]byte(input)); got != RawLog {
		t.Errorf("expected RawLog without marker, got %s", got)
	}
}

func TestSniff_MarkerInsideLog(t *testing.T) {
	input := "Test case 'a.b'..\n<?xml version=\"1.0\"?>\n<TestCaseResult CasePath=\"a.b\"></TestCaseResult>\n"
	if got := Sniff([]byte(input)); got != RawLog {
		t.Errorf("expected RawLog when log text precedes the declaration, got %s", got)
	}
}

func TestSniff_Empty(t *testing.T) {
	if got := Sniff(nil); got != RawLog {
		t.Errorf("expected RawLog for empty input, got %s", got)
	}
}

func TestFormat_Describe(t *testing.T) {
	if XML.Describe() != "pure XML input" {
		t.Errorf("unexpected XML description %q", XML.Describe())
	}
	if RawLog.Describe() != "raw CTS log input" {
		t.Errorf("unexpected raw log description %q", RawLog.Describe())
	}
}
