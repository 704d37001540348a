package pattern

// TestTable represents test results with status and timing.
type TestTable struct {
	Label      string
	Results    []TestTableItem
	TotalCount int // total before truncation; 0 means len(Results)
}

// TestTableItem is a single test case result.
type TestTableItem struct {
	Name     string // case path
	Status   string // literal status code
	Duration string // formatted duration
	Details  string // diagnostic text
}

func (t *TestTable) Type() PatternType { return PatternTypeTestTable }
