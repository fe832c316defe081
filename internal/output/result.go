package output

// Status is the verdict of a test or of a whole run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// TestResult is the judged result of one test.
type TestResult struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Score   int    `json:"score"`
}

// Summary is the record handed to result sinks. Consumers decode this exact
// shape, so fields must not be renamed.
type Summary struct {
	Status   Status        `json:"status"`
	MaxScore int           `json:"max_score"`
	Tests    []*TestResult `json:"tests"`
}

// NewSummary wraps a single test result into a run summary.
func NewSummary(result *TestResult, maxScore int) *Summary {
	return &Summary{
		Status:   result.Status,
		MaxScore: maxScore,
		Tests:    []*TestResult{result},
	}
}

// Passed reports whether every test in the summary passed.
func (s *Summary) Passed() bool {
	return s.Status == StatusPass
}
