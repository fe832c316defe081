package judge

import (
	"fmt"
	"strings"
	"time"

	"github.com/zinc-sig/specter/internal/output"
	"github.com/zinc-sig/specter/internal/runner"
)

// Classify turns an execution outcome into a test result. The score is
// left at zero; see Score.
func Classify(name string, outcome *runner.Outcome, budget time.Duration) *output.TestResult {
	result := &output.TestResult{Name: name, Status: output.StatusFail}
	captured := string(outcome.Output)

	switch {
	case outcome.SpawnErr != nil:
		result.Message = outcome.SpawnErr.Error()
	case outcome.TimedOut:
		result.Message = withOutput(fmt.Sprintf("Command timed out after %s", formatBudget(budget)), captured)
	case outcome.ExitCode != 0:
		result.Message = withOutput(fmt.Sprintf("%s failed with exit code %d", outcome.Command, outcome.ExitCode), captured)
	default:
		result.Status = output.StatusPass
		result.Message = captured
	}

	return result
}

func withOutput(headline, captured string) string {
	if strings.TrimSpace(captured) == "" {
		return headline
	}
	return headline + "\n" + captured
}

func formatBudget(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Millisecond).String()
}
