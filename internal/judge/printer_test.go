package judge

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/zinc-sig/specter/internal/config"
	"github.com/zinc-sig/specter/internal/output"
	"github.com/zinc-sig/specter/internal/runner"
)

func TestPrintPreExecution(t *testing.T) {
	cfg := &config.TestConfig{Name: "Test 1", Command: "make test", SetupCommand: "make deps", Timeout: 30 * time.Second, MaxScore: 10}

	var buf bytes.Buffer
	PrintPreExecution(&buf, cfg, true)
	out := buf.String()

	for _, want := range []string{"(DRY RUN)", "Test:      Test 1", "Setup:     make deps", "Command:   make test", "Timeout:   30s", "Max Score: 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPostExecution(t *testing.T) {
	verdict := &Verdict{
		Summary: output.NewSummary(&output.TestResult{Name: "t", Status: output.StatusFail}, 10),
		Phases: []Phase{
			{Label: PhaseSetup, Outcome: &runner.Outcome{ExitCode: 0, Duration: 20 * time.Millisecond}},
			{Label: PhaseCommand, Outcome: &runner.Outcome{ExitCode: -1, TimedOut: true, Duration: time.Second}},
		},
	}

	var buf bytes.Buffer
	PrintPostExecution(&buf, verdict)
	out := buf.String()

	for _, want := range []string{"setup:   exit code 0 in 20 ms", "command: timed out after 1000 ms", "fail", "Score:   0/10"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPostExecutionNotFound(t *testing.T) {
	notFound := &runner.ExecutableNotFoundError{Name: "gcc-99"}
	verdict := &Verdict{
		Summary: output.NewSummary(&output.TestResult{Name: "t", Status: output.StatusFail}, 0),
		Phases: []Phase{
			{Label: PhaseSetup, Outcome: &runner.Outcome{ExitCode: -1, SpawnErr: notFound}},
			{Label: PhaseCommand, Outcome: &runner.Outcome{ExitCode: 127, SpawnErr: notFound, Duration: 5 * time.Millisecond}},
		},
	}

	var buf bytes.Buffer
	PrintPostExecution(&buf, verdict)
	out := buf.String()

	for _, want := range []string{"setup:   not started", "command: exit code 127 in 5 ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
