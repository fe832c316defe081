package judge

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/zinc-sig/specter/internal/config"
	"github.com/zinc-sig/specter/internal/output"
	"github.com/zinc-sig/specter/internal/runner"
)

// Executor runs one command line under a time budget.
type Executor interface {
	Execute(ctx context.Context, command string, timeout time.Duration) *runner.Outcome
}

// Phase labels.
const (
	PhaseSetup   = "setup"
	PhaseCommand = "command"
)

// Phase records one command that was executed while judging.
type Phase struct {
	Label   string
	Outcome *runner.Outcome
}

// Verdict is the summary of a judged test together with the raw outcomes
// that produced it.
type Verdict struct {
	Summary *output.Summary
	Phases  []Phase
}

// Result returns the single test result of the verdict.
func (v *Verdict) Result() *output.TestResult {
	return v.Summary.Tests[0]
}

// Run judges the configured test. A failing setup command short-circuits
// the run and the main command is never started.
func Run(ctx context.Context, cfg *config.TestConfig, exec Executor) *Verdict {
	verdict := &Verdict{}

	if cfg.HasSetup() {
		setup := exec.Execute(ctx, cfg.SetupCommand, cfg.Timeout)
		verdict.Phases = append(verdict.Phases, Phase{Label: PhaseSetup, Outcome: setup})
		if !setup.Succeeded() {
			result := Classify(cfg.Name, setup, cfg.Timeout)
			result.Score = 0
			verdict.Summary = output.NewSummary(result, cfg.MaxScore)
			return verdict
		}
	}

	outcome := exec.Execute(ctx, cfg.Command, cfg.Timeout)
	verdict.Phases = append(verdict.Phases, Phase{Label: PhaseCommand, Outcome: outcome})

	result := Classify(cfg.Name, outcome, cfg.Timeout)
	result.Score = Score(result.Status, cfg.MaxScore)
	verdict.Summary = output.NewSummary(result, cfg.MaxScore)
	return verdict
}

// Transcript concatenates the captured output of every phase, each under a
// header naming the phase and its command.
func (v *Verdict) Transcript() []byte {
	var buf bytes.Buffer
	for _, phase := range v.Phases {
		fmt.Fprintf(&buf, "=== %s: %s\n", phase.Label, phase.Outcome.Command)
		buf.Write(phase.Outcome.Output)
		if n := len(phase.Outcome.Output); n > 0 && phase.Outcome.Output[n-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
