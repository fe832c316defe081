package judge

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/zinc-sig/specter/internal/config"
	"github.com/zinc-sig/specter/internal/output"
)

const (
	rule = "========================================"
	thin = "----------------------------------------"
)

// PrintPreExecution prints test details before execution
func PrintPreExecution(w io.Writer, cfg *config.TestConfig, dryRun bool) {
	header := "Specter Test Details"
	if dryRun {
		header = "Specter Test Details (DRY RUN)"
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Test:      %s\n", cfg.Name)
	if cfg.HasSetup() {
		fmt.Fprintf(w, "Setup:     %s\n", cfg.SetupCommand)
	}
	fmt.Fprintf(w, "Command:   %s\n", cfg.Command)
	fmt.Fprintf(w, "Timeout:   %s\n", cfg.Timeout)
	fmt.Fprintf(w, "Max Score: %d\n", cfg.MaxScore)
	fmt.Fprintln(w, thin)

	if dryRun {
		fmt.Fprintln(w, "[DRY RUN] Commands would be executed here")
	} else {
		fmt.Fprintln(w, "Command Output:")
	}
	fmt.Fprintln(w, thin)
}

// PrintPostExecution prints the verdict and per-phase execution details
func PrintPostExecution(w io.Writer, verdict *Verdict) {
	result := verdict.Result()

	fmt.Fprintln(w, thin)
	fmt.Fprintln(w, "Execution Results:")
	fmt.Fprintln(w, thin)
	for _, phase := range verdict.Phases {
		o := phase.Outcome
		switch {
		case o.SpawnErr != nil && o.ExitCode < 0:
			fmt.Fprintf(w, "%-8s not started\n", phase.Label+":")
		case o.TimedOut:
			fmt.Fprintf(w, "%-8s timed out after %d ms\n", phase.Label+":", o.Duration.Milliseconds())
		default:
			fmt.Fprintf(w, "%-8s exit code %d in %d ms\n", phase.Label+":", o.ExitCode, o.Duration.Milliseconds())
		}
	}
	fmt.Fprintf(w, "Status:  %s\n", statusColor(result.Status).Sprint(result.Status))
	fmt.Fprintf(w, "Score:   %d/%d\n", result.Score, verdict.Summary.MaxScore)
	fmt.Fprintln(w, rule)
}

func statusColor(s output.Status) *color.Color {
	if s == output.StatusPass {
		return color.New(color.FgGreen, color.Bold)
	}
	return color.New(color.FgRed, color.Bold)
}
