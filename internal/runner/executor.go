package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultWaitDelay bounds how long Execute waits for inherited output pipes
// to close after the process group has been killed.
const DefaultWaitDelay = 2 * time.Second

// Runner executes shell command lines.
type Runner struct {
	Shell     []string  // shell prefix, defaults to the platform shell
	Dir       string    // working directory, empty means current
	Env       []string  // environment, nil means inherit
	Echo      io.Writer // optional live copy of the combined output
	WaitDelay time.Duration
}

// Outcome is the raw result of one command execution.
type Outcome struct {
	Command  string
	ExitCode int // -1 when the process did not exit on its own
	Stdout   []byte
	Stderr   []byte
	Output   []byte // stdout and stderr interleaved in arrival order
	TimedOut bool
	SpawnErr error // the program could not be started or found
	Duration time.Duration
}

// Exited reports whether the process ran and returned an exit status.
func (o *Outcome) Exited() bool {
	return o.SpawnErr == nil && !o.TimedOut && o.ExitCode >= 0
}

// Succeeded reports a clean zero exit within the time budget.
func (o *Outcome) Succeeded() bool {
	return o.Exited() && o.ExitCode == 0
}

// ExecutableNotFoundError is reported when the program named by a command
// line cannot be resolved.
type ExecutableNotFoundError struct {
	Name string
	Err  error
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("Unable to locate executable file: %s. Please verify either the file path exists "+
		"or the file can be found within a directory specified by the PATH environment variable.", e.Name)
}

func (e *ExecutableNotFoundError) Unwrap() error { return e.Err }

// lockedBuffer is shared by the stdout and stderr copiers.
type lockedBuffer struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	echo io.Writer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.echo != nil {
		_, _ = b.echo.Write(p)
	}
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

// Execute runs command through the shell and waits until it exits or the
// timeout elapses. On timeout the whole process group is killed before
// Execute returns. Execute never returns a nil Outcome.
func (r *Runner) Execute(ctx context.Context, command string, timeout time.Duration) *Outcome {
	outcome := &Outcome{Command: command, ExitCode: -1}

	if timeout <= 0 {
		outcome.TimedOut = true
		return outcome
	}

	if name, ok := programName(command); ok && r.canResolve() {
		path := name
		if r.Dir != "" && strings.ContainsRune(name, '/') && !filepath.IsAbs(name) {
			path = filepath.Join(r.Dir, name)
		}
		if _, err := exec.LookPath(path); err != nil && !errors.Is(err, exec.ErrDot) {
			outcome.SpawnErr = &ExecutableNotFoundError{Name: name, Err: err}
			return outcome
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	shell := r.Shell
	if len(shell) == 0 {
		shell = defaultShell()
	}
	cmd := exec.CommandContext(ctx, shell[0], append(shell[1:], command)...)
	cmd.Dir = r.Dir
	cmd.Env = r.Env
	configureProcessGroup(cmd)
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	var stdout, stderr bytes.Buffer
	combined := &lockedBuffer{echo: r.Echo}
	cmd.Stdout = io.MultiWriter(&stdout, combined)
	cmd.Stderr = io.MultiWriter(&stderr, combined)

	startTime := time.Now()
	err := cmd.Start()
	if err != nil {
		outcome.SpawnErr = startError(shell[0], err)
		return outcome
	}
	err = cmd.Wait()
	outcome.Duration = time.Since(startTime)

	outcome.Stdout = stdout.Bytes()
	outcome.Stderr = stderr.Bytes()
	outcome.Output = combined.Bytes()

	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		outcome.TimedOut = true
		return outcome
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// I/O errors after a successful start still carry a process state.
			if cmd.ProcessState == nil {
				outcome.SpawnErr = fmt.Errorf("failed to wait for command: %w", err)
				return outcome
			}
		}
	}
	outcome.ExitCode = exitStatus(cmd.ProcessState)

	// 127 is the shell's "command not found" status
	if outcome.ExitCode == 127 {
		if name, ok := notFoundName(outcome.Stderr); ok {
			outcome.SpawnErr = &ExecutableNotFoundError{Name: name, Err: exec.ErrNotFound}
		}
	}
	return outcome
}

// canResolve reports whether a PATH lookup from this process resolves
// programs the way the shell started by r will.
func (r *Runner) canResolve() bool {
	if !resolveBeforeSpawn || r.Env != nil {
		return false
	}
	return r.Dir == "" || !relativeSearchPath()
}

func startError(shell string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return &ExecutableNotFoundError{Name: shell, Err: err}
	}
	return fmt.Errorf("failed to start command: %w", err)
}
