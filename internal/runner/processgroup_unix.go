//go:build unix

package runner

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// resolveBeforeSpawn enables the PATH lookup fast path in Execute.
const resolveBeforeSpawn = true

func defaultShell() []string {
	return []string{"/bin/sh", "-c"}
}

// configureProcessGroup starts the command as the leader of a new process
// group and makes context cancellation kill every member of that group.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return killProcessGroup(cmd.Process)
	}
}

func killProcessGroup(p *os.Process) error {
	if p == nil {
		return nil
	}
	err := unix.Kill(-p.Pid, unix.SIGKILL)
	if errors.Is(err, unix.ESRCH) {
		return os.ErrProcessDone
	}
	if err != nil {
		// Fall back to the leader alone if the group is gone or not ours.
		return p.Kill()
	}
	return nil
}

// exitStatus maps a terminating signal to the conventional 128+n status.
func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
