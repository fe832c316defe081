//go:build !unix && !windows

package runner

import (
	"os"
	"os/exec"
)

// resolveBeforeSpawn enables the PATH lookup fast path in Execute.
const resolveBeforeSpawn = true

func defaultShell() []string {
	return []string{"/bin/sh", "-c"}
}

// configureProcessGroup kills only the shell on these platforms; they have
// no process groups to signal.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}

func exitStatus(state *os.ProcessState) int {
	return state.ExitCode()
}
