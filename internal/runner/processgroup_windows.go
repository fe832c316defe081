//go:build windows

package runner

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// resolveBeforeSpawn is off: cmd.exe builtins are not known to programName.
const resolveBeforeSpawn = false

func defaultShell() []string {
	return []string{"cmd", "/C"}
}

// configureProcessGroup starts the command in a new process group and makes
// context cancellation terminate the command and all of its descendants.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
	cmd.Cancel = func() error {
		return killProcessTree(cmd.Process)
	}
}

func killProcessTree(p *os.Process) error {
	if p == nil {
		return nil
	}
	// /T walks the child tree, which Process.Kill does not
	if err := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(p.Pid)).Run(); err != nil {
		return p.Kill()
	}
	return nil
}

func exitStatus(state *os.ProcessState) int {
	return state.ExitCode()
}
