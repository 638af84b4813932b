//go:build !windows

package process

import (
	"errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureSysProcAttr puts the child in its own process group so terminal
// signals aimed at the launcher never reach it, and so shutdown signals hit
// anything pyobs spawned as well.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// interruptProcess sends SIGTERM to the child's process group. It never
// kills outright, so the returned bool is always false.
func interruptProcess(pid int) (bool, error) {
	return false, signalGroup(pid, unix.SIGTERM)
}

func killProcess(pid int) error {
	return signalGroup(pid, unix.SIGKILL)
}

// signalGroup signals the group led by pid, falling back to the process
// alone when the group is already gone.
func signalGroup(pid int, sig unix.Signal) error {
	if pid <= 0 {
		return nil
	}
	err := unix.Kill(-pid, sig)
	if errors.Is(err, unix.ESRCH) {
		err = unix.Kill(pid, sig)
	}
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}
