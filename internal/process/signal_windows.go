//go:build windows

package process

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureSysProcAttr starts the child in a new process group, which is
// required for it to receive a targeted console break event.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}

// interruptProcess sends a console break to the child's group and then
// terminates it right away. pyobs shuts down cleanly on the break event,
// and the hard stop afterwards is unconditional, so the returned bool is
// always true.
func interruptProcess(pid int) (bool, error) {
	if pid <= 0 {
		return false, nil
	}
	breakErr := windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(pid))
	if err := killProcess(pid); err != nil {
		return true, err
	}
	return true, breakErr
}

func killProcess(pid int) error {
	if pid <= 0 {
		return nil
	}
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		// The process is most likely gone already.
		return nil
	}
	defer windows.CloseHandle(h)
	return windows.TerminateProcess(h, 1)
}
