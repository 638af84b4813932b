//go:build windows

package process

import "golang.org/x/sys/windows"

// waitExit blocks until pid has exited. The handle held by exec.Cmd keeps
// the pid from being reused until Wait releases it.
func waitExit(pid int) error {
	h, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)
	_, err = windows.WaitForSingleObject(h, windows.INFINITE)
	return err
}
