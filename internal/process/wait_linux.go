//go:build linux

package process

import (
	"errors"

	"golang.org/x/sys/unix"
)

// waitExit blocks until pid has exited without reaping it. The pid stays
// reserved as a zombie until exec.Cmd.Wait collects it.
func waitExit(pid int) error {
	var info unix.Siginfo
	for {
		err := unix.Waitid(unix.P_PID, pid, &info, unix.WEXITED|unix.WNOWAIT, nil)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}
