//go:build !linux && !windows

package process

import "errors"

// There is no portable way to wait without reaping here, so the handle is
// marked as reaping only once stderr has closed.
func waitExit(int) error {
	return errWaitUnsupported
}
