//go:build !windows

package command

import "os/exec"

// setRawCommandLine is a no-op: POSIX shells receive their arguments as is
func setRawCommandLine(_ *exec.Cmd, _ string) {}
