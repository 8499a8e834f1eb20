//go:build windows

package command

import (
	"os/exec"
	"syscall"
)

// setRawCommandLine bypasses Go's argument escaping, which uses backslashes
// that cmd.exe does not understand
func setRawCommandLine(c *exec.Cmd, cmdLine string) {
	if c.SysProcAttr == nil {
		c.SysProcAttr = &syscall.SysProcAttr{}
	}
	c.SysProcAttr.CmdLine = cmdLine
}
