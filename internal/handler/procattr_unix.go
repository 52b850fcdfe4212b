//go:build !windows

package handler

import (
	"os/exec"
	"syscall"
)

// detach 放入独立进程组: 终端 Ctrl+C 不会打断正在运行的处理程序
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
