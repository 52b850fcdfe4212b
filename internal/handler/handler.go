package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/Hara602/usbDock/internal/model"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
)

// Invoker 调用外部处理程序, 阻塞直到进程退出
type Invoker interface {
	// Invoke 返回进程退出码; 进程无法启动时返回 -1 和错误
	Invoke(ctx context.Context, device string, action model.DockAction) (int, error)
}

// ExecInvoker 通过 os/exec 执行 <Path> <device> <action>
type ExecInvoker struct {
	Path   string
	Stdout io.Writer
	Stderr io.Writer
	Log    *zap.Logger
}

func NewExecInvoker(path string, log *zap.Logger) *ExecInvoker {
	return &ExecInvoker{
		Path:   path,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log,
	}
}

// Args 处理程序的参数列表, 恰好两个位置参数
func Args(device string, action model.DockAction) []string {
	return []string{device, string(action)}
}

func (e *ExecInvoker) Invoke(ctx context.Context, device string, action model.DockAction) (int, error) {
	args := Args(device, action)
	if e.Log != nil {
		e.Log.Debug("running handler", zap.String("cmd", shellquote.Join(append([]string{e.Path}, args...)...)))
	}

	cmd := exec.CommandContext(ctx, e.Path, args...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	detach(cmd)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("run %s: %w", e.Path, err)
	}
	return 0, nil
}
