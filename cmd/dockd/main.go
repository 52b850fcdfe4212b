package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hara602/usbDock/internal/analysis"
	"github.com/Hara602/usbDock/internal/config"
	"github.com/Hara602/usbDock/internal/handler"
	"github.com/Hara602/usbDock/internal/monitor"
	"github.com/Hara602/usbDock/internal/sysutil"
	"github.com/Hara602/usbDock/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// agent 运行所需的依赖, 测试中可替换
type agent struct {
	watcher watcher.DeviceWatcher
	invoker handler.Invoker
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "dockd",
		Short:         "Run the dock handler on USB hotplug events",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := sysutil.InitLogger(cfg.LogLevel); err != nil {
				return err
			}
			defer sysutil.Log.Sync()

			a, err := build(cfg)
			if err != nil {
				return err
			}

			// 捕获操作系统信号，优雅关闭
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.run(ctx)
		},
	}
}

// build 构造阶段: 只创建对象, 不打开事件源
func build(cfg *config.Config) (*agent, error) {
	log := sysutil.Log

	if !sysutil.IsRoot() {
		log.Warn("not running as root, netlink access may be denied")
	}

	if info, err := analysis.InspectHandler(cfg.Handler); err != nil {
		log.Warn("handler preflight failed", zap.String("handler", cfg.Handler), zap.Error(err))
	} else {
		log.Info("handler",
			zap.String("path", info.Path),
			zap.String("kind", info.Kind),
			zap.String("interpreter", info.Interpreter),
			zap.Bool("executable", info.Executable),
		)
	}

	w, err := watcher.New(cfg.Backend, cfg.Subsystem)
	if err != nil {
		return nil, err
	}
	return &agent{
		watcher: w,
		invoker: handler.NewExecInvoker(cfg.Handler, log),
		log:     log,
	}, nil
}

// run 运行阶段: 打开事件源失败直接返回错误, 信号到达时返回 nil
func (a *agent) run(ctx context.Context) error {
	events, err := a.watcher.Start()
	if err != nil {
		return fmt.Errorf("watcher init failed: %w", err)
	}
	defer a.watcher.Stop()

	a.log.Info("🛡️ USB dock listener started")
	sysutil.NotifyReady()

	loop := monitor.New(events, a.invoker, a.log)
	err = loop.Run(ctx)
	sysutil.NotifyStopping()
	if err != nil {
		return err
	}
	// 中断提示使用 Warn, 日志级别调高后仍然可见
	a.log.Warn("KeyboardInterrupt, shutting down...")
	return nil
}

// exitCode 0 表示正常中断, 其他错误都是启动或运行失败
func exitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	return 1
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		sysutil.Log.Error("dockd failed", zap.Error(err))
		// 日志尚未初始化时保证诊断信息输出到 stderr
		if !sysutil.Log.Core().Enabled(zap.ErrorLevel) {
			fmt.Fprintln(os.Stderr, "dockd:", err)
		}
	}
	os.Exit(exitCode(err))
}
