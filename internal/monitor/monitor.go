package monitor

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/Hara602/usbDock/internal/analysis"
	"github.com/Hara602/usbDock/internal/handler"
	"github.com/Hara602/usbDock/internal/model"
	"github.com/Hara602/usbDock/internal/sysutil"
	"go.uber.org/zap"
)

// ErrSourceClosed 事件源意外关闭
var ErrSourceClosed = errors.New("hotplug event source closed")

type State int32

const (
	Listening State = iota
	Dispatching
	Terminated
)

func (s State) String() string {
	switch s {
	case Listening:
		return "LISTENING"
	case Dispatching:
		return "DISPATCHING"
	case Terminated:
		return "TERMINATED"
	}
	return "UNKNOWN"
}

// Loop 单线程事件循环: 每个 add/remove 事件同步调用一次处理程序
type Loop struct {
	events  <-chan model.HotplugEvent
	invoker handler.Invoker
	log     *zap.Logger
	sysRoot string
	state   atomic.Int32
}

func New(events <-chan model.HotplugEvent, invoker handler.Invoker, log *zap.Logger) *Loop {
	return &Loop{
		events:  events,
		invoker: invoker,
		log:     log,
		sysRoot: "/sys",
	}
}

func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

// Run 阻塞直到 ctx 取消 (返回 nil) 或事件源关闭 (返回 ErrSourceClosed)。
// 正在运行的处理程序不受 ctx 取消影响, 结束后循环才退出。
func (l *Loop) Run(ctx context.Context) error {
	defer l.setState(Terminated)

	for {
		l.setState(Listening)
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-l.events:
			if !ok {
				return ErrSourceClosed
			}
			// 事件与信号同时就绪时以信号为准
			if ctx.Err() != nil {
				return nil
			}
			l.handle(ctx, ev)
		}
	}
}

func (l *Loop) handle(ctx context.Context, ev model.HotplugEvent) {
	action, ok := model.Classify(ev.Action)
	if !ok {
		l.log.Debug("ignoring uevent", zap.String("action", ev.Action), zap.String("device", ev.Device))
		return
	}

	var info sysutil.USBInfo
	if action == model.Docked {
		info = sysutil.DescribeUSB(l.sysRoot, ev.DevPath)
	} else {
		// 拔出后 sysfs 目录已删除, 只能用 uevent 自带的 PRODUCT
		info = sysutil.DescribeProduct(ev.Env["PRODUCT"])
	}
	fields := []zap.Field{
		zap.String("device", ev.Device),
		zap.String("vid", info.VendorID),
		zap.String("pid", info.ProductID),
		zap.String("product", info.Product),
		zap.Strings("interfaces", analysis.InterfaceClasses(info.Root)),
	}
	if action == model.Docked {
		l.log.Info("✅ USB Connected", fields...)
	} else {
		l.log.Info("❌ USB Removed", fields...)
	}

	l.setState(Dispatching)
	code, err := l.invoker.Invoke(context.WithoutCancel(ctx), ev.Device, action)
	// TODO: report handler failures once the dock script exits non-zero on real errors
	l.log.Debug("handler finished",
		zap.String("action", string(action)),
		zap.Int("exit", code),
		zap.NamedError("err", err),
	)
}
