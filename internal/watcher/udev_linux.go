//go:build linux

package watcher

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Hara602/usbDock/internal/model"
	"github.com/Hara602/usbDock/internal/sysutil"
	"github.com/pilebones/go-udev/netlink"
	"go.uber.org/zap"
)

type udevWatcher struct {
	subsystem string
	events    chan model.HotplugEvent
	stop      chan struct{}
}

func newUdevWatcher(subsystem string) DeviceWatcher {
	return &udevWatcher{
		subsystem: subsystem,
		// 不带缓冲: 上一个事件被处理完之前不接收下一个
		events: make(chan model.HotplugEvent),
		stop:   make(chan struct{}),
	}
}

// matcher 只放行指定子系统的事件, 规则值是正则, 需要整串匹配
func subsystemMatcher(subsystem string) (netlink.Matcher, error) {
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Env: map[string]string{"SUBSYSTEM": "^" + regexp.QuoteMeta(subsystem) + "$"},
	})
	if err := rules.Compile(); err != nil {
		return nil, err
	}
	return rules, nil
}

func (w *udevWatcher) Start() (<-chan model.HotplugEvent, error) {
	matcher, err := subsystemMatcher(w.subsystem)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	// 监听 UDEV 事件,连接 NETLINK_KOBJECT_UEVENT
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	queue := make(chan netlink.UEvent)
	errChan := make(chan error)

	quit := conn.Monitor(queue, errChan, matcher)

	go func() {
		// 确保退出时关闭连接
		defer conn.Close()
		w.pump(queue, errChan, quit)
	}()
	return w.events, nil
}

// 解析失败只影响单条消息, Monitor 会继续读取
const parseErrPrefix = "unable to parse uevent"

// pump 转发 Monitor 的事件。读取失败后 Monitor 的 goroutine 已经退出,
// 此时关闭事件通道, 让监听循环以 ErrSourceClosed 结束, 由 supervisor 重启。
func (w *udevWatcher) pump(queue <-chan netlink.UEvent, errChan <-chan error, quit chan struct{}) {
	for {
		select {
		case <-w.stop:
			// 发送退出信号给 Monitor
			close(quit)
			return

		case err := <-errChan:
			if strings.HasPrefix(err.Error(), parseErrPrefix) {
				sysutil.Log.Warn("skipping malformed uevent", zap.Error(err))
				continue
			}
			sysutil.Log.Error("uevent read failed, closing event source", zap.Error(err))
			close(w.events)
			return

		case uevent := <-queue:
			w.forward(uevent)
		}
	}
}

func (w *udevWatcher) forward(uevent netlink.UEvent) {
	ev, ok := toEvent(w.subsystem, string(uevent.Action), uevent.KObj, uevent.Env)
	if !ok {
		return
	}
	ev.TimeStamp = time.Now()
	select {
	case w.events <- ev:
	case <-w.stop:
	}
}

func (w *udevWatcher) Stop() {
	close(w.stop)
}
