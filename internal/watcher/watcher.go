package watcher

import (
	"errors"
	"fmt"

	"github.com/Hara602/usbDock/internal/model"
)

var (
	// ErrSourceUnavailable 无法打开内核事件源 (权限不足, 内核不支持等)
	ErrSourceUnavailable = errors.New("hotplug event source unavailable")
	ErrUnsupported       = errors.New("hotplug events are not supported on this platform")
	ErrUnknownBackend    = errors.New("unknown event backend")
)

// DeviceWatcher 定义接口
// Start 返回的通道按内核投递顺序产生事件, 只包含指定子系统, 不可重启
type DeviceWatcher interface {
	Start() (<-chan model.HotplugEvent, error)
	Stop()
}

// New 按后端名创建监听器: "udev" 或 "kernel"
func New(backend, subsystem string) (DeviceWatcher, error) {
	switch backend {
	case "udev":
		return newUdevWatcher(subsystem), nil
	case "kernel":
		return newKernelWatcher(subsystem), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// toEvent 把 uevent 属性转换为 HotplugEvent, 子系统不匹配时返回 false
func toEvent(subsystem, action, devPath string, env map[string]string) (model.HotplugEvent, bool) {
	if env["SUBSYSTEM"] != subsystem {
		return model.HotplugEvent{}, false
	}
	if devPath == "" {
		devPath = env["DEVPATH"]
	}
	return model.HotplugEvent{
		Subsystem: subsystem,
		Action:    action,
		DevPath:   devPath,
		Device:    model.Describe(devPath),
		Env:       env,
	}, true
}
