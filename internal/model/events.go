package model

import (
	"fmt"
	"time"
)

// uevent 动作
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// DockAction 传给外部处理脚本的第二个参数
type DockAction string

const (
	Docked   DockAction = "docked"
	Undocked DockAction = "undocked"
)

// HotplugEvent 硬件插拔事件
type HotplugEvent struct {
	Subsystem string            // "usb"
	Action    string            // "add", "remove", "bind", ...
	DevPath   string            // e.g., /devices/pci0000:00/0000:00:14.0/usb3/3-1
	Device    string            // 设备描述, 原样传给处理脚本
	Env       map[string]string // uevent 属性
	TimeStamp time.Time
}

// SysPath 设备在 sysfs 中的绝对路径
func (e HotplugEvent) SysPath() string {
	return "/sys" + e.DevPath
}

// Describe 生成设备描述字符串, 作为处理脚本的第一个参数。
// 格式与旧版 pyudev 守护进程的 str(device) 一致: Device('/sys/devices/...')
func Describe(devPath string) string {
	return fmt.Sprintf("Device('/sys%s')", devPath)
}

// Classify 把 uevent 动作映射为 docked/undocked, 其他动作返回 false
func Classify(action string) (DockAction, bool) {
	switch action {
	case ActionAdd:
		return Docked, true
	case ActionRemove:
		return Undocked, true
	}
	return "", false
}
