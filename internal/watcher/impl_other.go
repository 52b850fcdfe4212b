//go:build !linux

package watcher

import "github.com/Hara602/usbDock/internal/model"

type unsupportedWatcher struct{}

func newUdevWatcher(string) DeviceWatcher   { return unsupportedWatcher{} }
func newKernelWatcher(string) DeviceWatcher { return unsupportedWatcher{} }

func (unsupportedWatcher) Start() (<-chan model.HotplugEvent, error) { return nil, ErrUnsupported }
func (unsupportedWatcher) Stop()                                     {}
