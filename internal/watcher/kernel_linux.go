//go:build linux

package watcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/Hara602/usbDock/internal/model"
	"github.com/Hara602/usbDock/internal/sysutil"
	"github.com/eshard/uevent"
	"go.uber.org/zap"
)

// kernelWatcher 直接读取内核 uevent 组, 不经过 udevd
type kernelWatcher struct {
	subsystem string
	events    chan model.HotplugEvent
	stop      chan struct{}

	mu     sync.Mutex
	reader io.ReadCloser
}

func newKernelWatcher(subsystem string) DeviceWatcher {
	return &kernelWatcher{
		subsystem: subsystem,
		events:    make(chan model.HotplugEvent),
		stop:      make(chan struct{}),
	}
}

func (w *kernelWatcher) Start() (<-chan model.HotplugEvent, error) {
	reader, err := uevent.NewReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	w.mu.Lock()
	w.reader = reader
	w.mu.Unlock()

	go w.readEvents(uevent.NewDecoder(reader))
	return w.events, nil
}

func (w *kernelWatcher) readEvents(dec *uevent.Decoder) {
	for {
		evt, err := dec.Decode()
		if err != nil {
			select {
			case <-w.stop:
				return
			default:
			}
			if isReadFailure(err) {
				sysutil.Log.Error("uevent reader failed, closing event source", zap.Error(err))
				close(w.events)
				return
			}
			sysutil.Log.Warn("decoding uevent failed", zap.Error(err))
			continue
		}

		env := make(map[string]string, len(evt.Vars)+1)
		for k, v := range evt.Vars {
			env[k] = v
		}
		env["SUBSYSTEM"] = evt.Subsystem

		ev, ok := toEvent(w.subsystem, evt.Action, evt.Devpath, env)
		if !ok {
			continue
		}
		ev.TimeStamp = time.Now()
		select {
		case w.events <- ev:
		case <-w.stop:
			return
		}
	}
}

// isReadFailure 套接字层面的错误不会自行恢复, 继续读取只会空转
func isReadFailure(err error) bool {
	var errno syscall.Errno
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, os.ErrClosed) ||
		errors.As(err, &errno)
}

func (w *kernelWatcher) Stop() {
	close(w.stop)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reader != nil {
		w.reader.Close()
	}
}
