//go:build linux

package watcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/eshard/uevent"
	"github.com/stretchr/testify/assert"
)

func TestIsReadFailure(t *testing.T) {
	table := []struct {
		err  error
		want bool
	}{
		{io.EOF, true},
		{io.ErrUnexpectedEOF, true},
		{os.ErrClosed, true},
		{syscall.EBADF, true},
		{fmt.Errorf("recvfrom: %w", syscall.ENOBUFS), true},
		{&os.SyscallError{Syscall: "read", Err: syscall.EBADF}, true},
		{errors.New("invalid uevent line"), false},
	}
	for _, test := range table {
		assert.Equal(t, test.want, isReadFailure(test.err), "err %v", test.err)
	}
}

func TestKernelReaderEOFClosesEvents(t *testing.T) {
	w := newKernelWatcher("usb").(*kernelWatcher)
	go w.readEvents(uevent.NewDecoder(strings.NewReader("")))

	select {
	case _, ok := <-w.events:
		assert.False(t, ok, "events channel should be closed")
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed at end of stream")
	}
}
