package watcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEvent(t *testing.T) {
	env := map[string]string{
		"SUBSYSTEM": "usb",
		"DEVTYPE":   "usb_device",
		"PRODUCT":   "17ef/3082/1",
	}
	ev, ok := toEvent("usb", "add", "/devices/pci0000:00/0000:00:14.0/usb3/3-1", env)
	require.True(t, ok)
	assert.Equal(t, "usb", ev.Subsystem)
	assert.Equal(t, "add", ev.Action)
	assert.Equal(t, "/devices/pci0000:00/0000:00:14.0/usb3/3-1", ev.DevPath)
	assert.Equal(t, "Device('/sys/devices/pci0000:00/0000:00:14.0/usb3/3-1')", ev.Device)
	assert.Equal(t, "17ef/3082/1", ev.Env["PRODUCT"])
}

func TestToEventFallsBackToDEVPATH(t *testing.T) {
	env := map[string]string{"SUBSYSTEM": "usb", "DEVPATH": "/devices/usb1/1-2"}
	ev, ok := toEvent("usb", "remove", "", env)
	require.True(t, ok)
	assert.Equal(t, "/devices/usb1/1-2", ev.DevPath)
}

func TestToEventOtherSubsystem(t *testing.T) {
	for _, sub := range []string{"block", "usbmisc", "input", ""} {
		_, ok := toEvent("usb", "add", "/devices/x", map[string]string{"SUBSYSTEM": sub})
		assert.False(t, ok, "subsystem %q", sub)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("hal", "usb")
	assert.ErrorIs(t, err, ErrUnknownBackend)

	for _, backend := range []string{"udev", "kernel"} {
		w, err := New(backend, "usb")
		require.NoError(t, err)
		assert.NotNil(t, w)
	}
}
