package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/thinkpad-dock.sh", cfg.Handler)
	assert.Equal(t, "usb", cfg.Subsystem)
	assert.Equal(t, BackendUdev, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DOCKD_HANDLER", "/opt/dock/handler")
	t.Setenv("DOCKD_BACKEND", "kernel")
	t.Setenv("DOCKD_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/dock/handler", cfg.Handler)
	assert.Equal(t, BackendKernel, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "usb", cfg.Subsystem)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("backend", func(t *testing.T) {
		t.Setenv("DOCKD_BACKEND", "hal")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidBackend)
	})
	t.Run("log level", func(t *testing.T) {
		t.Setenv("DOCKD_LOG_LEVEL", "verbose")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})
}

func TestValidateEmptyHandler(t *testing.T) {
	cfg := Config{Backend: BackendUdev, LogLevel: "info"}
	assert.ErrorIs(t, cfg.Validate(), ErrEmptyHandler)
}
