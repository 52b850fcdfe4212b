package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectHandlerScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thinkpad-dock.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/bash -e\necho $1 $2\n"), 0o755))

	info, err := InspectHandler(path)
	require.NoError(t, err)
	assert.Equal(t, "script", info.Kind)
	assert.Equal(t, "/bin/bash", info.Interpreter)
	assert.True(t, info.Executable)
}

func TestInspectHandlerELF(t *testing.T) {
	// ELF 魔数
	head := append([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}, make([]byte, 64)...)
	path := filepath.Join(t.TempDir(), "dock")
	require.NoError(t, os.WriteFile(path, head, 0o644))

	info, err := InspectHandler(path)
	require.NoError(t, err)
	assert.Equal(t, "elf", info.Kind)
	assert.False(t, info.Executable)
}

func TestInspectHandlerUnknown(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o700))
	info, err := InspectHandler(empty)
	require.NoError(t, err)
	assert.Equal(t, "unknown", info.Kind)
	assert.True(t, info.Executable)

	text := filepath.Join(dir, "notes")
	require.NoError(t, os.WriteFile(text, []byte("plain text"), 0o600))
	info, err = InspectHandler(text)
	require.NoError(t, err)
	assert.Equal(t, "unknown", info.Kind)
}

func TestInspectHandlerErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := InspectHandler(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = InspectHandler(dir)
	assert.ErrorIs(t, err, ErrNotRegular)
}
