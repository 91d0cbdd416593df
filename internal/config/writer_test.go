package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "blueprintctl.yaml")

	require.NoError(t, WriteDefault(path, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Server.URL, cfg.Server.URL)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "blueprintctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0o600))

	err := WriteDefault(path, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigExists))

	require.NoError(t, WriteDefault(path, true))
}
