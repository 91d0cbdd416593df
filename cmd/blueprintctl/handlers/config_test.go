package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/blueprintctl/internal/config"
)

func TestConfigInit(t *testing.T) {
	origTTY := isInteractiveTTY
	origConfirm := confirm
	defer func() {
		isInteractiveTTY = origTTY
		confirm = origConfirm
	}()
	isInteractiveTTY = func() bool { return false }

	path := filepath.Join(t.TempDir(), "nested", "blueprintctl.yaml")
	var out bytes.Buffer

	require.NoError(t, ConfigInit(context.Background(), &out, path, false))
	assert.Equal(t, "Wrote default configuration to "+path+"\n", out.String())
	_, err := os.Stat(path)
	require.NoError(t, err)

	err = ConfigInit(context.Background(), &out, path, false)
	assert.ErrorIs(t, err, config.ErrConfigExists)

	out.Reset()
	require.NoError(t, ConfigInit(context.Background(), &out, path, true))
	assert.Contains(t, out.String(), "Wrote default configuration")

	isInteractiveTTY = func() bool { return true }
	confirm = func(_ context.Context, title string) (bool, error) {
		assert.Contains(t, title, "Overwrite?")
		return false, nil
	}
	out.Reset()
	require.NoError(t, ConfigInit(context.Background(), &out, path, false))
	assert.Equal(t, "Left existing configuration untouched\n", out.String())

	confirm = func(context.Context, string) (bool, error) { return true, nil }
	out.Reset()
	require.NoError(t, ConfigInit(context.Background(), &out, path, false))
	assert.Contains(t, out.String(), "Wrote default configuration")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Server.URL, cfg.Server.URL)
}
