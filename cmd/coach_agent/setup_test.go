package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/config"
)

func TestResolveConfigEnvOnly(t *testing.T) {
	t.Setenv("COACH_STATE_PATH", "/tmp/coach-test-state.json")
	t.Setenv("DATABASE_URL", "")

	cfg, err := resolveConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/coach-test-state.json", cfg.StatePath)
}

func TestResolveConfigFileUnderEnv(t *testing.T) {
	t.Setenv("COACH_STATE_PATH", "")
	t.Setenv("PORT", "")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9191}`), 0o600))

	cfg, err := resolveConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
	assert.NotEmpty(t, cfg.StatePath, "env defaults still fill unset fields")
}

func TestResolveConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 99999}`), 0o600))

	_, err := resolveConfig(path)
	assert.Error(t, err)
}

func TestOpenStateFileBackend(t *testing.T) {
	cfg := &config.Config{StatePath: filepath.Join(t.TempDir(), "state.json")}

	state, closeState, err := openState(context.Background(), cfg)
	require.NoError(t, err)
	defer closeState()

	initialized, err := state.Initialized()
	require.NoError(t, err)
	assert.False(t, initialized)
}

func TestNewCompleterWithoutKey(t *testing.T) {
	client := newCompleter(context.Background(), &config.Config{})
	assert.False(t, client.Available())
}
