package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "state_path": "/tmp/coach-state.json",
	  "port": 9090,
	  "completion_timeout_seconds": 45,
	  "analyze_dwell_millis": 200
	}`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/coach-state.json", cfg.StatePath)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.CompletionTimeout())
	assert.Equal(t, 200*time.Millisecond, cfg.AnalyzeDwell())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv("COACH_STATE_PATH", "/tmp/custom-state.json")
	t.Setenv("DATABASE_URL", "postgres://localhost/coach")
	t.Setenv("PORT", "8081")
	t.Setenv("COMPLETION_TIMEOUT_SECONDS", "15")

	cfg := FromEnv()
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "/tmp/custom-state.json", cfg.StatePath)
	assert.Equal(t, "postgres://localhost/coach", cfg.DatabaseURL)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 15, cfg.CompletionTimeoutSeconds)
}

func TestFromEnvDefaultStatePath(t *testing.T) {
	t.Setenv("COACH_STATE_PATH", "")

	cfg := FromEnv()
	assert.NotEmpty(t, cfg.StatePath)
	assert.Contains(t, cfg.StatePath, "state.json")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid port", Config{Port: 8080}, false},
		{"port out of range", Config{Port: 70000}, true},
		{"negative port", Config{Port: -1}, true},
		{"negative timeout", Config{CompletionTimeoutSeconds: -5}, true},
		{"negative dwell", Config{AnalyzeDwellMillis: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000}
	defaults := Config{
		APIKey:    "default-key",
		StatePath: "/default/state.json",
		Port:      8080,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, 9000, merged.Port, "explicit values win")
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, "/default/state.json", merged.StatePath)
}
