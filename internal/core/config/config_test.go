package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path, dataDir)
			require.NoError(t, err)

			want := DefaultConfig()
			want.DataDir = dataDir
			assert.Equal(t, &want, cfg)
		})
	}
}

func TestLoad_File(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:8080"
  read_timeout: 3s
  cors:
    allowed_origins:
      - "http://localhost:*"
database:
  max_open_conns: 4
`)

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:*"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)

	// unset keys fall back to defaults
	defaults := DefaultConfig()
	assert.Equal(t, defaults.Server.WriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, defaults.Server.ShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, defaults.Database.MaxIdleConns, cfg.Database.MaxIdleConns)
	assert.Equal(t, defaults.Database.BusyTimeout, cfg.Database.BusyTimeout)

	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "server: ["},
		{name: "bad duration", content: "server:\n  read_timeout: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse config file")
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name:      "bad addr",
			content:   "server:\n  addr: localhost\n",
			wantField: "server.addr",
		},
		{
			name:      "idle exceeds open",
			content:   "database:\n  max_open_conns: 2\n  max_idle_conns: 3\n",
			wantField: "database.max_idle_conns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), t.TempDir())

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}
