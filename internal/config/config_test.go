package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override variable so a test sees only what it
// sets itself.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MYTHOS_PORT", "MYTHOS_DB", "MYTHOS_MODEL", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "mythos.db", cfg.DatabasePath)
	assert.Equal(t, "gpt-4o", cfg.Model.Name)
	assert.Empty(t, cfg.Model.APIKey)
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "mythos.yaml")
	data := []byte("port: 9100\ndatabase_path: /var/lib/mythos/archive.db\nmodel:\n  name: gpt-4o-mini\n  api_key: file-key\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "/var/lib/mythos/archive.db", cfg.DatabasePath)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, "file-key", cfg.Model.APIKey)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "mythos.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9200\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Port)
	assert.Equal(t, "mythos.db", cfg.DatabasePath)
	assert.Equal(t, "gpt-4o", cfg.Model.Name)
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "mythos.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a port\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYTHOS_PORT", "7777")
	t.Setenv("MYTHOS_DB", "env.db")
	t.Setenv("MYTHOS_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "mythos.yaml")
	data := []byte("port: 9100\ndatabase_path: file.db\nmodel:\n  name: gpt-4o\n  api_key: file-key\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Port)
	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, "env-key", cfg.Model.APIKey)
}

func TestEnvOverrides_BadPortIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYTHOS_PORT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"empty database path", func(c *Config) { c.DatabasePath = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
