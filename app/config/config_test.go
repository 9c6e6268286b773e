package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Storage.Path, "default store is in memory")
	assert.True(t, cfg.Storage.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("yaml file overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "portfolio.yaml")
		content := `
server:
  addr: ":9090"
  shutdown_timeout: 3s
storage:
  path: /var/lib/portfolio
site:
  owner: Jane
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "/var/lib/portfolio", cfg.Storage.Path)
		assert.Equal(t, "Jane", cfg.Site.Owner)
		// Untouched sections keep their defaults.
		assert.Equal(t, "Shawaiz", cfg.Admin.Username)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("PORTFOLIO_ADDR", ":7070")
		t.Setenv("PORTFOLIO_ADMIN_USERNAME", "admin")
		t.Setenv("PORTFOLIO_SESSION_SECURE", "true")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.Server.Addr)
		assert.Equal(t, "admin", cfg.Admin.Username)
		assert.True(t, cfg.Session.Secure)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: true},
		{name: "empty username", mutate: func(c *Config) { c.Admin.Username = "" }, wantErr: true},
		{name: "empty password", mutate: func(c *Config) { c.Admin.Password = "" }, wantErr: true},
		{name: "short session key", mutate: func(c *Config) { c.Session.Key = "short" }, wantErr: true},
		{name: "empty session name", mutate: func(c *Config) { c.Session.Name = "" }, wantErr: true},
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

func TestCheckServe(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.DefaultSessionKeyInUse())
	assert.NoError(t, cfg.CheckServe(), "in-memory store")

	cfg.Storage.Path = t.TempDir()
	assert.ErrorIs(t, cfg.CheckServe(), ErrDefaultSessionKey)

	cfg.Session.Key = strings.Repeat("s", 40)
	assert.False(t, cfg.DefaultSessionKeyInUse())
	assert.NoError(t, cfg.CheckServe())
}
