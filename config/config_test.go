package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand(args ...string) *cobra.Command {
	var cmd = &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	AttachFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		panic(err)
	}
	return cmd
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadFromFlags(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load(testCommand("--token", "abc", "--org", "acme", "--page-delay", "0s", "--retries", "2"))
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.GitHub.Token)
	assert.Equal(t, "acme", cfg.Sync.Org)
	assert.Equal(t, time.Duration(0), cfg.GitHub.PageDelay)
	assert.Equal(t, 2, cfg.Sync.Retries)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Equal(t, 100, cfg.GitHub.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Sync.RetryDelay)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GHSYNC_GITHUB_TOKEN", "from-env")
	t.Setenv("GHSYNC_SYNC_ORG", "env-org")
	t.Setenv("GHSYNC_GITHUB_PAGE_DELAY", "1s")

	cfg, err := Load(testCommand())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GitHub.Token)
	assert.Equal(t, "env-org", cfg.Sync.Org)
	assert.Equal(t, time.Second, cfg.GitHub.PageDelay)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	file := filepath.Join(dir, "sync.yaml")
	require.NoError(t, os.WriteFile(file, []byte("github:\n  token: file-token\n  page_size: 50\nsync:\n  org: file-org\n"), 0o600))

	cfg, err := Load(testCommand("--config", file, "--org", "flag-org"))
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.GitHub.Token)
	assert.Equal(t, 50, cfg.GitHub.PageSize)
	assert.Equal(t, "flag-org", cfg.Sync.Org, "flags win over the file")
}

func TestLoadRequiresTokenAndOrg(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(testCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Token")
	assert.Contains(t, err.Error(), "Org")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GitHub: GitHubConfig{Token: "t", BaseURL: "https://api.github.com", UserAgent: "ua", PageSize: 100},
			Sync:   SyncConfig{Org: "acme"},
			Log:    LogConfig{Level: "info", Format: "text"},
		}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "page_size_too_large", mutate: func(c *Config) { c.GitHub.PageSize = 101 }, wantErr: true},
		{name: "bad_base_url", mutate: func(c *Config) { c.GitHub.BaseURL = "not a url" }, wantErr: true},
		{name: "bad_log_format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "negative_retries", mutate: func(c *Config) { c.Sync.Retries = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}
