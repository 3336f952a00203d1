package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mindful/internal/platform/config"
)

func TestNewDerivesPathsAndDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cfg, err := config.New(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "mindful.db"), cfg.DBPath)
	require.Equal(t, filepath.Join(dir, "logs", "mindful.log"), cfg.LogPath)
	require.Equal(t, filepath.Join(dir, "identity.json"), cfg.IdentityPath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 1500*time.Millisecond, cfg.ChatReplyDelay)
	require.Empty(t, cfg.CatalogPath)
}

func TestNewAppliesConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	body := `log_level: debug
chat:
  reply_delay: 250ms
  responder_plugin: echo
resources:
  catalog: catalog.yaml
server:
  addr: ":9000"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))

	cfg, err := config.New(dir)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 250*time.Millisecond, cfg.ChatReplyDelay)
	require.Equal(t, "echo", cfg.ResponderPlugin)
	require.Equal(t, filepath.Join(dir, "catalog.yaml"), cfg.CatalogPath)
	require.Equal(t, ":9000", cfg.ServerAddr)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"unknown level": "log_level: loud\n",
		"bad delay":     "chat:\n  reply_delay: soon\n",
		"unknown field": "colour: blue\n",
	}
	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
			_, err := config.New(dir)
			require.Error(t, err)
		})
	}
}

func TestNewRequiresDataDir(t *testing.T) {
	t.Parallel()
	_, err := config.New("")
	require.Error(t, err)
}
