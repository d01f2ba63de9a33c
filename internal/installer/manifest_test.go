package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InstallRoot = t.TempDir()
	cfg.RouterHost = "router.lab"
	cfg.DeviceName = "lab-edge"
	cfg.RouterPort = 8443
	cfg.SkipTLSVerify = false

	m := NewManifest(cfg)
	assert.NotEmpty(t, m.RunID)
	assert.False(t, m.InstalledAt.IsZero())

	require.NoError(t, WriteManifest(cfg.ManifestPath(), m))

	got, err := LoadManifest(cfg.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, "router.lab", got.RouterHost)
	assert.Equal(t, "lab-edge", got.DeviceName)
	assert.Equal(t, 8443, got.RouterPort)
	assert.False(t, got.SkipTLSVerify)
}

func TestManifest_NeverContainsSecrets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InstallRoot = t.TempDir()

	require.NoError(t, WriteManifest(cfg.ManifestPath(), NewManifest(cfg)))

	raw, err := os.ReadFile(cfg.ManifestPath())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "apikey")
}

func TestHydrateFromManifest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InstallRoot = t.TempDir()

	prev := cfg
	prev.RouterHost = "10.1.1.1"
	prev.DeviceName = "branch"
	prev.RouterPort = 9443
	prev.SkipTLSVerify = false
	require.NoError(t, WriteManifest(cfg.ManifestPath(), NewManifest(prev)))

	HydrateFromManifest(&cfg)
	assert.Equal(t, "10.1.1.1", cfg.RouterHost)
	assert.Equal(t, "branch", cfg.DeviceName)
	assert.Equal(t, 9443, cfg.RouterPort)
	assert.False(t, cfg.SkipTLSVerify)
}

func TestHydrateFromManifest_MissingFileKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InstallRoot = filepath.Join(t.TempDir(), "nope")

	HydrateFromManifest(&cfg)
	assert.Equal(t, "192.168.1.1", cfg.RouterHost)
	assert.Equal(t, 443, cfg.RouterPort)
}
