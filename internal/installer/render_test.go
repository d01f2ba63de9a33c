package installer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderString(t *testing.T) {
	out, err := renderString("User={{.ServiceUser}}", RenderData{ServiceUser: "vymanager"})
	require.NoError(t, err)
	assert.Equal(t, "User=vymanager", out)
}

func TestRenderString_MissingKeyFails(t *testing.T) {
	_, err := renderString("{{.NoSuchField}}", RenderData{})
	assert.Error(t, err)
}

func TestRenderSystemdUnits(t *testing.T) {
	cfg := testConfig(t)
	data := cfg.RenderData()

	for _, unit := range serviceUnits {
		path := filepath.Join(findTemplatesDir(), "systemd", unit)
		text, err := renderFile(path, data)
		require.NoError(t, err, unit)
		assert.Contains(t, text, "User="+cfg.ServiceUser)
		assert.Contains(t, text, "WantedBy=multi-user.target")
		assert.NotContains(t, text, "{{", "unresolved template action in %s", unit)
	}
}

func TestRenderFrontendEnvTemplate(t *testing.T) {
	cfg := testConfig(t)
	data := cfg.RenderData()
	data.DatabaseURL = "postgresql://vymanager:x@localhost:5432/vymanager_auth"
	data.AuthSecret = "y"

	text, err := renderFile(filepath.Join(findTemplatesDir(), "frontend.env"), data)
	require.NoError(t, err)
	assert.Contains(t, text, "DATABASE_URL=postgresql://vymanager:x@localhost:5432/vymanager_auth")
	assert.Contains(t, text, "AUTH_SECRET=y")
}

func TestFindTemplatesDir_EnvOverrideWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VYINSTALL_TEMPLATES", dir)
	assert.Equal(t, dir, findTemplatesDir())
}
