package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestReadDotEnv(t *testing.T) {
	path := writeTemp(t, ".env", `# backend settings
VYOS_HOST=10.0.0.1

VYOS_PORT="443"
not a key-value line
DEVICE_NAME=edge
`)

	vars, err := ReadDotEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1", vars["VYOS_HOST"])
	assert.Equal(t, "443", vars["VYOS_PORT"], "surrounding quotes are stripped")
	assert.Equal(t, "edge", vars["DEVICE_NAME"])
	assert.NotContains(t, vars, "not a key-value line")
}

func TestWriteDotEnv_SubstitutesExactKeysOnly(t *testing.T) {
	path := writeTemp(t, ".env", `# VyManager backend
VYOS_HOST=change-me
VYOS_APIKEY=change-me
# session settings
SESSION_TIMEOUT=3600
`)

	err := WriteDotEnv(path, map[string]string{
		"VYOS_HOST":   "192.168.1.1",
		"VYOS_APIKEY": "deadbeef",
	})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(got), "\n"), "\n")

	// Comments, ordering and untouched keys all survive.
	assert.Equal(t, []string{
		"# VyManager backend",
		"VYOS_HOST=192.168.1.1",
		"VYOS_APIKEY=deadbeef",
		"# session settings",
		"SESSION_TIMEOUT=3600",
	}, lines)
}

func TestWriteDotEnv_AppendsNewKeys(t *testing.T) {
	path := writeTemp(t, ".env", "VYOS_HOST=10.0.0.1\n")

	err := WriteDotEnv(path, map[string]string{"DEVICE_NAME": "edge"})
	require.NoError(t, err)

	vars, err := ReadDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", vars["VYOS_HOST"])
	assert.Equal(t, "edge", vars["DEVICE_NAME"])
}

func TestWriteDotEnv_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	err := WriteDotEnv(path, map[string]string{"VYOS_HOST": "10.0.0.1"})
	require.NoError(t, err)

	vars, err := ReadDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", vars["VYOS_HOST"])
}

func TestWriteDotEnv_FreshFileIsDeterministic(t *testing.T) {
	vars := map[string]string{
		"VYOS_PORT":   "443",
		"DEVICE_NAME": "edge",
		"VYOS_HOST":   "10.0.0.1",
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, WriteDotEnv(path, vars))
	got, err := os.ReadFile(path)
	require.NoError(t, err)

	// Key order must not depend on map iteration order.
	assert.Equal(t, "DEVICE_NAME=edge\nVYOS_HOST=10.0.0.1\nVYOS_PORT=443\n", string(got))
}

func TestWriteDotEnv_AppendsNewKeysSorted(t *testing.T) {
	path := writeTemp(t, ".env", "VYOS_HOST=10.0.0.1\n")

	err := WriteDotEnv(path, map[string]string{
		"VYOS_PORT":   "443",
		"DEVICE_NAME": "edge",
	})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "VYOS_HOST=10.0.0.1\nDEVICE_NAME=edge\nVYOS_PORT=443\n", string(got))
}

func TestPatchBackendEnv_SeedsFromExampleAndPatches(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.BackendDir(), 0o750))
	example := `# VyManager backend configuration
VYOS_HOST=router.example
VYOS_APIKEY=replace-me
VYOS_PORT=443
VYOS_HTTPS_VERIFY=true
DEVICE_NAME=router
LOG_LEVEL=info
`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.BackendDir(), ".env.example"), []byte(example), 0o640))

	creds := Credentials{APIKey: strings.Repeat("cd", 32)}
	require.NoError(t, PatchBackendEnv(cfg, creds))

	vars, err := ReadDotEnv(cfg.BackendEnvPath())
	require.NoError(t, err)
	assert.Equal(t, cfg.RouterHost, vars["VYOS_HOST"])
	assert.Equal(t, creds.APIKey, vars["VYOS_APIKEY"])
	assert.Equal(t, "8443", vars["VYOS_PORT"])
	assert.Equal(t, "false", vars["VYOS_HTTPS_VERIFY"])
	assert.Equal(t, cfg.DeviceName, vars["DEVICE_NAME"])
	assert.Equal(t, "info", vars["LOG_LEVEL"], "unrelated keys stay untouched")
}

func TestWriteFrontendEnv_EmbedsSecretAndConnectionString(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.FrontendDir(), 0o750))

	creds, err := NewCredentials()
	require.NoError(t, err)
	require.NoError(t, WriteFrontendEnv(cfg, creds))

	vars, err := ReadDotEnv(cfg.FrontendEnvPath())
	require.NoError(t, err)
	assert.Equal(t, creds.AuthSecret, vars["AUTH_SECRET"])
	assert.Equal(t, creds.DatabaseURL(cfg), vars["DATABASE_URL"])
	assert.Contains(t, vars["DATABASE_URL"], creds.DBPassword,
		"connection string must carry the same password the role was given")
}

// testConfig returns a config rooted in a temp dir, with the repo's real
// templates and non-default prompt values so substitution is observable.
func testConfig(t *testing.T) InstallConfig {
	t.Helper()
	tplDir, err := filepath.Abs(filepath.Join("..", "..", "templates"))
	require.NoError(t, err)
	t.Setenv("VYINSTALL_TEMPLATES", tplDir)

	cfg := DefaultConfig()
	cfg.InstallRoot = t.TempDir()
	cfg.RouterHost = "10.20.30.40"
	cfg.DeviceName = "lab-edge"
	cfg.RouterPort = 8443
	cfg.SkipTLSVerify = true
	return cfg
}
