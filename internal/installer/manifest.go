package installer

import (
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest records the non-secret settings of the last run so a re-run can
// offer them as prompt defaults. Secrets never land here; their only homes
// are the database role and the two env files.
type Manifest struct {
	RunID         string    `yaml:"run_id"`
	InstalledAt   time.Time `yaml:"installed_at"`
	InstallRoot   string    `yaml:"install_root"`
	RouterHost    string    `yaml:"router_host"`
	DeviceName    string    `yaml:"device_name"`
	RouterPort    int       `yaml:"router_port"`
	SkipTLSVerify bool      `yaml:"skip_tls_verify"`
}

func NewManifest(cfg InstallConfig) Manifest {
	return Manifest{
		RunID:         uuid.NewString(),
		InstalledAt:   time.Now().UTC(),
		InstallRoot:   cfg.InstallRoot,
		RouterHost:    cfg.RouterHost,
		DeviceName:    cfg.DeviceName,
		RouterPort:    cfg.RouterPort,
		SkipTLSVerify: cfg.SkipTLSVerify,
	}
}

func LoadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func WriteManifest(path string, m Manifest) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o640)
}

// HydrateFromManifest fills prompt defaults from an earlier run, when one
// exists. Missing or unreadable manifests are not an error.
func HydrateFromManifest(cfg *InstallConfig) {
	m, err := LoadManifest(cfg.ManifestPath())
	if err != nil {
		return
	}
	if m.RouterHost != "" {
		cfg.RouterHost = m.RouterHost
	}
	if m.DeviceName != "" {
		cfg.DeviceName = m.DeviceName
	}
	if m.RouterPort != 0 {
		cfg.RouterPort = m.RouterPort
	}
	cfg.SkipTLSVerify = m.SkipTLSVerify
}
