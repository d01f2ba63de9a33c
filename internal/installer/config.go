package installer

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultInstallRoot = "/opt/vymanager"
	defaultRepoURL     = "https://github.com/JHarrison712/VyManager.git"

	// Prompted settings and their defaults. A blank answer keeps the default.
	defaultRouterHost = "192.168.1.1"
	defaultDeviceName = "vyos"
	defaultRouterPort = 443

	defaultServiceUser = "vymanager"

	// Auth database fixed coordinates. The frontend owns this database; the
	// backend never touches it.
	dbHost = "localhost"
	dbPort = 5432
	dbUser = "vymanager"
	dbName = "vymanager_auth"
)

// InstallConfig carries every setting for one provisioning run. It is built
// once, before any system state is touched, and passed by value into each
// step so that no writer depends on ambient state.
type InstallConfig struct {
	InstallRoot string
	RepoURL     string
	ServiceUser string

	RouterHost    string
	DeviceName    string
	RouterPort    int
	SkipTLSVerify bool

	DBHost string
	DBPort int
	DBUser string
	DBName string

	// AdminDSN is the superuser connection used only while provisioning the
	// role and database. On stock Ubuntu the postgres role authenticates via
	// the local socket (peer), so run the installer with sudo -u postgres or
	// point this at a superuser DSN.
	AdminDSN string

	AssumeYes bool
}

func DefaultConfig() InstallConfig {
	return InstallConfig{
		InstallRoot:   GetInstallRoot(),
		RepoURL:       getRepoURL(),
		ServiceUser:   defaultServiceUser,
		RouterHost:    defaultRouterHost,
		DeviceName:    defaultDeviceName,
		RouterPort:    defaultRouterPort,
		SkipTLSVerify: true,
		DBHost:        dbHost,
		DBPort:        dbPort,
		DBUser:        dbUser,
		DBName:        dbName,
		AdminDSN:      getAdminDSN(),
	}
}

func (cfg InstallConfig) BackendDir() string {
	return filepath.Join(cfg.InstallRoot, "app", "backend")
}

func (cfg InstallConfig) FrontendDir() string {
	return filepath.Join(cfg.InstallRoot, "app", "frontend")
}

func (cfg InstallConfig) RepoDir() string {
	return filepath.Join(cfg.InstallRoot, "app")
}

func (cfg InstallConfig) BackendEnvPath() string {
	return filepath.Join(cfg.BackendDir(), ".env")
}

func (cfg InstallConfig) FrontendEnvPath() string {
	return filepath.Join(cfg.FrontendDir(), ".env")
}

func (cfg InstallConfig) ManifestPath() string {
	return filepath.Join(cfg.InstallRoot, "install.yml")
}

func (cfg InstallConfig) LogPath() string {
	return filepath.Join(cfg.InstallRoot, "install.log")
}

func (cfg InstallConfig) RenderData() RenderData {
	return RenderData{
		InstallRoot: cfg.InstallRoot,
		ServiceUser: cfg.ServiceUser,
		BackendDir:  cfg.BackendDir(),
		FrontendDir: cfg.FrontendDir(),
	}
}

func GetInstallRoot() string {
	if v := strings.TrimSpace(os.Getenv("VYINSTALL_ROOT")); v != "" {
		return v
	}
	return defaultInstallRoot
}

func getRepoURL() string {
	if v := strings.TrimSpace(os.Getenv("VYINSTALL_REPO")); v != "" {
		return v
	}
	return defaultRepoURL
}

func getAdminDSN() string {
	if v := strings.TrimSpace(os.Getenv("VYINSTALL_ADMIN_DSN")); v != "" {
		return v
	}
	return "postgres:///postgres?host=/var/run/postgresql"
}
