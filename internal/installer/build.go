package installer

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

// buildBackend sets up the backend's virtualenv and installs its
// requirements. Runs as the service user; root never owns the venv.
func buildBackend(log zerolog.Logger, cfg InstallConfig) error {
	dir := cfg.BackendDir()
	venv := filepath.Join(dir, "venv")
	if !DirExists(venv) {
		if err := runAsUser(log, cfg.ServiceUser, dir, "python3", "-m", "venv", "venv"); err != nil {
			return err
		}
	}
	pip := filepath.Join(venv, "bin", "pip")
	return runAsUser(log, cfg.ServiceUser, dir, pip, "install", "-r", "requirements.txt")
}

// buildFrontend installs the frontend's node modules, applies the auth
// database schema and produces the production build. Must run after the
// frontend env file exists: the migration step reads DATABASE_URL from it.
func buildFrontend(log zerolog.Logger, cfg InstallConfig) error {
	dir := cfg.FrontendDir()
	if err := runAsUser(log, cfg.ServiceUser, dir, "npm", "ci"); err != nil {
		return err
	}
	if err := runAsUser(log, cfg.ServiceUser, dir, "npx", "prisma", "migrate", "deploy"); err != nil {
		return err
	}
	return runAsUser(log, cfg.ServiceUser, dir, "npm", "run", "build")
}

// chownInstallRoot hands the tree to the service user after root has
// finished writing into it.
func chownInstallRoot(log zerolog.Logger, cfg InstallConfig) error {
	owner := cfg.ServiceUser + ":" + cfg.ServiceUser
	return runCmdStream(log, "chown", "-R", owner, cfg.InstallRoot)
}
