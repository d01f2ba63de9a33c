package installer

import (
	"os/exec"

	"github.com/rs/zerolog"
)

// ensureServiceUser creates the system user the services run as. An existing
// user is left untouched so re-runs are safe.
func ensureServiceUser(log zerolog.Logger, cfg InstallConfig) error {
	if err := exec.Command("id", "-u", cfg.ServiceUser).Run(); err == nil {
		log.Info().Str("user", cfg.ServiceUser).Msg("service user already exists")
		return nil
	}
	return runCmdStream(log, "useradd",
		"--system",
		"--create-home",
		"--home-dir", cfg.InstallRoot,
		"--shell", "/usr/sbin/nologin",
		cfg.ServiceUser)
}
