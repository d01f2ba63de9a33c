package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var serviceUnits = []string{
	"vymanager-backend.service",
	"vymanager-frontend.service",
}

// installSystemdUnits renders both unit files, installs them into
// /etc/systemd/system and starts them. The rendered copies are also kept
// under <install root>/systemd for inspection.
func installSystemdUnits(log zerolog.Logger, cfg InstallConfig) error {
	templates := findTemplatesDir()
	data := cfg.RenderData()
	stageDir := filepath.Join(cfg.InstallRoot, "systemd")
	if err := ensureDir(stageDir, 0o750); err != nil {
		return err
	}

	for _, unit := range serviceUnits {
		text, err := renderFile(filepath.Join(templates, "systemd", unit), data)
		if err != nil {
			return fmt.Errorf("render unit %s: %w", unit, err)
		}
		staged := filepath.Join(stageDir, unit)
		if err := os.WriteFile(staged, []byte(text), 0o644); err != nil {
			return err
		}
		target := filepath.Join("/etc/systemd/system", unit)
		if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
			return err
		}
		log.Info().Str("unit", unit).Msg("unit installed")
	}

	if err := runCmdStream(log, "systemctl", "daemon-reload"); err != nil {
		return err
	}
	for _, unit := range serviceUnits {
		if err := runCmdStream(log, "systemctl", "enable", "--now", unit); err != nil {
			return err
		}
	}
	return nil
}
