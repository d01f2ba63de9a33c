package installer

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

// cloneRepo fetches the application source into <install root>/app. A fresh
// host gets a clone; a re-run resets the existing checkout to the remote
// head instead of failing on a non-empty directory.
func cloneRepo(log zerolog.Logger, cfg InstallConfig) error {
	dir := cfg.RepoDir()
	if DirExists(filepath.Join(dir, ".git")) {
		if err := runCmdStream(log, "git", "-C", dir, "fetch", "--depth", "1", "origin"); err != nil {
			return err
		}
		return runCmdStream(log, "git", "-C", dir, "reset", "--hard", "origin/HEAD")
	}
	if err := ensureDir(cfg.InstallRoot, 0o750); err != nil {
		return err
	}
	return runCmdStream(log, "git", "clone", "--depth", "1", cfg.RepoURL, dir)
}
