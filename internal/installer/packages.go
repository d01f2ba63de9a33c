package installer

import (
	"os"

	"github.com/rs/zerolog"
)

// osPackages is the apt dependency set for the full stack: the database
// server, the backend's Python toolchain and the frontend's Node toolchain.
var osPackages = []string{
	"postgresql",
	"postgresql-contrib",
	"git",
	"curl",
	"python3",
	"python3-venv",
	"python3-pip",
	"nodejs",
	"npm",
}

func installPackages(log zerolog.Logger) error {
	// Never block a headless run on a debconf prompt.
	os.Setenv("DEBIAN_FRONTEND", "noninteractive")

	if err := runCmdStream(log, "apt-get", "update"); err != nil {
		return err
	}
	args := append([]string{"install", "-y"}, osPackages...)
	if err := runCmdStream(log, "apt-get", args...); err != nil {
		return err
	}
	// The postgres cluster must be up before provisioning runs against it.
	return runCmdStream(log, "systemctl", "start", "postgresql")
}
