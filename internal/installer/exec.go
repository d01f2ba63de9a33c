package installer

import (
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

func runCmdCapture(log zerolog.Logger, name string, args ...string) (string, error) {
	log.Debug().Str("cmd", name).Strs("args", args).Msg("exec")
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		log.Error().Str("cmd", name).Str("output", text).Err(err).Msg("exec failed")
		return text, &CommandError{Name: name, Args: args, Err: err}
	}
	return text, nil
}

func runCmdStream(log zerolog.Logger, name string, args ...string) error {
	log.Debug().Str("cmd", name).Strs("args", args).Msg("exec")
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Error().Str("cmd", name).Err(err).Msg("exec failed")
		return &CommandError{Name: name, Args: args, Err: err}
	}
	return nil
}

// runAsUser runs a command as the service user with the given working
// directory. Builds must not run as root.
func runAsUser(log zerolog.Logger, user, dir, name string, args ...string) error {
	full := append([]string{"-u", user, "--", name}, args...)
	log.Debug().Str("user", user).Str("dir", dir).Str("cmd", name).Strs("args", args).Msg("exec")
	cmd := exec.Command("sudo", full...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Error().Str("cmd", name).Err(err).Msg("exec failed")
		return &CommandError{Name: name, Args: args, Err: err}
	}
	return nil
}
