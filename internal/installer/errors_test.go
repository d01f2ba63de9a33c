package installer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandError(t *testing.T) {
	cause := errors.New("exit status 100")
	err := &CommandError{Name: "apt-get", Args: []string{"install", "-y", "git"}, Err: cause}

	assert.Equal(t, "apt-get install -y git: exit status 100", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestRunUnknownCommand(t *testing.T) {
	err := Run([]string{"frobnicate"})
	assert.ErrorContains(t, err, "unknown command")
}
