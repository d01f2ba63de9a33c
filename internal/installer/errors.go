package installer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRoot means the process lacks the privileges the run needs. It is
// raised before any system state is touched.
var ErrNotRoot = errors.New("vyinstall must run as root")

// CommandError reports a failed external tool invocation. Every external
// failure is fatal; there is no retry and no partial-success continuation.
type CommandError struct {
	Name string
	Args []string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
