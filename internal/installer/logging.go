package installer

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger writes a structured log of every step and external command to
// path. With verbose set, a console copy goes to stderr so the terminal
// output of the run itself stays uncluttered.
func NewLogger(path string, verbose bool) (zerolog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerolog.Nop(), err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return zerolog.Nop(), err
	}

	var w io.Writer = f
	if verbose {
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		w = zerolog.MultiLevelWriter(f, console)
	}
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger(), nil
}
