package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/JHarrison712/VyManager/internal/installer"
	"github.com/JHarrison712/VyManager/internal/tui"
)

func main() {
	args := os.Args[1:]

	var err error
	switch {
	case len(args) == 0 && isatty.IsTerminal(os.Stdout.Fd()):
		err = tui.StartWizard()
	case len(args) > 0 && args[0] == "tui":
		err = tui.StartWizard()
	case len(args) > 0 && args[0] == "config":
		err = tui.StartConfigEditor()
	default:
		err = installer.Run(args)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
