package installer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PromptConfig collects the four operator settings interactively. A blank
// answer keeps the shown default. Reads block with no timeout: the run is
// deliberately human-paced until the plan is confirmed.
func PromptConfig(r io.Reader, w io.Writer, cfg *InstallConfig) error {
	br := bufio.NewReader(r)

	host, err := promptString(br, w, "Router hostname or IP", cfg.RouterHost)
	if err != nil {
		return err
	}
	cfg.RouterHost = host

	device, err := promptString(br, w, "Device label", cfg.DeviceName)
	if err != nil {
		return err
	}
	cfg.DeviceName = device

	port, err := promptInt(br, w, "Router API port", cfg.RouterPort)
	if err != nil {
		return err
	}
	cfg.RouterPort = port

	skip, err := promptBool(br, w, "Skip TLS certificate verification (self-signed router cert)", cfg.SkipTLSVerify)
	if err != nil {
		return err
	}
	cfg.SkipTLSVerify = skip
	return nil
}

func promptString(r *bufio.Reader, w io.Writer, label, def string) (string, error) {
	fmt.Fprintf(w, "%s [%s]: ", label, def)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func promptInt(r *bufio.Reader, w io.Writer, label string, def int) (int, error) {
	for {
		raw, err := promptString(r, w, label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 65535 {
			fmt.Fprintln(w, "enter a port between 1 and 65535")
			continue
		}
		return n, nil
	}
}

func promptBool(r *bufio.Reader, w io.Writer, label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	raw, err := promptString(r, w, label+" ("+hint+")", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(raw) {
	case "":
		return def, nil
	case "y", "yes", "true":
		return true, nil
	default:
		return false, nil
	}
}

func confirmProceed(r io.Reader, w io.Writer) bool {
	fmt.Fprint(w, "Proceed with installation? (y/N): ")
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
