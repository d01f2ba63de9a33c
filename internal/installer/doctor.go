package installer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
)

type CheckResult struct {
	Name string
	OK   bool
	Err  error
}

// RunChecks runs every preflight check and reports results without
// aborting. The TUI preflight screen and the doctor subcommand share it.
func RunChecks() []CheckResult {
	log := zerolog.Nop()
	checks := []struct {
		name string
		fn   func() error
	}{
		{"running as root", func() error {
			if os.Geteuid() != 0 {
				return ErrNotRoot
			}
			return nil
		}},
		{"apt-get binary", func() error {
			_, err := exec.LookPath("apt-get")
			return err
		}},
		{"systemctl binary", func() error {
			_, err := exec.LookPath("systemctl")
			return err
		}},
		{"git binary", func() error {
			_, err := exec.LookPath("git")
			return err
		}},
		{"python3 binary", func() error {
			_, err := exec.LookPath("python3")
			return err
		}},
		{"node binary", func() error {
			_, err := exec.LookPath("node")
			return err
		}},
		{"postgresql cluster", func() error {
			_, err := runCmdCapture(log, "pg_isready")
			return err
		}},
		{"install root writable", func() error {
			return writableCheck(GetInstallRoot())
		}},
		{"disk space >= 5GiB", func() error {
			return diskCheck(GetInstallRoot(), 5)
		}},
		{"ports 3000/8000 status", func() error {
			out, err := runCmdCapture(log, "ss", "-ltn")
			if err != nil {
				return err
			}
			if strings.Contains(out, ":3000 ") || strings.Contains(out, ":8000 ") {
				return fmt.Errorf("ports 3000/8000 already in use")
			}
			return nil
		}},
	}

	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		err := check.fn()
		results = append(results, CheckResult{Name: check.name, OK: err == nil, Err: err})
	}
	return results
}

func RunDoctor() error {
	fmt.Println("vyinstall doctor")
	fmt.Printf("runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	for _, r := range RunChecks() {
		if r.OK {
			fmt.Printf("[ OK ] %s\n", r.Name)
		} else {
			fmt.Printf("[WARN] %s: %v\n", r.Name, r.Err)
		}
	}
	return nil
}

func writableCheck(dir string) error {
	if err := ensureDir(dir, 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "vyinstall-write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

func diskCheck(path string, minGiB uint64) error {
	if err := ensureDir(path, 0o750); err != nil {
		return err
	}
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return err
	}
	free := (stat.Bavail * uint64(stat.Bsize)) / (1024 * 1024 * 1024)
	if free < minGiB {
		return fmt.Errorf("free space %dGiB < %dGiB", free, minGiB)
	}
	return nil
}
