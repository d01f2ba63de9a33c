package installer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Step is one unit of the provisioning run. Steps execute strictly in
// order; the first failure aborts the whole run with no rollback.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Installer holds the state one run threads through its steps. The
// credential set is generated by its own step and consumed by the database
// and env-file steps that follow it.
type Installer struct {
	cfg   InstallConfig
	log   zerolog.Logger
	creds Credentials
}

func New(cfg InstallConfig, log zerolog.Logger) *Installer {
	return &Installer{cfg: cfg, log: log}
}

// Steps returns the ordered step table. The CLI runner and the TUI progress
// screen both drive exactly this list.
func (in *Installer) Steps() []Step {
	return []Step{
		{"Installing OS packages", func(ctx context.Context) error {
			return installPackages(in.log)
		}},
		{"Creating service user", func(ctx context.Context) error {
			return ensureServiceUser(in.log, in.cfg)
		}},
		{"Cloning application repository", func(ctx context.Context) error {
			return cloneRepo(in.log, in.cfg)
		}},
		{"Generating credentials", func(ctx context.Context) error {
			creds, err := NewCredentials()
			if err != nil {
				return err
			}
			in.creds = creds
			return nil
		}},
		{"Provisioning database", func(ctx context.Context) error {
			return ProvisionDatabase(ctx, in.log, in.cfg, in.creds)
		}},
		{"Writing backend environment", func(ctx context.Context) error {
			return PatchBackendEnv(in.cfg, in.creds)
		}},
		{"Writing frontend environment", func(ctx context.Context) error {
			return WriteFrontendEnv(in.cfg, in.creds)
		}},
		{"Fixing ownership", func(ctx context.Context) error {
			return chownInstallRoot(in.log, in.cfg)
		}},
		{"Building backend", func(ctx context.Context) error {
			return buildBackend(in.log, in.cfg)
		}},
		{"Building frontend", func(ctx context.Context) error {
			return buildFrontend(in.log, in.cfg)
		}},
		{"Registering systemd services", func(ctx context.Context) error {
			return installSystemdUnits(in.log, in.cfg)
		}},
		{"Writing install manifest", func(ctx context.Context) error {
			return WriteManifest(in.cfg.ManifestPath(), NewManifest(in.cfg))
		}},
	}
}

// APIKey exposes the generated router API key for the completion banner.
// Empty until the credential step has run.
func (in *Installer) APIKey() string {
	return in.creds.APIKey
}

// RunInstall is the CLI-mode entry point: check privileges, show the plan,
// wait for the operator, then run every step in order.
func RunInstall(cfg InstallConfig) error {
	return runInstall(cfg, os.Stdin, os.Stdout)
}

// Nothing may touch the filesystem before the operator confirms; even the
// install root and the run log wait for the pause.
func runInstall(cfg InstallConfig, stdin io.Reader, stdout io.Writer) error {
	if os.Geteuid() != 0 {
		return ErrNotRoot
	}

	printPlan(stdout, cfg)
	if !cfg.AssumeYes {
		if !confirmProceed(stdin, stdout) {
			fmt.Fprintln(stdout, "aborted")
			return nil
		}
	}

	if err := ensureDir(cfg.InstallRoot, 0o750); err != nil {
		return err
	}
	log, err := NewLogger(cfg.LogPath(), false)
	if err != nil {
		return err
	}

	in := New(cfg, log)
	ctx := context.Background()
	steps := in.Steps()
	for i, step := range steps {
		fmt.Fprintf(stdout, "[%d/%d] %s\n", i+1, len(steps), step.Name)
		log.Info().Str("step", step.Name).Msg("step started")
		if err := step.Run(ctx); err != nil {
			log.Error().Str("step", step.Name).Err(err).Msg("step failed")
			return fmt.Errorf("%s: %w", step.Name, err)
		}
		log.Info().Str("step", step.Name).Msg("step done")
	}

	printSummary(stdout, cfg, in.APIKey())
	return nil
}

func printPlan(w io.Writer, cfg InstallConfig) {
	fmt.Fprintln(w, "VyManager installation plan")
	fmt.Fprintf(w, "  Install root:   %s\n", cfg.InstallRoot)
	fmt.Fprintf(w, "  Service user:   %s\n", cfg.ServiceUser)
	fmt.Fprintf(w, "  Router:         %s:%d (%s)\n", cfg.RouterHost, cfg.RouterPort, cfg.DeviceName)
	fmt.Fprintf(w, "  TLS verify:     %v\n", !cfg.SkipTLSVerify)
	fmt.Fprintf(w, "  Auth database:  %s/%s on %s:%d\n", cfg.DBUser, cfg.DBName, cfg.DBHost, cfg.DBPort)
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, cfg InstallConfig, apiKey string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation complete.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configure the API key on the router before first use:")
	fmt.Fprintln(w, "  configure")
	fmt.Fprintf(w, "  set service https api keys id vymanager key %s\n", apiKey)
	fmt.Fprintln(w, "  commit; save; exit")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Frontend: http://%s:3000\n", hostnameOrLocal())
	fmt.Fprintf(w, "Logs:     journalctl -u vymanager-backend -u vymanager-frontend -f\n")
	fmt.Fprintf(w, "Run log:  %s\n", cfg.LogPath())
}

func hostnameOrLocal() string {
	h, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return h
}
