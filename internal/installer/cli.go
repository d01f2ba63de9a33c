package installer

import (
	"flag"
	"fmt"
	"os"
)

// Run dispatches the vyinstall subcommands. The tui subcommand lives in the
// cmd package to keep this package free of bubbletea.
func Run(args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	switch args[0] {
	case "install":
		return cmdInstall(args[1:])
	case "doctor":
		return RunDoctor()
	case "secrets":
		return cmdSecrets()
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func usage() {
	fmt.Println(`vyinstall - VyManager stack provisioner

Usage:
  vyinstall tui                      interactive setup wizard (default on a terminal)
  vyinstall install [flags]          provision the full stack
  vyinstall config                   edit the installed backend environment
  vyinstall doctor                   run preflight checks
  vyinstall secrets                  generate a credential set without applying it

Install flags:
  --router host     router hostname or IP (prompted when omitted)
  --device name     device label (prompted when omitted)
  --port n          router API port (prompted when omitted)
  --verify-tls      verify the router's TLS certificate
  --yes             skip the confirmation pause
  --admin-dsn dsn   superuser DSN used for database provisioning

Environment:
  VYINSTALL_ROOT        install root (default /opt/vymanager)
  VYINSTALL_REPO        application repository URL
  VYINSTALL_ADMIN_DSN   superuser DSN
  VYINSTALL_TEMPLATES   template directory override`)
}

func cmdInstall(args []string) error {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	router := fs.String("router", "", "router hostname or IP")
	device := fs.String("device", "", "device label")
	port := fs.Int("port", 0, "router API port")
	verifyTLS := fs.Bool("verify-tls", false, "verify the router's TLS certificate")
	yes := fs.Bool("yes", false, "skip the confirmation pause")
	adminDSN := fs.String("admin-dsn", "", "superuser DSN for provisioning")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := DefaultConfig()
	HydrateFromManifest(&cfg)
	cfg.AssumeYes = *yes
	if *adminDSN != "" {
		cfg.AdminDSN = *adminDSN
	}

	// Flags win over prompts; anything left unset is asked interactively.
	flagged := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { flagged[f.Name] = true })
	if *router != "" {
		cfg.RouterHost = *router
	}
	if *device != "" {
		cfg.DeviceName = *device
	}
	if *port != 0 {
		cfg.RouterPort = *port
	}
	if flagged["verify-tls"] {
		cfg.SkipTLSVerify = !*verifyTLS
	}
	if *router == "" || *device == "" || *port == 0 {
		if err := PromptConfig(os.Stdin, os.Stdout, &cfg); err != nil {
			return err
		}
	}

	return RunInstall(cfg)
}

func cmdSecrets() error {
	creds, err := NewCredentials()
	if err != nil {
		return err
	}
	cfg := DefaultConfig()
	fmt.Printf("DB_PASSWORD=%s\n", creds.DBPassword)
	fmt.Printf("AUTH_SECRET=%s\n", creds.AuthSecret)
	fmt.Printf("VYOS_APIKEY=%s\n", creds.APIKey)
	fmt.Printf("DATABASE_URL=%s\n", creds.DatabaseURL(cfg))
	return nil
}
