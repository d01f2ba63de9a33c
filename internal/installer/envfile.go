package installer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func ReadDotEnv(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	vars := map[string]string{}
	s := bufio.NewScanner(file)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.Trim(strings.TrimSpace(parts[1]), "\"")
		vars[k] = v
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// WriteDotEnv overwrites exactly the keys in vars, by exact-match line
// substitution, preserving comments, blank lines and the original ordering.
// Keys not present in the file are appended at the end, in sorted order so
// the output is stable run to run.
func WriteDotEnv(path string, vars map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		// No existing file, write all vars fresh.
		var b strings.Builder
		for _, k := range sortedKeys(vars) {
			b.WriteString(k + "=" + vars[k] + "\n")
		}
		return os.WriteFile(path, []byte(b.String()), 0o640)
	}
	defer file.Close()

	written := map[string]bool{}
	var lines []string
	s := bufio.NewScanner(file)
	for s.Scan() {
		line := s.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			lines = append(lines, line)
			continue
		}
		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) != 2 {
			lines = append(lines, line)
			continue
		}
		key := strings.TrimSpace(parts[0])
		if newVal, ok := vars[key]; ok {
			lines = append(lines, key+"="+newVal)
			written[key] = true
		} else {
			lines = append(lines, line)
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	file.Close()

	for _, k := range sortedKeys(vars) {
		if !written[k] {
			lines = append(lines, k+"="+vars[k])
		}
	}

	content := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(path, []byte(content), 0o640)
}

func sortedKeys(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PatchBackendEnv seeds the backend .env from the repo's .env.example when
// missing, then substitutes the router and API-key settings in place. Every
// other line the application ships stays untouched.
func PatchBackendEnv(cfg InstallConfig, creds Credentials) error {
	target := cfg.BackendEnvPath()
	if _, err := os.Stat(target); err != nil {
		example := filepath.Join(cfg.BackendDir(), ".env.example")
		if err := copyFile(example, target); err != nil {
			return fmt.Errorf("seed backend env: %w", err)
		}
	}

	verify := "true"
	if cfg.SkipTLSVerify {
		verify = "false"
	}
	return WriteDotEnv(target, map[string]string{
		"VYOS_HOST":         cfg.RouterHost,
		"VYOS_APIKEY":       creds.APIKey,
		"VYOS_PORT":         fmt.Sprintf("%d", cfg.RouterPort),
		"VYOS_HTTPS_VERIFY": verify,
		"DEVICE_NAME":       cfg.DeviceName,
	})
}

// WriteFrontendEnv writes the frontend env file from scratch. It embeds the
// auth secret and the connection string composed from the same DBPassword
// the role was just provisioned with.
func WriteFrontendEnv(cfg InstallConfig, creds Credentials) error {
	tplPath := filepath.Join(findTemplatesDir(), "frontend.env")
	data := cfg.RenderData()
	data.DatabaseURL = creds.DatabaseURL(cfg)
	data.AuthSecret = creds.AuthSecret

	text, err := renderFile(tplPath, data)
	if err != nil {
		return fmt.Errorf("render frontend env: %w", err)
	}
	return os.WriteFile(cfg.FrontendEnvPath(), []byte(text), 0o640)
}
