package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JHarrison712/VyManager/internal/installer"
)

type validationResult struct {
	key     string
	ok      bool
	message string
}

type configValidateModel struct {
	cfg     installer.InstallConfig
	vars    map[string]string
	results []validationResult
}

func newConfigValidateModel(cfg installer.InstallConfig) *configValidateModel {
	return &configValidateModel{cfg: cfg}
}

func (m *configValidateModel) Init() tea.Cmd {
	m.results = m.validate()
	return nil
}

func (m *configValidateModel) validate() []validationResult {
	var results []validationResult

	required := []string{"VYOS_HOST", "VYOS_APIKEY", "VYOS_PORT"}
	for _, key := range required {
		val, exists := m.vars[key]
		if !exists || val == "" {
			results = append(results, validationResult{key: key, ok: false, message: "required but missing"})
		} else {
			results = append(results, validationResult{key: key, ok: true, message: "set"})
		}
	}

	if raw, ok := m.vars["VYOS_PORT"]; ok && raw != "" {
		if n, err := strconv.Atoi(raw); err != nil || n < 1 || n > 65535 {
			results = append(results, validationResult{key: "VYOS_PORT", ok: false, message: "not a valid port"})
		}
	}

	// The API key must be a full-strength token; a short one usually means a
	// hand-edited value.
	if key, ok := m.vars["VYOS_APIKEY"]; ok && key != "" {
		if len(key) < 32 {
			results = append(results, validationResult{key: "VYOS_APIKEY", ok: false, message: fmt.Sprintf("only %d chars; regenerate with 'g'", len(key))})
		} else {
			results = append(results, validationResult{key: "VYOS_APIKEY", ok: true, message: fmt.Sprintf("%d chars", len(key))})
		}
	}

	return results
}

func (m *configValidateModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) || isEnter(msg) || msg.String() == "q" {
			return m, func() tea.Msg {
				return configNavigateMsg{to: configScreenEditor}
			}
		}
	}
	return m, nil
}

func (m *configValidateModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Configuration Validation"))
	b.WriteString("\n\n")

	allOK := true
	for _, r := range m.results {
		icon := successStyle.Render("OK")
		if !r.ok {
			icon = warningStyle.Render("!!")
			allOK = false
		}
		b.WriteString(fmt.Sprintf("  %s %-20s %s\n", icon, normalStyle.Render(r.key), mutedStyle.Render(r.message)))
	}

	b.WriteString("\n")
	if allOK {
		b.WriteString(successStyle.Render("  All checks passed!"))
	} else {
		b.WriteString(warningStyle.Render("  Some issues found. Review above."))
	}

	b.WriteString(helpStyle.Render("\n\n  enter/esc: back to editor"))
	return b.String()
}
