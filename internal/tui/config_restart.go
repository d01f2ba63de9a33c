package tui

import (
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JHarrison712/VyManager/internal/installer"
)

// Changed keys map to the systemd units that read them at start.
var keyServiceMap = map[string][]string{
	"VYOS_HOST":         {"vymanager-backend"},
	"VYOS_APIKEY":       {"vymanager-backend"},
	"VYOS_PORT":         {"vymanager-backend"},
	"VYOS_HTTPS_VERIFY": {"vymanager-backend"},
	"DEVICE_NAME":       {"vymanager-backend", "vymanager-frontend"},
}

type restartDoneMsg struct {
	err error
}

type configRestartModel struct {
	cfg         installer.InstallConfig
	changedKeys []string
	services    []string
	cursor      int
	applyDone   bool
	applyErr    string
}

func newConfigRestartModel(cfg installer.InstallConfig) *configRestartModel {
	return &configRestartModel{cfg: cfg}
}

func (m *configRestartModel) Init() tea.Cmd {
	serviceSet := map[string]bool{}
	for _, key := range m.changedKeys {
		if svcs, ok := keyServiceMap[key]; ok {
			for _, s := range svcs {
				serviceSet[s] = true
			}
		} else {
			// Unknown keys belong to the backend env file, so restart it.
			serviceSet["vymanager-backend"] = true
		}
	}
	m.services = nil
	for s := range serviceSet {
		m.services = append(m.services, s)
	}
	m.cursor = 0
	m.applyDone = false
	m.applyErr = ""
	return nil
}

func (m *configRestartModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.applyDone {
			return m, func() tea.Msg {
				return configNavigateMsg{to: configScreenEditor}
			}
		}

		switch {
		case isLeft(msg) && m.cursor > 0:
			m.cursor--
		case isRight(msg) && m.cursor < 1:
			m.cursor++
		case isEnter(msg):
			if m.cursor == 0 {
				return m, m.restartServices()
			}
			return m, func() tea.Msg {
				return configNavigateMsg{to: configScreenEditor}
			}
		case isEsc(msg):
			return m, func() tea.Msg {
				return configNavigateMsg{to: configScreenEditor}
			}
		}

	case restartDoneMsg:
		m.applyDone = true
		if msg.err != nil {
			m.applyErr = msg.err.Error()
		}
	}

	return m, nil
}

func (m *configRestartModel) restartServices() tea.Cmd {
	return func() tea.Msg {
		args := append([]string{"restart"}, m.services...)
		if out, err := exec.Command("systemctl", args...).CombinedOutput(); err != nil {
			return restartDoneMsg{err: fmt.Errorf("%v: %s", err, strings.TrimSpace(string(out)))}
		}
		return restartDoneMsg{}
	}
}

func (m *configRestartModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Restart Services"))
	b.WriteString("\n\n")

	if len(m.changedKeys) > 0 {
		b.WriteString(subtitleStyle.Render("  Changed variables:"))
		b.WriteString("\n")
		for _, k := range m.changedKeys {
			b.WriteString(fmt.Sprintf("  - %s\n", normalStyle.Render(k)))
		}
		b.WriteString("\n")
	}

	if len(m.services) > 0 {
		b.WriteString(subtitleStyle.Render("  Affected services:"))
		b.WriteString("\n")
		for _, s := range m.services {
			b.WriteString(fmt.Sprintf("  - %s\n", warningStyle.Render(s)))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(mutedStyle.Render("  No service restart needed."))
		b.WriteString("\n\n")
	}

	if m.applyDone {
		if m.applyErr != "" {
			b.WriteString(errorStyle.Render("  Restart error: " + m.applyErr))
		} else {
			b.WriteString(successStyle.Render("  Services restarted successfully!"))
		}
		b.WriteString(helpStyle.Render("\n\n  press any key to continue"))
	} else if len(m.services) > 0 {
		buttons := []string{"Apply Now", "Later"}
		for i, btn := range buttons {
			if i == m.cursor {
				b.WriteString("  " + borderStyle.Render(selectedStyle.Render(btn)))
			} else {
				b.WriteString("  " + normalStyle.Render("["+btn+"]"))
			}
			b.WriteString("  ")
		}
		b.WriteString(helpStyle.Render("\n\n  left/right: navigate  enter: select  esc: back"))
	} else {
		b.WriteString(helpStyle.Render("  press enter or esc to continue"))
	}

	return b.String()
}
