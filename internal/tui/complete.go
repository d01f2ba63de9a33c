package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JHarrison712/VyManager/internal/installer"
)

type completeModel struct {
	state  *wizardState
	reveal bool
}

func newCompleteModel(state *wizardState) *completeModel {
	return &completeModel{state: state}
}

func (m *completeModel) Init() tea.Cmd {
	m.reveal = false
	return nil
}

func (m *completeModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "u" {
			m.reveal = !m.reveal
			return m, nil
		}
		if isEnter(msg) || isEsc(msg) || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *completeModel) View() string {
	var b strings.Builder

	b.WriteString(successStyle.Render("  Installation Complete!"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Router:        %s\n", selectedStyle.Render(fmt.Sprintf("%s:%d", m.state.router, m.state.port))))
	b.WriteString(fmt.Sprintf("  Device label:  %s\n", normalStyle.Render(m.state.device)))
	b.WriteString(fmt.Sprintf("  Install root:  %s\n", normalStyle.Render(installer.GetInstallRoot())))

	apiKey := secretStyle.Render(strings.Repeat("*", 12))
	if m.reveal {
		apiKey = normalStyle.Render(m.state.apiKey)
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Router Configuration"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  Run on the router before first use:"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    configure"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    set service https api keys id vymanager key ") + apiKey)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    commit; save; exit"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("  Next Steps"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  $ systemctl status vymanager-backend vymanager-frontend"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  $ vyinstall config    # adjust backend settings later"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  Frontend at http://<this host>:3000"))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("\n  u: reveal API key  enter/q: exit"))
	return b.String()
}
