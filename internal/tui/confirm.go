package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JHarrison712/VyManager/internal/installer"
)

type confirmModel struct {
	state  *wizardState
	cursor int
}

func newConfirmModel(state *wizardState) *confirmModel {
	return &confirmModel{state: state}
}

func (m *confirmModel) Init() tea.Cmd {
	m.cursor = 0
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenTLSSelect} }
		}
		if (isLeft(msg) || isUp(msg)) && m.cursor > 0 {
			m.cursor--
		}
		if (isRight(msg) || isDown(msg)) && m.cursor < 2 {
			m.cursor++
		}
		if isEnter(msg) {
			switch m.cursor {
			case 0: // Confirm
				return m, func() tea.Msg { return navigateMsg{to: screenPreflight} }
			case 1: // Back
				return m, func() tea.Msg { return navigateMsg{to: screenTLSSelect} }
			case 2: // Cancel
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *confirmModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Confirm Installation"))
	b.WriteString("\n\n")

	verify := "no (trust self-signed)"
	if !m.state.skipTLS {
		verify = "yes"
	}

	b.WriteString(subtitleStyle.Render("  Summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Router:        %s\n", selectedStyle.Render(fmt.Sprintf("%s:%d", m.state.router, m.state.port))))
	b.WriteString(fmt.Sprintf("  Device label:  %s\n", selectedStyle.Render(m.state.device)))
	b.WriteString(fmt.Sprintf("  TLS verify:    %s\n", selectedStyle.Render(verify)))
	b.WriteString(fmt.Sprintf("  Install root:  %s\n", normalStyle.Render(installer.GetInstallRoot())))

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Equivalent CLI Command"))
	b.WriteString("\n")
	tlsFlag := ""
	if !m.state.skipTLS {
		tlsFlag = " --verify-tls"
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  $ vyinstall install --router %s --device %s --port %d%s",
		m.state.router, m.state.device, m.state.port, tlsFlag)))
	b.WriteString("\n\n")

	buttons := []string{"Confirm", "Back", "Cancel"}
	for i, btn := range buttons {
		if i == m.cursor {
			b.WriteString("  " + borderStyle.Render(selectedStyle.Render(btn)))
		} else {
			b.WriteString("  " + normalStyle.Render("["+btn+"]"))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("\n  left/right: navigate  enter: select  esc: back"))
	return b.String()
}
