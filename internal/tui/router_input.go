package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Hostname or IPv4; good enough to catch obvious typos without rejecting
// valid internal names.
var hostRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.\-]*[a-zA-Z0-9])?$`)

const defaultRouterHost = "192.168.1.1"

type routerInputModel struct {
	state  *wizardState
	input  textinput.Model
	errMsg string
}

func newRouterInputModel(state *wizardState) *routerInputModel {
	ti := textinput.New()
	ti.Placeholder = defaultRouterHost
	ti.CharLimit = 253
	ti.Width = 40

	return &routerInputModel{
		state: state,
		input: ti,
	}
}

func (m *routerInputModel) Init() tea.Cmd {
	if m.state.router != "" {
		m.input.SetValue(m.state.router)
	}
	m.input.Focus()
	return textinput.Blink
}

func (m *routerInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenWelcome} }
		}
		if isEnter(msg) {
			val := strings.TrimSpace(m.input.Value())
			if val == "" {
				val = defaultRouterHost
			}
			if !hostRegex.MatchString(val) {
				m.errMsg = "Invalid hostname or IP"
				return m, nil
			}
			m.errMsg = ""
			m.state.router = val
			return m, func() tea.Msg { return navigateMsg{to: screenDeviceInput} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *routerInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Router"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Hostname or IP of the VyOS router this instance will manage."))
	b.WriteString("\n\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errMsg))
	}

	b.WriteString(helpStyle.Render("\n  enter: confirm (blank keeps default)  esc: back"))
	return b.String()
}
