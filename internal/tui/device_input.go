package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var deviceRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_\-]*$`)

const defaultDeviceName = "vyos"

type deviceInputModel struct {
	state  *wizardState
	input  textinput.Model
	errMsg string
}

func newDeviceInputModel(state *wizardState) *deviceInputModel {
	ti := textinput.New()
	ti.Placeholder = defaultDeviceName
	ti.CharLimit = 64
	ti.Width = 40

	return &deviceInputModel{
		state: state,
		input: ti,
	}
}

func (m *deviceInputModel) Init() tea.Cmd {
	if m.state.device != "" {
		m.input.SetValue(m.state.device)
	}
	m.input.Focus()
	return textinput.Blink
}

func (m *deviceInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenRouterInput} }
		}
		if isEnter(msg) {
			val := strings.TrimSpace(m.input.Value())
			if val == "" {
				val = defaultDeviceName
			}
			if !deviceRegex.MatchString(val) {
				m.errMsg = "Letters, digits, '-' and '_' only"
				return m, nil
			}
			m.errMsg = ""
			m.state.device = val
			return m, func() tea.Msg { return navigateMsg{to: screenPortInput} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *deviceInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Device Label"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Display name for the router inside VyManager."))
	b.WriteString("\n\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errMsg))
	}

	b.WriteString(helpStyle.Render("\n  enter: confirm (blank keeps default)  esc: back"))
	return b.String()
}
