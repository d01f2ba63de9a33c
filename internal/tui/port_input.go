package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultRouterPort = 443

type portInputModel struct {
	state  *wizardState
	input  textinput.Model
	errMsg string
}

func newPortInputModel(state *wizardState) *portInputModel {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(defaultRouterPort)
	ti.CharLimit = 5
	ti.Width = 10

	return &portInputModel{
		state: state,
		input: ti,
	}
}

func (m *portInputModel) Init() tea.Cmd {
	if m.state.port != 0 {
		m.input.SetValue(strconv.Itoa(m.state.port))
	}
	m.input.Focus()
	return textinput.Blink
}

func (m *portInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenDeviceInput} }
		}
		if isEnter(msg) {
			val := strings.TrimSpace(m.input.Value())
			if val == "" {
				val = strconv.Itoa(defaultRouterPort)
			}
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 || n > 65535 {
				m.errMsg = "Port must be between 1 and 65535"
				return m, nil
			}
			m.errMsg = ""
			m.state.port = n
			return m, func() tea.Msg { return navigateMsg{to: screenTLSSelect} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *portInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Router API Port"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Port of the VyOS HTTPS API on the router."))
	b.WriteString("\n\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errMsg))
	}

	b.WriteString(helpStyle.Render("\n  enter: confirm (blank keeps default)  esc: back"))
	return b.String()
}
