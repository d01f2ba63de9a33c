package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type tlsOption struct {
	skip  bool
	label string
	desc  string
}

type tlsSelectModel struct {
	state   *wizardState
	cursor  int
	options []tlsOption
}

func newTLSSelectModel(state *wizardState) *tlsSelectModel {
	return &tlsSelectModel{
		state: state,
		options: []tlsOption{
			{skip: true, label: "Trust self-signed certificate", desc: "Skip TLS verification (stock VyOS API cert)"},
			{skip: false, label: "Verify certificate", desc: "Require a valid TLS certificate on the router"},
		},
	}
}

func (m *tlsSelectModel) Init() tea.Cmd {
	for i, opt := range m.options {
		if opt.skip == m.state.skipTLS {
			m.cursor = i
			break
		}
	}
	return nil
}

func (m *tlsSelectModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenPortInput} }
		}
		if isUp(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isDown(msg) && m.cursor < len(m.options)-1 {
			m.cursor++
		}
		if isEnter(msg) {
			m.state.skipTLS = m.options[m.cursor].skip
			return m, func() tea.Msg { return navigateMsg{to: screenConfirm} }
		}
	}
	return m, nil
}

func (m *tlsSelectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TLS Verification"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("How should the backend validate the router's API certificate?"))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		radio := radioOff
		label := normalStyle.Render(opt.label)
		if i == m.cursor {
			radio = radioOn
			label = selectedStyle.Render(opt.label)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", radio, label))
		b.WriteString(fmt.Sprintf("      %s\n", mutedStyle.Render(opt.desc)))
	}

	b.WriteString(helpStyle.Render("\n  up/down: navigate  enter: select  esc: back"))
	return b.String()
}
