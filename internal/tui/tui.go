package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenWelcome screen = iota
	screenRouterInput
	screenDeviceInput
	screenPortInput
	screenTLSSelect
	screenConfirm
	screenPreflight
	screenProgress
	screenComplete
	screenHelp
)

type navigateMsg struct {
	to screen
}

type wizardState struct {
	router  string
	device  string
	port    int
	skipTLS bool
	apiKey  string
}

type screenModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (screenModel, tea.Cmd)
	View() string
}

type rootModel struct {
	current  screen
	previous screen
	state    *wizardState
	screens  map[screen]screenModel
	width    int
	height   int
	quitting bool
}

func newRootModel() rootModel {
	state := &wizardState{skipTLS: true}
	screens := map[screen]screenModel{
		screenWelcome:     newWelcomeModel(),
		screenRouterInput: newRouterInputModel(state),
		screenDeviceInput: newDeviceInputModel(state),
		screenPortInput:   newPortInputModel(state),
		screenTLSSelect:   newTLSSelectModel(state),
		screenConfirm:     newConfirmModel(state),
		screenPreflight:   newPreflightModel(state),
		screenProgress:    newProgressModel(state),
		screenComplete:    newCompleteModel(state),
		screenHelp:        newHelpModel(),
	}

	return rootModel{
		current: screenWelcome,
		state:   state,
		screens: screens,
	}
}

// StartWizard runs the interactive install flow: prompts, confirmation,
// preflight, then the same step table the CLI runner uses.
func StartWizard() error {
	p := tea.NewProgram(newRootModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m rootModel) Init() tea.Cmd {
	return m.screens[m.current].Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Quit
		}
		// Help overlay accessible via '?' from any non-progress screen
		if msg.String() == "?" && m.current != screenProgress && m.current != screenHelp {
			m.previous = m.current
			m.current = screenHelp
			return m, m.screens[m.current].Init()
		}

	case navigateMsg:
		m.current = msg.to
		s := m.screens[m.current]
		return m, s.Init()

	case helpReturnMsg:
		m.current = m.previous
		return m, nil
	}

	s := m.screens[m.current]
	newScreen, cmd := s.Update(msg)
	m.screens[m.current] = newScreen
	return m, cmd
}

func (m rootModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.screens[m.current]
	content := s.View()

	// Step indicator for the input screens only
	if m.current >= screenRouterInput && m.current <= screenConfirm {
		step := int(m.current)
		total := int(screenConfirm)
		progress := mutedStyle.Render(fmt.Sprintf("Step %d of %d", step, total))
		content = content + "\n" + progress
	}

	return content
}
