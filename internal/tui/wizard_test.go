package tui

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JHarrison712/VyManager/internal/installer"
)

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyDown() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyDown}
}

// press delivers one key to the root model and, when the screen reacts by
// navigating, delivers that navigation too, the way the bubbletea loop would.
func press(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	m, cmd := m.Update(msg)
	if cmd == nil {
		return m
	}
	if nav, ok := cmd().(navigateMsg); ok {
		m, _ = m.Update(nav)
	}
	return m
}

func TestWizard_BlankInputsKeepDefaults(t *testing.T) {
	var m tea.Model = newRootModel()

	m = press(t, m, keyEnter()) // welcome: Install
	require.Equal(t, screenRouterInput, m.(rootModel).current)

	m = press(t, m, keyEnter()) // router: blank
	root := m.(rootModel)
	require.Equal(t, screenDeviceInput, root.current)
	assert.Equal(t, "192.168.1.1", root.state.router)

	m = press(t, m, keyEnter()) // device: blank
	root = m.(rootModel)
	require.Equal(t, screenPortInput, root.current)
	assert.Equal(t, "vyos", root.state.device)

	m = press(t, m, keyEnter()) // port: blank
	root = m.(rootModel)
	require.Equal(t, screenTLSSelect, root.current)
	assert.Equal(t, 443, root.state.port)

	m = press(t, m, keyEnter()) // TLS: default selection
	root = m.(rootModel)
	require.Equal(t, screenConfirm, root.current)
	assert.True(t, root.state.skipTLS)

	m = press(t, m, keyEnter()) // confirm: Confirm button
	assert.Equal(t, screenPreflight, m.(rootModel).current)
}

func TestWizard_TypedValuesOverrideDefaults(t *testing.T) {
	var m tea.Model = newRootModel()

	m = press(t, m, keyEnter())
	m = press(t, m, keyRunes("10.0.0.5"))
	m = press(t, m, keyEnter())
	m = press(t, m, keyRunes("edge-1"))
	m = press(t, m, keyEnter())
	m = press(t, m, keyRunes("8443"))
	m = press(t, m, keyEnter())
	m = press(t, m, keyDown()) // TLS: switch to verify
	m = press(t, m, keyEnter())

	root := m.(rootModel)
	require.Equal(t, screenConfirm, root.current)
	assert.Equal(t, "10.0.0.5", root.state.router)
	assert.Equal(t, "edge-1", root.state.device)
	assert.Equal(t, 8443, root.state.port)
	assert.False(t, root.state.skipTLS)
}

func TestRouterInput_RejectsInvalidHost(t *testing.T) {
	state := &wizardState{}
	m := newRouterInputModel(state)
	m.Init()
	m.input.SetValue("bad host!")

	next, cmd := m.Update(keyEnter())

	assert.Nil(t, cmd, "must not navigate on invalid input")
	assert.NotEmpty(t, next.(*routerInputModel).errMsg)
	assert.Empty(t, state.router)
}

func TestPortInput_RejectsOutOfRange(t *testing.T) {
	state := &wizardState{}
	m := newPortInputModel(state)
	m.Init()
	m.input.SetValue("99999")

	next, cmd := m.Update(keyEnter())

	assert.Nil(t, cmd, "must not navigate on invalid input")
	assert.NotEmpty(t, next.(*portInputModel).errMsg)
	assert.Zero(t, state.port)
}

func TestPreflight_MissingPrivilegesNotContinuable(t *testing.T) {
	m := newPreflightModel(&wizardState{})
	m.running = false
	m.notRoot = true
	m.hasWarn = true

	// No key sequence may reach the progress screen.
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyLeft}, {Type: tea.KeyRight},
	} {
		_, cmd := m.Update(msg)
		assert.Nil(t, cmd)
	}

	_, cmd := m.Update(keyEnter())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd(), "enter must exit, never continue")
}

func TestPreflight_InitDetectsMissingPrivileges(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root")
	}
	m := newPreflightModel(&wizardState{})
	m.Init()
	assert.True(t, m.notRoot)
}

func TestProgress_InitRequiresRoot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root")
	}
	m := newProgressModel(&wizardState{router: "10.0.0.1", device: "vyos", port: 443})

	cmd := m.Init()

	assert.Nil(t, cmd, "no step may start without privileges")
	assert.True(t, m.done)
	assert.Equal(t, installer.ErrNotRoot.Error(), m.errMsg)
	assert.Nil(t, m.inst, "the installer must not be constructed")
}
