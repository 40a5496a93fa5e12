package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg int

func pick(i int) func() tea.Cmd {
	return func() tea.Cmd { return func() tea.Msg { return pickedMsg(i) } }
}

func testMenu() Menu {
	return NewMenu([]MenuItem{
		{Label: "A", Action: pick(0), Disabled: true},
		{Label: "B", Action: pick(1)},
		{Label: "C", Action: pick(2), Disabled: true},
		{Label: "D", Action: pick(3)},
	})
}

func TestMenu_SkipsDisabledAndWraps(t *testing.T) {
	m := testMenu()
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected, "wraps to the top")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 3, m.Selected, "wraps to the bottom")
}

func TestMenu_EnterAndDigits(t *testing.T) {
	m := testMenu()

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg(1), cmd())

	m, cmd = m.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg(3), cmd())
	assert.Equal(t, 3, m.Selected)

	_, cmd = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	assert.Nil(t, cmd, "disabled items cannot be picked by number")
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}})
	assert.Equal(t, 0, m.Selected)

	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, m.Selected)
}
