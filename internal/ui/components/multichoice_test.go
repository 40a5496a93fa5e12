package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestMultiChoice_NavigateAndSubmit(t *testing.T) {
	m := NewMultiChoice("Pick", []string{"7", "8", "9"})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Selected, "stays at the top")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, m.Submitted)
	assert.Equal(t, 1, m.ChosenIndex)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected, "ignores keys once submitted")
}

func TestMultiChoice_LetterKeys(t *testing.T) {
	m := NewMultiChoice("Pick", []string{"7", "8", "9"})

	m, _ = m.Update(tea.KeyPressMsg{Code: 'z', Text: "z"})
	assert.False(t, m.Submitted)

	m, _ = m.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	assert.True(t, m.Submitted)
	assert.Equal(t, 2, m.ChosenIndex)
	assert.Contains(t, m.View(), "C)  9")
}
