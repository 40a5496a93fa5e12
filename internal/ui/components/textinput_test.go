package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func typeText(t TextInput, s string) TextInput {
	for _, r := range s {
		t, _ = t.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return t
}

func TestTextInput_AnswerFilter(t *testing.T) {
	in := NewTextInput("", AnswerRunes, 20)
	in = typeText(in, "1a2, 3x")
	assert.Equal(t, "12, 3", in.Value())
}

func TestTextInput_NoFilter(t *testing.T) {
	in := NewTextInput("", nil, 5)
	in = typeText(in, "Côte d'Ivoire")
	assert.Equal(t, "Côte ", in.Value(), "limited to five characters")
}

func TestTextInput_SubmitMarkClearsOnTyping(t *testing.T) {
	in := NewTextInput("", AnswerRunes, 20)
	in.Submit(false)
	assert.Contains(t, in.View(), "✗")

	in = typeText(in, "4")
	assert.NotContains(t, in.View(), "✗")
}
