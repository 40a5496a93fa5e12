package components

import (
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidquest/internal/ui/theme"
)

// AnswerRunes accepts what a list of whole-number answers is typed with.
func AnswerRunes(r rune) bool {
	return unicode.IsDigit(r) || r == ' ' || r == ','
}

// TextInput wraps bubbles/textinput with the app styling.
type TextInput struct {
	Model textinput.Model
	// Allow filters typed characters; nil accepts everything.
	Allow func(rune) bool

	submitted bool
	valid     bool
}

// NewTextInput creates a focused text input limited to maxLen characters.
func NewTextInput(placeholder string, allow func(rune) bool, maxLen int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return TextInput{Model: ti, Allow: allow}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Typing clears a previous ✓/✗ mark.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if r, size := utf8.DecodeRuneInString(key); size == len(key) && size > 0 {
			if t.Allow != nil && !t.Allow(r) {
				return t, nil
			}
			t.submitted = false
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + theme.Correct.Render("✓")
		} else {
			view += " " + theme.Incorrect.Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
