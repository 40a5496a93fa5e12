package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidquest/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It only records the pick;
// judging the answer is up to the caller.
type MultiChoice struct {
	Question    string
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Enter submits the highlighted option and the
// option letters (a, b, c...) submit directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = max(0, m.Selected-1)
	case "down", "j":
		m.Selected = min(len(m.Options)-1, m.Selected+1)
	case "enter":
		m.submit(m.Selected)
	default:
		if len(key) == 1 {
			if i := int(key[0] - 'a'); i >= 0 && i < len(m.Options) {
				m.submit(i)
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) submit(i int) {
	if i < 0 || i >= len(m.Options) {
		return
	}
	m.Selected = i
	m.Submitted = true
	m.ChosenIndex = i
}

// View renders the question and the lettered options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		style := theme.Body
		if i == m.Selected {
			prefix = "▸ "
			style = theme.Cursor
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
