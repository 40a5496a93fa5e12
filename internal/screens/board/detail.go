package board

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidquest/internal/progress"
	"github.com/abhisek/kidquest/internal/screen"
	"github.com/abhisek/kidquest/internal/ui/components"
	"github.com/abhisek/kidquest/internal/ui/layout"
	"github.com/abhisek/kidquest/internal/ui/theme"
)

// CategoryDetailScreen shows per-topic progress for one category.
type CategoryDetailScreen struct {
	cat progress.CategoryStatus
}

var _ screen.Screen = (*CategoryDetailScreen)(nil)
var _ screen.KeyHintProvider = (*CategoryDetailScreen)(nil)

func newCategoryDetail(cat progress.CategoryStatus) *CategoryDetailScreen {
	return &CategoryDetailScreen{cat: cat}
}

func (d *CategoryDetailScreen) Init() tea.Cmd { return nil }
func (d *CategoryDetailScreen) Title() string { return d.cat.Category.Title }

func (d *CategoryDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *CategoryDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *CategoryDetailScreen) View(width, height int) string {
	contentWidth := width - 8
	if contentWidth > 70 {
		contentWidth = 70
	}

	state := "Open"
	switch {
	case d.cat.Complete:
		state = "Complete"
	case d.cat.Locked:
		state = "Locked, finish the previous category to open it"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + d.cat.Category.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("  " + state))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, t := range d.cat.Topics {
		nameWidth = max(nameWidth, lipgloss.Width(t.Topic.Name))
	}
	for _, t := range d.cat.Topics {
		label := fmt.Sprintf("%-*s", nameWidth, t.Topic.Name)
		bar := components.NewProgressBar(label, t.Done, len(t.Challenges), contentWidth)
		b.WriteString("  " + bar.View() + "\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}
