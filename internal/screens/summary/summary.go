package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidquest/internal/geo"
	"github.com/abhisek/kidquest/internal/progress"
	"github.com/abhisek/kidquest/internal/router"
	"github.com/abhisek/kidquest/internal/screen"
	"github.com/abhisek/kidquest/internal/ui/layout"
	"github.com/abhisek/kidquest/internal/ui/theme"
)

// NoteKind picks the colour of a summary note.
type NoteKind int

const (
	NoteInfo NoteKind = iota
	NoteUnlock
	NoteRecord
)

// Note is one highlighted line under the stats.
type Note struct {
	Text string
	Kind NoteKind
}

// Stat is a labelled value in the stats line.
type Stat struct {
	Label string
	Value string
}

// Result is what the summary screen shows.
type Result struct {
	Title   string
	Heading string
	Stats   []Stat
	Notes   []Note
}

// ChallengeResult summarises a solved challenge.
func ChallengeResult(puzzleTitle string, questions, mistakes int, res progress.CompletionResult) Result {
	r := Result{
		Title:   "Challenge Summary",
		Heading: "Challenge complete!",
		Stats: []Stat{
			{Label: "Challenge", Value: puzzleTitle},
			{Label: "Questions", Value: fmt.Sprint(questions)},
			{Label: "Mistakes", Value: fmt.Sprint(mistakes)},
		},
	}
	if res.AlreadyCompleted {
		r.Notes = append(r.Notes, Note{Text: "Practice round, this one was already done."})
	}
	if res.TopicCompleted {
		r.Notes = append(r.Notes, Note{Text: "Topic complete! The next topic is open.", Kind: NoteUnlock})
	}
	if res.CategoryCompleted {
		r.Notes = append(r.Notes, Note{Text: "Category complete! A new category is unlocked.", Kind: NoteUnlock})
	}
	return r
}

// MapResult summarises a finished map game. newBest marks a score that
// beats every earlier game with the same mode and filter.
func MapResult(s geo.Summary, newBest bool) Result {
	r := Result{
		Title:   "Map Summary",
		Heading: fmt.Sprintf("You found all %d %s!", s.Total, s.Mode.Noun()),
		Stats: []Stat{
			{Label: "Score", Value: fmt.Sprintf("%d/%d", s.Score, s.Total)},
			{Label: "Rounds", Value: fmt.Sprint(s.Rounds)},
			{Label: "Continent", Value: s.ContinentFilter},
		},
	}
	if s.Total > 0 && s.Score == s.Total {
		r.Notes = append(r.Notes, Note{Text: "Perfect game, no wrong clicks!", Kind: NoteRecord})
	}
	if newBest {
		r.Notes = append(r.Notes, Note{Text: "New best score!", Kind: NoteRecord})
	}
	return r
}

// SummaryScreen displays a finished challenge or game.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.result.Title
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	center := func(style lipgloss.Style, text string) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(style.Render(text)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), s.result.Heading)
	b.WriteString("\n")

	parts := make([]string, 0, len(s.result.Stats))
	for _, st := range s.result.Stats {
		parts = append(parts, fmt.Sprintf("%s: %s", st.Label, st.Value))
	}
	center(lipgloss.NewStyle().Foreground(theme.Text), strings.Join(parts, "      "))

	if len(s.result.Notes) > 0 {
		b.WriteString("\n")
		divider := strings.Repeat("─", min(width-8, 60))
		center(lipgloss.NewStyle().Foreground(theme.Border), divider)
		b.WriteString("\n")
		for _, n := range s.result.Notes {
			center(lipgloss.NewStyle().Foreground(noteColor(n.Kind)).Bold(n.Kind != NoteInfo), n.Text)
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func noteColor(k NoteKind) color.Color {
	switch k {
	case NoteUnlock:
		return theme.Success
	case NoteRecord:
		return theme.ArcadeYellow
	default:
		return theme.TextDim
	}
}
