package board

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kidquest/internal/challenges"
	"github.com/abhisek/kidquest/internal/progress"
	"github.com/abhisek/kidquest/internal/router"
	"github.com/abhisek/kidquest/internal/screen"
	"github.com/abhisek/kidquest/internal/screens/challenge"
	"github.com/abhisek/kidquest/internal/ui/layout"
	"github.com/abhisek/kidquest/internal/ui/theme"
)

// Deps are the services the board needs.
type Deps struct {
	Progress *progress.Service
	Registry *challenges.Registry
	Logger   *zap.Logger
}

type rowKind int

const (
	rowCategory rowKind = iota
	rowTopic
	rowChallenge
)

type row struct {
	kind rowKind
	cat  int
	top  int
	ch   int
}

// BoardScreen displays the curriculum with lock and completion state.
type BoardScreen struct {
	deps         Deps
	board        progress.Board
	rows         []row
	cursor       int
	scrollOffset int
	notice       string
}

var _ screen.Screen = (*BoardScreen)(nil)
var _ screen.Resumer = (*BoardScreen)(nil)
var _ screen.StatusProvider = (*BoardScreen)(nil)

// New creates a board with the cursor on the next playable challenge.
func New(deps Deps) *BoardScreen {
	s := &BoardScreen{deps: deps}
	s.reload()
	s.jumpToNext()
	return s
}

func (s *BoardScreen) Init() tea.Cmd {
	return nil
}

// Resume re-reads progress after a challenge screen closes.
func (s *BoardScreen) Resume() tea.Cmd {
	s.reload()
	return nil
}

func (s *BoardScreen) reload() {
	s.board = s.deps.Progress.Board(context.Background())

	s.rows = s.rows[:0]
	for ci, cat := range s.board.Categories {
		s.rows = append(s.rows, row{kind: rowCategory, cat: ci})
		for ti, topic := range cat.Topics {
			s.rows = append(s.rows, row{kind: rowTopic, cat: ci, top: ti})
			for chi := range topic.Challenges {
				s.rows = append(s.rows, row{kind: rowChallenge, cat: ci, top: ti, ch: chi})
			}
		}
	}
	if s.cursor >= len(s.rows) || (len(s.rows) > 0 && s.rows[s.cursor].kind != rowChallenge) {
		s.cursor = 0
		s.moveCursor(1)
	}
}

func (s *BoardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		s.notice = ""
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextCategory()
		case "shift+tab":
			s.prevCategory()
		case "n":
			s.jumpToNext()
		case "d":
			return s, s.openDetail()
		case "enter":
			return s, s.openChallenge()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *BoardScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	listHeight := height
	if s.notice != "" {
		listHeight -= 2
	}
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < listHeight; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowCategory:
			lines = append(lines, s.renderCategory(s.board.Categories[r.cat], width))
		case rowTopic:
			lines = append(lines, s.renderTopic(s.board.Categories[r.cat].Topics[r.top], width))
		case rowChallenge:
			lines = append(lines, s.renderChallenge(r, i == s.cursor, width))
		}
	}

	out := strings.Join(lines, "\n")
	if s.notice != "" {
		out += "\n\n" + theme.Notice.PaddingLeft(2).Render(s.notice)
	}
	return out
}

func (s *BoardScreen) Title() string {
	return "Curriculum"
}

func (s *BoardScreen) HeaderStatus() string {
	done, total := s.board.Counts()
	return fmt.Sprintf("✓ %d/%d", done, total)
}

// KeyHints returns the key binding hints for the footer.
func (s *BoardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Category"},
		{Key: "n", Description: "Next up"},
		{Key: "d", Description: "Details"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BoardScreen) status(r row) progress.ChallengeStatus {
	return s.board.Categories[r.cat].Topics[r.top].Challenges[r.ch]
}

// moveCursor moves the cursor by delta, skipping header rows.
func (s *BoardScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowChallenge {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextCategory jumps the cursor to the first challenge of the next category.
func (s *BoardScreen) nextCategory() {
	current := s.rows[s.cursor].cat
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowChallenge && s.rows[i].cat != current {
			s.cursor = i
			return
		}
	}
}

// prevCategory jumps the cursor to the first challenge of the previous category.
func (s *BoardScreen) prevCategory() {
	current := s.rows[s.cursor].cat
	if current == 0 {
		return
	}
	for i, r := range s.rows {
		if r.kind == rowChallenge && r.cat == current-1 {
			s.cursor = i
			return
		}
	}
}

// jumpToNext puts the cursor on the first unlocked, unfinished challenge.
func (s *BoardScreen) jumpToNext() {
	for i, r := range s.rows {
		if r.kind == rowChallenge && s.status(r).State == progress.StateUnlocked {
			s.cursor = i
			return
		}
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *BoardScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	// Keep the topic and category headers above the cursor in view.
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind != rowChallenge {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *BoardScreen) openChallenge() tea.Cmd {
	if len(s.rows) == 0 {
		return nil
	}
	r := s.rows[s.cursor]
	st := s.status(r)
	if st.Locked() {
		s.notice = "🔒 Finish the challenges before this one first."
		return nil
	}

	cat := s.board.Categories[r.cat]
	topic := cat.Topics[r.top]
	scr := challenge.New(challenge.Deps{
		Progress: s.deps.Progress,
		Registry: s.deps.Registry,
		Logger:   s.deps.Logger,
	}, challenge.Target{
		CategoryID:  cat.Category.ID,
		TopicID:     topic.Topic.ID,
		ChallengeID: st.Challenge.ID,
		TopicName:   topic.Topic.Name,
		Title:       st.Challenge.Title,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (s *BoardScreen) openDetail() tea.Cmd {
	if len(s.rows) == 0 {
		return nil
	}
	detail := newCategoryDetail(s.board.Categories[s.rows[s.cursor].cat])
	return func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
}

func (s *BoardScreen) renderCategory(c progress.CategoryStatus, width int) string {
	icon := ""
	switch {
	case c.Complete:
		icon = " " + progress.StateCompleted.Icon()
	case c.Locked:
		icon = " " + progress.StateLocked.Icon()
	}
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(c.Category.Title) + icon)
}

func (s *BoardScreen) renderTopic(t progress.TopicStatus, width int) string {
	style := theme.Unlocked
	switch {
	case t.Complete:
		style = theme.Completed
	case t.Locked:
		style = theme.Locked
	}
	count := theme.Locked.Render(fmt.Sprintf("%d/%d", t.Done, len(t.Challenges)))
	return "    " + style.Bold(true).Render(t.Topic.Name) + "  " + count
}

func (s *BoardScreen) renderChallenge(r row, selected bool, width int) string {
	st := s.status(r)

	var style lipgloss.Style
	switch {
	case selected:
		style = theme.Cursor
	case st.State == progress.StateCompleted:
		style = theme.Completed
	case st.State == progress.StateUnlocked:
		style = theme.Unlocked
	default:
		style = theme.Locked
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	game := ""
	cat := s.board.Categories[r.cat]
	topic := cat.Topics[r.top]
	if s.deps.Registry != nil && s.deps.Registry.Has(challenges.Key{
		Subject:     s.board.Subject,
		Year:        s.board.Year,
		TopicID:     topic.Topic.ID,
		ChallengeID: st.Challenge.ID,
	}) {
		game = theme.GameBadge.Render("  ★ game")
	}

	return fmt.Sprintf("      %s%s %s%s",
		cursor,
		st.State.Icon(),
		style.Render(st.Challenge.Title),
		game,
	)
}
