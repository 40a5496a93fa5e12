package mapquiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kidquest/internal/geo"
	"github.com/abhisek/kidquest/internal/router"
	"github.com/abhisek/kidquest/internal/screen"
	"github.com/abhisek/kidquest/internal/screens/summary"
	"github.com/abhisek/kidquest/internal/store"
	"github.com/abhisek/kidquest/internal/ui/components"
	"github.com/abhisek/kidquest/internal/ui/layout"
	"github.com/abhisek/kidquest/internal/ui/theme"
)

// Deps are what the map quiz needs.
type Deps struct {
	Regions []geo.Region
	// Results may be nil; finished games are then not saved.
	Results store.GameResultRepo
	Logger  *zap.Logger

	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
	// Rand picks targets; nil uses a random seed.
	Rand *rand.Rand
}

// resultSavedMsg reports that a finished game was stored.
type resultSavedMsg struct {
	summary geo.Summary
	newBest bool
	err     error
}

// MapQuizScreen lets the player find regions by name. The list of
// clickable regions stands in for the map.
type MapQuizScreen struct {
	deps  Deps
	game  *geo.Game
	sched *teaScheduler
	snap  geo.Snapshot

	search     components.TextInput
	cursor     int
	continents []string
	contIdx    int

	// finished is set by the game's completion hook, which runs inside
	// Update while a transition fires.
	finished *geo.Summary
}

var _ screen.Screen = (*MapQuizScreen)(nil)
var _ screen.Resumer = (*MapQuizScreen)(nil)
var _ screen.Closer = (*MapQuizScreen)(nil)
var _ screen.StatusProvider = (*MapQuizScreen)(nil)
var _ screen.KeyHintProvider = (*MapQuizScreen)(nil)

// New creates a map quiz in mode, restricted to continent when counting
// countries. An empty mode means countries.
func New(deps Deps, mode geo.Mode, continent string) *MapQuizScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if mode == "" {
		mode = geo.ModeCountries
	}
	if continent == "" {
		continent = geo.AllContinents
	}

	s := &MapQuizScreen{
		deps:   deps,
		sched:  newTeaScheduler(),
		search: components.NewTextInput("type to search", nil, 40),
	}

	opts := []geo.Option{
		geo.WithScheduler(s.sched),
		geo.WithLogger(deps.Logger),
		geo.WithMode(mode),
		geo.WithContinentFilter(continent),
		geo.OnComplete(func(sum geo.Summary) { s.finished = &sum }),
	}
	if deps.CorrectDelay > 0 || deps.IncorrectDelay > 0 {
		opts = append(opts, geo.WithDelays(deps.CorrectDelay, deps.IncorrectDelay))
	}
	if deps.Rand != nil {
		opts = append(opts, geo.WithRand(deps.Rand))
	}
	s.game = geo.NewGame(deps.Regions, opts...)

	s.continents = s.game.Continents()
	s.contIdx = max(0, slices.IndexFunc(s.continents, func(c string) bool {
		return strings.EqualFold(c, continent)
	}))
	s.snap = s.game.Start()
	return s
}

func (s *MapQuizScreen) Init() tea.Cmd {
	return s.search.Init()
}

// Resume starts a new game when returning from the summary.
func (s *MapQuizScreen) Resume() tea.Cmd {
	if s.snap.Phase == geo.PhaseComplete {
		s.snap = s.game.Reset()
		s.cursor = 0
	}
	return nil
}

// Close stops the game when the screen leaves the stack. A pending round
// transition is cancelled and its tick, if already scheduled, is ignored.
func (s *MapQuizScreen) Close() {
	s.game.Close()
	s.sched.CancelAll()
}

func (s *MapQuizScreen) Title() string {
	if s.snap.Mode == geo.ModeContinents {
		return "Continent Quiz"
	}
	return "Country Quiz"
}

func (s *MapQuizScreen) HeaderStatus() string {
	return fmt.Sprintf("★ %d   Found %d/%d", s.snap.Score, len(s.snap.Revealed), s.snap.PoolSize)
}

func (s *MapQuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Pick"},
		{Key: "Enter", Description: "Click"},
		{Key: "Tab", Description: "Continent"},
		{Key: "Ctrl+T", Description: "Mode"},
		{Key: "Ctrl+R", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MapQuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerFiredMsg:
		s.sched.Fire(msg.id)
		s.snap = s.game.Snapshot()
		if s.finished != nil {
			sum := *s.finished
			s.finished = nil
			return s, s.saveResult(sum)
		}
		return s, nil

	case resultSavedMsg:
		if msg.err != nil {
			s.deps.Logger.Warn("saving map result failed", zap.String("game_id", msg.summary.GameID), zap.Error(msg.err))
		}
		next := summary.New(summary.MapResult(msg.summary, msg.newBest))
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			names := s.visibleNames()
			if s.cursor < len(names) {
				s.game.Click(names[s.cursor])
				s.snap = s.game.Snapshot()
			}
			return s, s.sched.Commands()
		case "up":
			s.cursor = max(0, s.cursor-1)
			return s, nil
		case "down":
			s.cursor = min(s.cursor+1, max(0, len(s.visibleNames())-1))
			return s, nil
		case "tab":
			s.cycleContinent(1)
			return s, nil
		case "shift+tab":
			s.cycleContinent(-1)
			return s, nil
		case "ctrl+t":
			next := geo.ModeContinents
			if s.snap.Mode == geo.ModeContinents {
				next = geo.ModeCountries
			}
			s.snap = s.game.SetMode(next)
			s.cursor = 0
			return s, nil
		case "ctrl+r":
			s.snap = s.game.Reset()
			s.cursor = 0
			return s, nil
		}
	}

	var cmd tea.Cmd
	before := s.search.Value()
	s.search, cmd = s.search.Update(msg)
	if s.search.Value() != before {
		s.cursor = 0
	}
	return s, cmd
}

func (s *MapQuizScreen) cycleContinent(delta int) {
	if len(s.continents) == 0 || s.snap.Mode == geo.ModeContinents {
		return
	}
	s.contIdx = (s.contIdx + delta + len(s.continents)) % len(s.continents)
	s.snap = s.game.SetContinentFilter(s.continents[s.contIdx])
	s.cursor = 0
}

// visibleNames lists the clickable regions matching the search, sorted.
func (s *MapQuizScreen) visibleNames() []string {
	query := geo.Normalize(s.search.Value())
	var names []string
	for _, r := range s.game.ActiveRegions() {
		if query == "" || strings.Contains(geo.Normalize(r.Name), query) {
			names = append(names, r.Name)
		}
	}
	slices.Sort(names)
	return names
}

func (s *MapQuizScreen) saveResult(sum geo.Summary) tea.Cmd {
	repo := s.deps.Results
	return func() tea.Msg {
		if repo == nil {
			return resultSavedMsg{summary: sum}
		}
		ctx := context.Background()
		best, ok, err := repo.Best(ctx, string(sum.Mode), sum.ContinentFilter)
		if err != nil {
			return resultSavedMsg{summary: sum, err: err}
		}
		_, err = repo.Append(ctx, store.GameResult{
			GameID:          sum.GameID,
			Mode:            string(sum.Mode),
			ContinentFilter: sum.ContinentFilter,
			Score:           sum.Score,
			Total:           sum.Total,
			Rounds:          sum.Rounds,
			FinishedAt:      sum.FinishedAt,
		})
		return resultSavedMsg{summary: sum, newBest: !ok || sum.Score > best.Score, err: err}
	}
}

func (s *MapQuizScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderPrompt())
	b.WriteString("\n\n")

	filter := s.snap.ContinentFilter
	if s.snap.Mode == geo.ModeContinents {
		filter = "n/a"
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Mode: %s   Continent: %s   Round %d", s.snap.Mode, filter, s.snap.Round)))
	b.WriteString("\n")
	b.WriteString(s.search.View())
	b.WriteString("\n\n")

	used := lipgloss.Height(b.String())
	listHeight := max(3, height-used-1)
	list := s.renderList(listHeight)

	mapWidth := width - 42
	if mapWidth >= 30 {
		mini := renderMiniMap(s.game.ActiveRegions(), s.snap, s.selectedName(), mapWidth, min(listHeight, 18))
		list = lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(40).Render(list), mini)
	}
	b.WriteString(list)

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

func (s *MapQuizScreen) selectedName() string {
	names := s.visibleNames()
	if s.cursor < len(names) {
		return names[s.cursor]
	}
	return ""
}

func (s *MapQuizScreen) renderPrompt() string {
	msgStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	switch {
	case s.snap.Phase == geo.PhaseComplete:
		msgStyle = msgStyle.Foreground(theme.ArcadeYellow)
	case s.snap.Phase == geo.PhaseResolving && s.snap.LastWrong != "":
		msgStyle = msgStyle.Foreground(theme.Error)
	case s.snap.Phase == geo.PhaseResolving:
		msgStyle = msgStyle.Foreground(theme.Success)
	}
	out := msgStyle.Render(s.snap.Message)
	if s.snap.Target != "" {
		out += "\n" + theme.Target.Render("Find: "+s.snap.Target)
	}
	return out
}

func (s *MapQuizScreen) renderList(height int) string {
	names := s.visibleNames()
	if len(names) == 0 {
		return theme.Hint.Render("No matches.")
	}

	revealed := make(map[string]bool, len(s.snap.Revealed))
	for _, n := range s.snap.Revealed {
		revealed[n] = true
	}

	start := 0
	if s.cursor >= height {
		start = s.cursor - height + 1
	}
	var lines []string
	for i := start; i < len(names) && len(lines) < height; i++ {
		name := names[i]
		cursor := "  "
		style := theme.Body
		mark := " "
		switch {
		case name == s.snap.LastWrong:
			style = theme.Missed
			mark = "✗"
		case revealed[name]:
			style = theme.Found
			mark = "✓"
		}
		if i == s.cursor {
			cursor = "▸ "
			style = theme.Cursor
		}
		lines = append(lines, cursor+mark+" "+style.Render(name))
	}
	return strings.Join(lines, "\n")
}
