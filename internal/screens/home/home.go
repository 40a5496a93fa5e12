package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidquest/internal/geo"
	"github.com/abhisek/kidquest/internal/progress"
	"github.com/abhisek/kidquest/internal/router"
	"github.com/abhisek/kidquest/internal/screen"
	"github.com/abhisek/kidquest/internal/screens/board"
	"github.com/abhisek/kidquest/internal/screens/mapquiz"
	"github.com/abhisek/kidquest/internal/ui/components"
	"github.com/abhisek/kidquest/internal/ui/layout"
)

// Deps are the dependencies of the screens reachable from home.
type Deps struct {
	Board board.Deps
	Map   mapquiz.Deps
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string

	completed      int
	total          int
	doneCategories int
	mascotVariant  MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	menuLabels := []string{"CURRICULUM", "COUNTRY QUIZ", "CONTINENT QUIZ", "EXIT GAME"}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen {
			return board.New(deps.Board)
		}), Disabled: deps.Board.Progress == nil},
		{Label: menuLabels[1], Action: push(func() screen.Screen {
			return mapquiz.New(deps.Map, geo.ModeCountries, geo.AllContinents)
		}), Disabled: len(deps.Map.Regions) == 0},
		{Label: menuLabels[2], Action: push(func() screen.Screen {
			return mapquiz.New(deps.Map, geo.ModeContinents, geo.AllContinents)
		}), Disabled: len(deps.Map.Regions) == 0},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h := &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
	h.refresh()
	return h
}

// refresh recomputes the stats bar and mascot from stored progress.
func (h *HomeScreen) refresh() {
	if h.deps.Board.Progress == nil {
		return
	}
	b := h.deps.Board.Progress.Board(context.Background())
	h.completed, h.total = b.Counts()

	h.doneCategories = 0
	for _, cat := range b.Categories {
		if cat.Complete {
			h.doneCategories++
		}
	}
	h.mascotVariant = mascotFor(b, h.doneCategories)
}

func mascotFor(b progress.Board, doneCategories int) MascotVariant {
	switch {
	case b.FirstTime:
		return MascotAlert
	case doneCategories > 0:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the stats when a child screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.completed, h.total, h.doneCategories, cw, compact))

	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		disabled[i] = item.Disabled
	}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, disabled))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
