package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kidquest/internal/challenges"
	"github.com/abhisek/kidquest/internal/geo"
	"github.com/abhisek/kidquest/internal/progress"
	"github.com/abhisek/kidquest/internal/router"
	"github.com/abhisek/kidquest/internal/screen"
	"github.com/abhisek/kidquest/internal/screens/board"
	"github.com/abhisek/kidquest/internal/screens/home"
	"github.com/abhisek/kidquest/internal/screens/mapquiz"
	"github.com/abhisek/kidquest/internal/store"
	"github.com/abhisek/kidquest/internal/ui/layout"
)

// StartScreen selects a screen to open on top of home at launch.
type StartScreen int

const (
	StartHome StartScreen = iota
	StartBoard
	StartMap
)

// Options carries the services the screens need.
type Options struct {
	Progress *progress.Service
	Registry *challenges.Registry
	Regions  []geo.Region
	// Results may be nil, in which case finished games are not saved.
	Results store.GameResultRepo
	Logger  *zap.Logger

	CorrectDelay   time.Duration
	IncorrectDelay time.Duration

	Start        StartScreen
	MapMode      geo.Mode
	MapContinent string
}

func (o Options) homeDeps() home.Deps {
	return home.Deps{
		Board: o.boardDeps(),
		Map:   o.mapDeps(),
	}
}

func (o Options) boardDeps() board.Deps {
	return board.Deps{
		Progress: o.Progress,
		Registry: o.Registry,
		Logger:   o.Logger,
	}
}

func (o Options) mapDeps() mapquiz.Deps {
	return mapquiz.Deps{
		Regions:        o.Regions,
		Results:        o.Results,
		Logger:         o.Logger,
		CorrectDelay:   o.CorrectDelay,
		IncorrectDelay: o.IncorrectDelay,
	}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  screen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		router: router.New(home.New(opts.homeDeps())),
	}
	switch opts.Start {
	case StartBoard:
		m.start = board.New(opts.boardDeps())
	case StartMap:
		m.start = mapquiz.New(opts.mapDeps(), opts.MapMode, opts.MapContinent)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.start != nil {
		s := m.start
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: s} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.HeaderStatus()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
