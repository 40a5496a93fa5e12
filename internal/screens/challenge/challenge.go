package challenge

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kidquest/internal/challenges"
	"github.com/abhisek/kidquest/internal/progress"
	"github.com/abhisek/kidquest/internal/router"
	"github.com/abhisek/kidquest/internal/screen"
	"github.com/abhisek/kidquest/internal/screens/summary"
	"github.com/abhisek/kidquest/internal/ui/components"
	"github.com/abhisek/kidquest/internal/ui/layout"
	"github.com/abhisek/kidquest/internal/ui/theme"
)

// Deps are the services the challenge screen talks to.
type Deps struct {
	Progress *progress.Service
	Registry *challenges.Registry
	Logger   *zap.Logger
	// Rand seeds puzzle generation; nil uses a random seed.
	Rand *rand.Rand
}

// Target names the challenge to play.
type Target struct {
	CategoryID  string
	TopicID     string
	ChallengeID string
	TopicName   string
	Title       string
}

// completedMsg carries the result of recording a solved challenge.
type completedMsg struct {
	res progress.CompletionResult
	err error
}

// ChallengeScreen plays one generated puzzle. Challenges without a game
// can be ticked off directly.
type ChallengeScreen struct {
	deps    Deps
	target  Target
	title   string
	session *challenges.Session

	input    components.TextInput
	choice   components.MultiChoice
	feedback string
	good     bool
	saving   bool
	err      error
}

var _ screen.Screen = (*ChallengeScreen)(nil)
var _ screen.KeyHintProvider = (*ChallengeScreen)(nil)
var _ screen.StatusProvider = (*ChallengeScreen)(nil)

// New creates a challenge screen for target.
func New(deps Deps, target Target) *ChallengeScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &ChallengeScreen{deps: deps, target: target, title: target.Title}

	c := deps.Progress.Curriculum()
	h, err := deps.Registry.Lookup(challenges.Key{
		Subject:     c.Subject(),
		Year:        c.Year(),
		TopicID:     target.TopicID,
		ChallengeID: target.ChallengeID,
	})
	switch {
	case err == nil:
		s.title = h.Title()
		s.session = challenges.NewSession(h.Generate(deps.Rand))
		s.prepareInput()
	case errors.Is(err, challenges.ErrChallengeNotFound):
		deps.Logger.Debug("no game for challenge", zap.String("challenge", target.ChallengeID), zap.String("topic", target.TopicID))
	default:
		s.err = err
	}
	return s
}

func (s *ChallengeScreen) Init() tea.Cmd {
	if s.session != nil {
		return s.input.Init()
	}
	return nil
}

func (s *ChallengeScreen) Title() string {
	return s.title
}

func (s *ChallengeScreen) HeaderStatus() string {
	if s.session == nil {
		return ""
	}
	n, total := s.session.Position()
	return fmt.Sprintf("Q %d/%d", n, total)
}

func (s *ChallengeScreen) KeyHints() []layout.KeyHint {
	if s.session == nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Mark done"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if q, ok := s.session.Current(); ok && q.Kind == challenges.KindChoice {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Give up"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Give up"},
	}
}

func (s *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case completedMsg:
		s.saving = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		questions, mistakes := 0, 0
		if s.session != nil {
			questions = len(s.session.Puzzle().Questions)
			mistakes = s.session.Mistakes()
		}
		result := summary.ChallengeResult(s.title, questions, mistakes, msg.res)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(result)} }

	case tea.KeyMsg:
		if s.saving || s.err != nil {
			return s, nil
		}
		if s.session == nil {
			if msg.String() == "enter" {
				return s, s.complete()
			}
			return s, nil
		}
		return s, s.handleAnswerKey(msg)
	}

	if s.session != nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ChallengeScreen) handleAnswerKey(msg tea.KeyMsg) tea.Cmd {
	q, ok := s.session.Current()
	if !ok {
		return nil
	}

	if q.Kind == challenges.KindChoice {
		s.choice, _ = s.choice.Update(msg)
		if !s.choice.Submitted {
			return nil
		}
		return s.judge(s.session.Submit([]int{q.Options[s.choice.ChosenIndex]}), nil)
	}

	if msg.String() != "enter" {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	correct, err := s.session.SubmitText(s.input.Value())
	return s.judge(correct, err)
}

// judge shows feedback for an answer and moves on or finishes.
func (s *ChallengeScreen) judge(correct bool, err error) tea.Cmd {
	switch {
	case err != nil:
		s.feedback, s.good = err.Error(), false
		s.input.Model.SetValue("")
		return nil
	case !correct:
		s.feedback, s.good = "Not quite, try again.", false
		s.prepareInput()
		if q, ok := s.session.Current(); ok && q.Kind != challenges.KindChoice {
			s.input.Submit(false)
		}
		return nil
	}

	s.feedback, s.good = "Correct!", true
	if s.session.Done() {
		return s.complete()
	}
	s.prepareInput()
	return s.input.Init()
}

// prepareInput resets the answer widget for the current question.
func (s *ChallengeScreen) prepareInput() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	if q.Kind == challenges.KindChoice {
		opts := make([]string, len(q.Options))
		for i, o := range q.Options {
			opts[i] = strconv.Itoa(o)
		}
		s.choice = components.NewMultiChoice(q.Prompt, opts)
		return
	}
	placeholder := "type the missing numbers"
	if q.Kind == challenges.KindOrder {
		placeholder = "type all the numbers in order"
	}
	s.input = components.NewTextInput(placeholder, components.AnswerRunes, 60)
}

func (s *ChallengeScreen) complete() tea.Cmd {
	s.saving = true
	p, t := s.deps.Progress, s.target
	return func() tea.Msg {
		res, err := p.Complete(context.Background(), t.CategoryID, t.TopicID, t.ChallengeID)
		return completedMsg{res: res, err: err}
	}
}

func (s *ChallengeScreen) View(width, height int) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.target.TopicName))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.title))
	b.WriteString("\n\n")

	switch {
	case s.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Something went wrong: " + s.err.Error()))
		b.WriteString("\n\n" + dim.Render("Press Esc to go back."))
	case s.saving:
		b.WriteString(dim.Render("Saving…"))
	case s.session == nil:
		b.WriteString(theme.Body.Render("This challenge has no game yet."))
		b.WriteString("\n")
		b.WriteString(dim.Render("Did it on paper? Press Enter to mark it done."))
	default:
		b.WriteString(s.questionView())
	}

	if s.feedback != "" {
		style := theme.Incorrect
		if s.good {
			style = theme.Correct
		}
		b.WriteString("\n\n" + style.Render(s.feedback))
	}

	card := components.ArcadeCard(b.String(), components.ContentWidth(width))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *ChallengeScreen) questionView() string {
	q, ok := s.session.Current()
	if !ok {
		return ""
	}
	if q.Kind == challenges.KindChoice {
		return s.choice.View()
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(q.Render()))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d number(s), separated by spaces", q.Blanks())))
	return b.String()
}
