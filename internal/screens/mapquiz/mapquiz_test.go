package mapquiz

import (
	"context"
	"math/rand/v2"
	"slices"
	"sort"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kidquest/internal/geo"
	"github.com/abhisek/kidquest/internal/router"
	"github.com/abhisek/kidquest/internal/screens/summary"
	"github.com/abhisek/kidquest/internal/store"
)

// memResults is an in-memory GameResultRepo.
type memResults struct {
	mu      sync.Mutex
	results []store.GameResult
}

func (m *memResults) Append(_ context.Context, r store.GameResult) (store.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.Sequence = int64(len(m.results) + 1)
	m.results = append(m.results, r)
	return r, nil
}

func (m *memResults) Recent(_ context.Context, limit int) ([]store.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.results)
	slices.Reverse(out)
	return out[:min(limit, len(out))], nil
}

func (m *memResults) Best(_ context.Context, mode, filter string) (store.GameResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best store.GameResult
	found := false
	for _, r := range m.results {
		if r.Mode == mode && r.ContinentFilter == filter && (!found || r.Score > best.Score) {
			best, found = r, true
		}
	}
	return best, found, nil
}

func newQuiz(t *testing.T, results store.GameResultRepo) *MapQuizScreen {
	t.Helper()
	return New(Deps{
		Regions: geo.SampleRegions(),
		Results: results,
		Rand:    rand.New(rand.NewPCG(3, 4)),
	}, geo.ModeCountries, "Europe")
}

func enter() tea.Msg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

// pointAt moves the cursor onto name.
func pointAt(t *testing.T, s *MapQuizScreen, name string) {
	t.Helper()
	i := slices.Index(s.visibleNames(), name)
	require.GreaterOrEqual(t, i, 0, "%s not visible", name)
	s.cursor = i
}

// pendingIDs returns the ids of the screen's live timers in order.
func pendingIDs(s *MapQuizScreen) []uint64 {
	s.sched.mu.Lock()
	defer s.sched.mu.Unlock()
	ids := make([]uint64, 0, len(s.sched.pending))
	for id := range s.sched.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// fireAll delivers every pending timer to the screen in id order.
func fireAll(s *MapQuizScreen) tea.Cmd {
	var last tea.Cmd
	for _, id := range pendingIDs(s) {
		_, cmd := s.Update(timerFiredMsg{id: id})
		if cmd != nil {
			last = cmd
		}
	}
	return last
}

func wrongName(s *MapQuizScreen) string {
	for _, n := range s.visibleNames() {
		if n != s.snap.Target {
			return n
		}
	}
	return ""
}

func TestMapQuiz_StartsAwaitingGuess(t *testing.T) {
	s := newQuiz(t, nil)

	assert.Equal(t, geo.PhaseAwaitingGuess, s.snap.Phase)
	assert.Equal(t, 4, s.snap.PoolSize)
	assert.Equal(t, []string{"France", "Germany", "Italy", "Spain"}, s.visibleNames())
	assert.Equal(t, "Country Quiz", s.Title())
	assert.Equal(t, "★ 0   Found 0/4", s.HeaderStatus())
	assert.Contains(t, s.View(120, 30), "Find: "+s.snap.Target)
}

func TestMapQuiz_CorrectClickSchedulesTransition(t *testing.T) {
	s := newQuiz(t, nil)
	target := s.snap.Target

	pointAt(t, s, target)
	_, cmd := s.Update(enter())
	assert.NotNil(t, cmd, "a tick command is returned for the transition")
	assert.Equal(t, geo.PhaseResolving, s.snap.Phase)
	assert.Equal(t, "Correct! That is "+target+".", s.snap.Message)
	assert.Equal(t, 1, s.sched.Pending())

	// Clicks while resolving are ignored.
	s.Update(enter())
	assert.Equal(t, 1, s.snap.Score)

	fireAll(s)
	assert.Equal(t, geo.PhaseAwaitingGuess, s.snap.Phase)
	assert.Equal(t, 2, s.snap.Round)
	assert.NotEqual(t, target, s.snap.Target)
}

func TestMapQuiz_WrongClick(t *testing.T) {
	s := newQuiz(t, nil)
	target := s.snap.Target
	wrong := wrongName(s)

	pointAt(t, s, wrong)
	s.Update(enter())
	assert.Equal(t, wrong, s.snap.LastWrong)
	assert.Equal(t, "Not quite! You clicked "+wrong+".", s.snap.Message)
	assert.Contains(t, s.snap.Revealed, target, "the missed target is revealed")
	assert.Zero(t, s.snap.Score)

	fireAll(s)
	assert.Empty(t, s.snap.LastWrong)
	assert.Equal(t, geo.PhaseAwaitingGuess, s.snap.Phase)
}

func TestMapQuiz_CompletionSavesAndShowsSummary(t *testing.T) {
	results := &memResults{}
	s := newQuiz(t, results)

	var cmd tea.Cmd
	for s.snap.Phase == geo.PhaseAwaitingGuess {
		pointAt(t, s, s.snap.Target)
		s.Update(enter())
		cmd = fireAll(s)
	}
	require.Equal(t, geo.PhaseComplete, s.snap.Phase)
	assert.Equal(t, "Game Complete! You found all 4 countries!", s.snap.Message)
	require.NotNil(t, cmd, "completion returns the save command")

	saved := cmd()
	_, cmd = s.Update(saved)
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, isSummary := push.Screen.(*summary.SummaryScreen)
	assert.True(t, isSummary)

	require.Len(t, results.results, 1)
	r := results.results[0]
	assert.Equal(t, "countries", r.Mode)
	assert.Equal(t, "Europe", r.ContinentFilter)
	assert.Equal(t, 4, r.Score)
	assert.Equal(t, 4, r.Total)
	assert.True(t, saved.(resultSavedMsg).newBest)

	s.Resume()
	assert.Equal(t, geo.PhaseAwaitingGuess, s.snap.Phase, "returning from the summary starts over")
	assert.Zero(t, s.snap.Score)
}

func TestMapQuiz_ContinentChangeCancelsPendingTransition(t *testing.T) {
	s := newQuiz(t, nil)

	pointAt(t, s, s.snap.Target)
	s.Update(enter())
	require.Equal(t, 1, s.sched.Pending())
	stale := pendingIDs(s)[0]

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Zero(t, s.sched.Pending(), "the reset cancels the scheduled transition")
	assert.Equal(t, "North America", s.snap.ContinentFilter)
	assert.Equal(t, 3, s.snap.PoolSize)
	assert.Equal(t, 1, s.snap.Round)

	target := s.snap.Target
	s.Update(timerFiredMsg{id: stale})
	assert.Equal(t, target, s.snap.Target, "a stale timer does nothing")
	assert.Equal(t, 1, s.snap.Round)
}

func TestMapQuiz_ModeToggleAndRestart(t *testing.T) {
	s := newQuiz(t, nil)

	s.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	assert.Equal(t, geo.ModeContinents, s.snap.Mode)
	assert.Equal(t, 6, s.snap.PoolSize)
	assert.Equal(t, "Continent Quiz", s.Title())
	assert.Contains(t, s.visibleNames(), "Oceania")

	// Continent filters do not apply to the continents game.
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 6, s.snap.PoolSize)

	pointAt(t, s, s.snap.Target)
	s.Update(enter())
	s.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	assert.Zero(t, s.snap.Score)
	assert.Zero(t, s.sched.Pending())
}

func TestMapQuiz_SearchFiltersList(t *testing.T) {
	s := newQuiz(t, nil)
	s.cursor = 2

	s.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	s.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	assert.Equal(t, []string{"Germany"}, s.visibleNames())
	assert.Zero(t, s.cursor)
}

func TestTeaScheduler(t *testing.T) {
	sched := newTeaScheduler()
	ran := 0

	cancel := sched.AfterFunc(0, func() { ran++ })
	sched.AfterFunc(0, func() { ran += 10 })
	require.Len(t, sched.queued, 2)
	first, second := sched.queued[0], sched.queued[1]
	assert.NotNil(t, sched.Commands())
	assert.Nil(t, sched.Commands(), "queued timers are only turned into commands once")

	assert.True(t, cancel())
	assert.False(t, cancel())
	assert.False(t, sched.Fire(first))
	assert.True(t, sched.Fire(second))
	assert.False(t, sched.Fire(second))
	assert.Equal(t, 10, ran)
	assert.Zero(t, sched.Pending())

	sched.AfterFunc(0, func() { ran += 100 })
	sched.CancelAll()
	assert.Zero(t, sched.Pending())
	assert.Nil(t, sched.Commands())
	assert.Equal(t, 10, ran)
}

func TestTeaScheduler_IdsAreUniqueAcrossSchedulers(t *testing.T) {
	a, b := newTeaScheduler(), newTeaScheduler()
	a.AfterFunc(0, func() {})
	b.AfterFunc(0, func() {})

	assert.NotEqual(t, a.queued[0], b.queued[0])
	assert.False(t, b.Fire(a.queued[0]), "another scheduler's timer is unknown")
	assert.Equal(t, 1, b.Pending())
}

func TestMapQuiz_TickFromAnotherScreenIsIgnored(t *testing.T) {
	old := newQuiz(t, nil)
	pointAt(t, old, old.snap.Target)
	old.Update(enter())
	oldIDs := pendingIDs(old)
	require.Len(t, oldIDs, 1)

	r := router.New(old)
	next := newQuiz(t, nil)
	r.Push(next)
	pointAt(t, next, next.snap.Target)
	next.Update(enter())
	require.Equal(t, geo.PhaseResolving, next.snap.Phase)

	// The old screen's tick arrives while the new one is resolving.
	r.Update(timerFiredMsg{id: oldIDs[0]})
	assert.Equal(t, geo.PhaseResolving, next.snap.Phase)
	assert.Equal(t, 1, next.snap.Round)
	assert.Equal(t, 1, next.sched.Pending())
}

func TestMapQuiz_PopClosesGame(t *testing.T) {
	home := newQuiz(t, nil)
	r := router.New(home)

	s := newQuiz(t, nil)
	r.Push(s)
	pointAt(t, s, s.snap.Target)
	s.Update(enter())
	stale := pendingIDs(s)
	require.Len(t, stale, 1)

	r.Update(router.PopScreenMsg{})
	assert.Zero(t, s.sched.Pending(), "closing cancels the pending transition")

	s.Update(timerFiredMsg{id: stale[0]})
	assert.Equal(t, 1, s.snap.Round, "the cancelled transition never runs")

	_, ok := s.game.Click(s.snap.Target)
	assert.False(t, ok, "a closed game ignores clicks")
}
