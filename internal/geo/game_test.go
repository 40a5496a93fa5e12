package geo

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler fires callbacks only when Advance moves its clock.
type manualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	tm := &manualTimer{at: s.now + d, fn: fn}
	s.pending = append(s.pending, tm)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if tm.fired || tm.stopped {
			return false
		}
		tm.stopped = true
		return true
	}
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, tm := range s.pending {
		if !tm.fired && !tm.stopped && tm.at <= s.now {
			tm.fired = true
			due = append(due, tm)
		}
	}
	s.mu.Unlock()
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, tm := range due {
		tm.fn()
	}
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, tm := range s.pending {
		if !tm.fired && !tm.stopped {
			n++
		}
	}
	return n
}

func europe() []Region {
	return []Region{
		{Name: "France", Continent: "Europe", Geometry: square(0, 0, 1, 1)},
		{Name: "Spain", Continent: "Europe", Geometry: square(1, 0, 2, 1)},
		{Name: "Italy", Continent: "Europe", Geometry: square(2, 0, 3, 1)},
		{Name: "Chad", Continent: "Africa", Geometry: square(0, -5, 1, -4)},
		{Name: "Mali", Continent: "Africa", Geometry: square(1, -5, 2, -4)},
	}
}

func newTestGame(opts ...Option) (*Game, *manualScheduler) {
	sched := &manualScheduler{}
	opts = append([]Option{WithScheduler(sched), WithRand(seeded(7))}, opts...)
	return NewGame(europe(), opts...), sched
}

func wrongName(target string) string {
	for _, n := range []string{"France", "Spain", "Italy", "Chad", "Mali"} {
		if n != target {
			return n
		}
	}
	return ""
}

func TestGame_StartPicksTarget(t *testing.T) {
	g, _ := newTestGame()
	s := g.Start()

	assert.Equal(t, PhaseAwaitingGuess, s.Phase)
	assert.NotEmpty(t, s.Target)
	assert.Equal(t, 1, s.Round)
	assert.Zero(t, s.Score)
	assert.False(t, s.Locked)
	assert.Equal(t, 5, s.PoolSize)
	assert.Equal(t, "Click the correct country!", s.Message)
	assert.NotEmpty(t, s.GameID)
}

func TestGame_CorrectClickAdvancesAfter700ms(t *testing.T) {
	g, sched := newTestGame()
	target := g.Start().Target

	outcome, ok := g.Click(target + " ")
	require.True(t, ok)
	assert.Equal(t, Correct, outcome)

	s := g.Snapshot()
	assert.Equal(t, PhaseResolving, s.Phase)
	assert.True(t, s.Locked)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, []string{target}, s.Revealed)
	assert.Equal(t, "Correct! That is "+target+".", s.Message)

	sched.Advance(699 * time.Millisecond)
	assert.Equal(t, PhaseResolving, g.Snapshot().Phase)

	sched.Advance(time.Millisecond)
	s = g.Snapshot()
	assert.Equal(t, PhaseAwaitingGuess, s.Phase)
	assert.Equal(t, 2, s.Round)
	assert.False(t, s.Locked)
	assert.NotEqual(t, target, s.Target)
}

func TestGame_WrongClickConsumesTargetAndAdvancesAfter900ms(t *testing.T) {
	g, sched := newTestGame()
	target := g.Start().Target
	wrong := wrongName(target)

	outcome, ok := g.Click(wrong)
	require.True(t, ok)
	assert.Equal(t, Incorrect, outcome)

	s := g.Snapshot()
	assert.Equal(t, wrong, s.LastWrong)
	assert.Zero(t, s.Score)
	assert.Contains(t, s.Revealed, target)
	assert.True(t, s.Locked)

	sched.Advance(700 * time.Millisecond)
	assert.Equal(t, PhaseResolving, g.Snapshot().Phase)

	sched.Advance(200 * time.Millisecond)
	s = g.Snapshot()
	assert.Equal(t, PhaseAwaitingGuess, s.Phase)
	assert.Empty(t, s.LastWrong)
	assert.NotEqual(t, target, s.Target)
	assert.NotContains(t, s.Revealed, s.Target)
	assert.Equal(t, 2, s.Round)
}

func TestGame_ClickIgnoredWhileResolving(t *testing.T) {
	g, _ := newTestGame()
	target := g.Start().Target

	_, ok := g.Click(target)
	require.True(t, ok)
	_, ok = g.Click(target)
	assert.False(t, ok)
	assert.Equal(t, 1, g.Snapshot().Score)
}

func TestGame_PlaysToCompletion(t *testing.T) {
	var summaries []Summary
	g, sched := newTestGame(OnComplete(func(s Summary) { summaries = append(summaries, s) }))
	g.Start()

	for i := 0; i < 5; i++ {
		s := g.Snapshot()
		require.Equal(t, PhaseAwaitingGuess, s.Phase, "round %d", i+1)
		name := s.Target
		if i%2 == 1 {
			name = wrongName(s.Target)
		}
		_, ok := g.Click(name)
		require.True(t, ok)
		sched.Advance(time.Second)
	}

	s := g.Snapshot()
	assert.Equal(t, PhaseComplete, s.Phase)
	assert.Empty(t, s.Target)
	assert.Len(t, s.Revealed, 5)
	assert.True(t, s.Locked)
	assert.Equal(t, 3, s.Score)
	assert.Equal(t, "Game Complete! You found all 5 countries!", s.Message)

	_, ok := g.Click("France")
	assert.False(t, ok)

	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].Score)
	assert.Equal(t, 5, summaries[0].Total)
	assert.Equal(t, 5, summaries[0].Rounds)

	sum, ok := g.Summary()
	require.True(t, ok)
	assert.Equal(t, summaries[0].GameID, sum.GameID)
}

func TestGame_FilterChangeCancelsPendingTransition(t *testing.T) {
	g, sched := newTestGame()
	target := g.Start().Target
	_, ok := g.Click(target)
	require.True(t, ok)
	require.Equal(t, 1, sched.live())

	s := g.SetContinentFilter("Africa")
	assert.Zero(t, sched.live())
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, s.Round)
	assert.Empty(t, s.Revealed)
	assert.Contains(t, []string{"Chad", "Mali"}, s.Target)
	assert.Equal(t, 2, s.PoolSize)

	// A stale callback firing anyway must not touch the new game.
	sched.mu.Lock()
	stale := sched.pending[0]
	sched.mu.Unlock()
	stale.fn()
	assert.Equal(t, s, g.Snapshot())
}

func TestGame_ModeSwitch(t *testing.T) {
	g, sched := newTestGame()
	g.Start()
	_, _ = g.Click("nowhere")

	s := g.SetMode(ModeContinents)
	assert.Zero(t, sched.live())
	assert.Equal(t, ModeContinents, s.Mode)
	assert.Contains(t, []string{"Europe", "Africa"}, s.Target)
	assert.Equal(t, 2, s.PoolSize)
	assert.Equal(t, "Click the correct continent!", s.Message)

	active := g.ActiveRegions()
	require.Len(t, active, 2)

	// The filter is ignored in continents mode.
	s = g.SetContinentFilter("Africa")
	assert.Equal(t, 2, s.PoolSize)

	for i := 0; i < 2; i++ {
		_, ok := g.Click(g.Snapshot().Target)
		require.True(t, ok)
		sched.Advance(time.Second)
	}
	assert.Equal(t, "Game Complete! You found all 2 continents!", g.Snapshot().Message)

	s = g.SetMode(ModeCountries)
	assert.Equal(t, 2, s.PoolSize, "countries filter still Africa")
}

func TestGame_ClickAt(t *testing.T) {
	g, sched := newTestGame(WithContinentFilter("Europe"))
	target := g.Start().Target

	var pt [2]float64
	for _, r := range g.ActiveRegions() {
		if r.Name == target {
			c := r.Geometry.Bound().Center()
			pt = [2]float64{c[0], c[1]}
		}
	}
	region, outcome, ok := g.ClickAt(pt[0], pt[1])
	require.True(t, ok)
	assert.Equal(t, target, region.Name)
	assert.Equal(t, Correct, outcome)

	sched.Advance(time.Second)
	_, _, ok = g.ClickAt(50, 50)
	assert.False(t, ok, "click on empty ocean")
}

func TestGame_EmptyPoolIsIdle(t *testing.T) {
	g, _ := newTestGame(WithContinentFilter("Antarctica"))
	s := g.Start()
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Empty(t, s.Target)
	assert.Empty(t, s.Revealed)

	_, ok := g.Click("France")
	assert.False(t, ok)
	_, ok = g.Summary()
	assert.False(t, ok)
}

func TestGame_ResetAndClose(t *testing.T) {
	g, sched := newTestGame()
	target := g.Start().Target
	_, _ = g.Click(target)

	s := g.Reset()
	assert.Zero(t, sched.live())
	assert.Zero(t, s.Score)
	assert.Equal(t, PhaseAwaitingGuess, s.Phase)

	_, _ = g.Click(s.Target)
	g.Close()
	assert.Zero(t, sched.live())
	_, ok := g.Click(s.Target)
	assert.False(t, ok)
}

func TestGame_WallClockScheduler(t *testing.T) {
	g := NewGame(europe(), WithDelays(time.Millisecond, time.Millisecond), WithRand(seeded(3)))
	defer g.Close()
	target := g.Start().Target

	_, ok := g.Click(target)
	require.True(t, ok)
	require.Eventually(t, func() bool {
		return g.Snapshot().Phase == PhaseAwaitingGuess
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, g.Snapshot().Round)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("continents")
	assert.True(t, ok)
	assert.Equal(t, ModeContinents, m)
	_, ok = ParseMode("planets")
	assert.False(t, ok)
}
