package mapquiz

import (
	"sync"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerFiredMsg is delivered when a scheduled round transition is due.
// Ids are unique across schedulers, so a tick outliving its screen never
// matches a timer of another screen.
type timerFiredMsg struct{ id uint64 }

var timerSeq atomic.Uint64

type pendingTimer struct {
	d  time.Duration
	fn func()
}

// teaScheduler runs game transitions on the Bubble Tea event loop. Timers
// are turned into tea.Tick commands and the callback runs inside Update,
// so game state and screen state never race.
type teaScheduler struct {
	mu      sync.Mutex
	pending map[uint64]pendingTimer
	queued  []uint64
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[uint64]pendingTimer)}
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	id := timerSeq.Add(1)
	s.mu.Lock()
	s.pending[id] = pendingTimer{d: d, fn: fn}
	s.queued = append(s.queued, id)
	s.mu.Unlock()

	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, ok := s.pending[id]
		delete(s.pending, id)
		return ok
	}
}

// Commands turns timers scheduled since the last call into tick commands.
func (s *teaScheduler) Commands() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cmds []tea.Cmd
	for _, id := range s.queued {
		t, ok := s.pending[id]
		if !ok {
			continue
		}
		id := id
		cmds = append(cmds, tea.Tick(t.d, func(time.Time) tea.Msg { return timerFiredMsg{id: id} }))
	}
	s.queued = s.queued[:0]
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Fire runs the callback for id unless it was cancelled. It reports
// whether the callback ran.
func (s *teaScheduler) Fire(id uint64) bool {
	s.mu.Lock()
	t, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()

	if ok {
		t.fn()
	}
	return ok
}

// CancelAll forgets every timer, so their ticks are ignored.
func (s *teaScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.pending)
	s.queued = s.queued[:0]
}

// Pending returns how many timers have not fired or been cancelled.
func (s *teaScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
