package geo

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultCorrectDelay is how long a correct answer is shown.
	DefaultCorrectDelay = 700 * time.Millisecond
	// DefaultIncorrectDelay is longer so the wrong highlight lingers.
	DefaultIncorrectDelay = 900 * time.Millisecond
)

// Snapshot is a read-only copy of the round state.
type Snapshot struct {
	GameID          string
	Mode            Mode
	ContinentFilter string
	Phase           Phase
	Target          string
	Revealed        []string
	PoolSize        int
	Score           int
	Round           int
	LastWrong       string
	Locked          bool
	Message         string
}

// Summary describes a finished game.
type Summary struct {
	GameID          string
	Mode            Mode
	ContinentFilter string
	Score           int
	Total           int
	Rounds          int
	FinishedAt      time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithScheduler sets the timer source for round transitions.
func WithScheduler(s Scheduler) Option { return func(g *Game) { g.sched = s } }

// WithRand sets the random source used to pick targets.
func WithRand(r *rand.Rand) Option { return func(g *Game) { g.rng = r } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(g *Game) { g.logger = l } }

// WithDelays overrides the correct/incorrect transition delays.
func WithDelays(correct, incorrect time.Duration) Option {
	return func(g *Game) {
		g.correctDelay = correct
		g.incorrectDelay = incorrect
	}
}

// WithMode sets the initial mode.
func WithMode(m Mode) Option { return func(g *Game) { g.mode = m } }

// WithContinentFilter sets the initial continent filter.
func WithContinentFilter(f string) Option { return func(g *Game) { g.filter = f } }

// OnComplete registers a hook called once per finished game, outside the
// game's lock.
func OnComplete(fn func(Summary)) Option { return func(g *Game) { g.onComplete = fn } }

// WithClock overrides time.Now for summaries.
func WithClock(now func() time.Time) Option { return func(g *Game) { g.now = now } }

// Game is the map quiz state machine. All methods are safe for concurrent
// use; timer callbacks are serialized with player input.
type Game struct {
	mu sync.Mutex

	countries []Region
	merged    []Region

	sched          Scheduler
	rng            *rand.Rand
	logger         *zap.Logger
	now            func() time.Time
	correctDelay   time.Duration
	incorrectDelay time.Duration
	onComplete     func(Summary)

	mode   Mode
	filter string

	gameID    string
	pool      []string
	phase     Phase
	target    string
	revealed  map[string]bool
	order     []string
	score     int
	round     int
	lastWrong string
	locked    bool
	message   string

	// gen invalidates transition callbacks scheduled before a reset.
	gen    uint64
	cancel func() bool
	closed bool
}

// NewGame creates a game over the given country regions. Call Start to
// pick the first target.
func NewGame(regions []Region, opts ...Option) *Game {
	g := &Game{
		countries:      regions,
		sched:          TimerScheduler{},
		logger:         zap.NewNop(),
		now:            time.Now,
		correctDelay:   DefaultCorrectDelay,
		incorrectDelay: DefaultIncorrectDelay,
		mode:           ModeCountries,
		filter:         AllContinents,
		revealed:       make(map[string]bool),
		round:          1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g.logger = g.logger.Named("geo")
	return g
}

// Start resets the round state and picks the first target.
func (g *Game) Start() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
	return g.snapshotLocked()
}

// Click submits the name of the region the player clicked. It is ignored
// (ok == false) unless the game is awaiting a guess.
func (g *Game) Click(name string) (Outcome, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || g.phase != PhaseAwaitingGuess || g.locked {
		return Incorrect, false
	}
	g.locked = true

	outcome := EvaluateClick(name, g.target)
	delay := g.incorrectDelay
	if outcome == Correct {
		g.score++
		g.lastWrong = ""
		g.message = fmt.Sprintf("Correct! That is %s.", g.target)
		delay = g.correctDelay
	} else {
		g.lastWrong = name
		g.message = fmt.Sprintf("Not quite! You clicked %s.", name)
	}
	g.reveal(g.target)
	g.phase = PhaseResolving

	g.logger.Debug("click",
		zap.String("game_id", g.gameID),
		zap.String("target", g.target),
		zap.String("clicked", name),
		zap.Stringer("outcome", outcome),
	)

	// The pool in use now is captured so a later mode or filter change
	// cannot leak into this round's transition.
	gen, pool, mode := g.gen, g.pool, g.mode
	g.cancel = g.sched.AfterFunc(delay, func() { g.advance(gen, pool, mode) })
	return outcome, true
}

// ClickAt hit-tests a map coordinate against the active regions and clicks
// the region found there.
func (g *Game) ClickAt(lon, lat float64) (Region, Outcome, bool) {
	r, found := Locate(g.ActiveRegions(), lon, lat)
	if !found {
		return Region{}, Incorrect, false
	}
	outcome, ok := g.Click(r.Name)
	return r, outcome, ok
}

func (g *Game) advance(gen uint64, pool []string, mode Mode) {
	g.mu.Lock()
	if gen != g.gen || g.closed {
		g.mu.Unlock()
		return
	}
	g.cancel = nil
	g.round++
	g.lastWrong = ""

	next, ok := PickNext(g.rng, pool, g.revealed)
	if !ok {
		g.target = ""
		g.phase = PhaseComplete
		g.message = fmt.Sprintf("Game Complete! You found all %d %s!", len(g.revealed), mode.Noun())
		summary := g.summaryLocked()
		hook := g.onComplete
		g.logger.Info("game complete",
			zap.String("game_id", summary.GameID),
			zap.String("mode", string(summary.Mode)),
			zap.Int("score", summary.Score),
			zap.Int("total", summary.Total),
		)
		g.mu.Unlock()
		if hook != nil {
			hook(summary)
		}
		return
	}

	g.target = next
	g.locked = false
	g.phase = PhaseAwaitingGuess
	g.message = g.prompt()
	g.mu.Unlock()
}

// SetMode switches between countries and continents and starts over.
func (g *Game) SetMode(m Mode) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if m != g.mode {
		g.mode = m
		// Continent shapes are merged once per switch into continents mode.
		g.merged = nil
		if m == ModeContinents {
			g.merged = MergeContinents(g.countries, g.logger)
		}
	}
	g.resetLocked()
	return g.snapshotLocked()
}

// SetContinentFilter restricts the countries pool and starts over.
func (g *Game) SetContinentFilter(filter string) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if filter == "" {
		filter = AllContinents
	}
	g.filter = filter
	g.resetLocked()
	return g.snapshotLocked()
}

// Reset starts a new game with the current mode and filter.
func (g *Game) Reset() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
	return g.snapshotLocked()
}

// Close cancels any pending transition. The game ignores input afterwards.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelPending()
	g.closed = true
}

func (g *Game) cancelPending() {
	g.gen++
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *Game) resetLocked() {
	g.cancelPending()
	if g.mode == ModeContinents && g.merged == nil {
		g.merged = MergeContinents(g.countries, g.logger)
	}

	g.gameID = uuid.NewString()
	g.pool = BuildTargetPool(g.countries, g.mode, g.filter)
	g.revealed = make(map[string]bool)
	g.order = nil
	g.score = 0
	g.round = 1
	g.lastWrong = ""

	next, ok := PickNext(g.rng, g.pool, g.revealed)
	if !ok {
		g.target = ""
		g.phase = PhaseIdle
		g.locked = true
		g.message = fmt.Sprintf("No %s to find.", g.mode.Noun())
		return
	}
	g.target = next
	g.phase = PhaseAwaitingGuess
	g.locked = false
	g.message = g.prompt()
}

func (g *Game) prompt() string {
	return fmt.Sprintf("Click the correct %s!", g.mode.singular())
}

func (g *Game) reveal(name string) {
	if name == "" || g.revealed[name] {
		return
	}
	g.revealed[name] = true
	g.order = append(g.order, name)
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() Snapshot {
	return Snapshot{
		GameID:          g.gameID,
		Mode:            g.mode,
		ContinentFilter: g.filter,
		Phase:           g.phase,
		Target:          g.target,
		Revealed:        append([]string(nil), g.order...),
		PoolSize:        len(g.pool),
		Score:           g.score,
		Round:           g.round,
		LastWrong:       g.lastWrong,
		Locked:          g.locked,
		Message:         g.message,
	}
}

// Summary returns the result of the current game. ok is false until the
// game is complete.
func (g *Game) Summary() (Summary, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhaseComplete {
		return Summary{}, false
	}
	return g.summaryLocked(), true
}

func (g *Game) summaryLocked() Summary {
	filter := g.filter
	if g.mode == ModeContinents {
		filter = AllContinents
	}
	return Summary{
		GameID:          g.gameID,
		Mode:            g.mode,
		ContinentFilter: filter,
		Score:           g.score,
		Total:           len(g.pool),
		Rounds:          g.round - 1,
		FinishedAt:      g.now(),
	}
}

// ActiveRegions returns the shapes the player can click: the filtered
// countries, or the merged continents.
func (g *Game) ActiveRegions() []Region {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode == ModeContinents {
		if g.merged == nil {
			g.merged = MergeContinents(g.countries, g.logger)
		}
		return append([]Region(nil), g.merged...)
	}
	var out []Region
	for _, r := range g.countries {
		if filterMatches(g.filter, r.Continent) {
			out = append(out, r)
		}
	}
	return out
}

// Continents returns the filter choices for the loaded countries.
func (g *Game) Continents() []string {
	return Continents(g.countries)
}
