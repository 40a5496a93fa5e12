// Package geo implements the map quiz: region loading, name matching,
// target selection, continent merging and the round state machine.
package geo

import "github.com/paulmach/orb"

// Region is one clickable shape on the map: a country, or in continents
// mode a merged continent.
type Region struct {
	Name      string
	Continent string
	Geometry  orb.Geometry
}

// Mode selects what the player is asked to find.
type Mode string

const (
	ModeCountries  Mode = "countries"
	ModeContinents Mode = "continents"
)

// ParseMode accepts "countries" or "continents".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeCountries, ModeContinents:
		return Mode(s), true
	}
	return "", false
}

// Noun returns the plural noun used in player-facing messages.
func (m Mode) Noun() string {
	if m == ModeContinents {
		return "continents"
	}
	return "countries"
}

func (m Mode) singular() string {
	if m == ModeContinents {
		return "continent"
	}
	return "country"
}

// Phase is the state of the round machine.
type Phase int

const (
	// PhaseIdle means no target: the pool is empty or the game has not
	// started.
	PhaseIdle Phase = iota
	// PhaseAwaitingGuess accepts one click.
	PhaseAwaitingGuess
	// PhaseResolving shows feedback while the transition timer runs. Input
	// is locked.
	PhaseResolving
	// PhaseComplete is terminal until reset.
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingGuess:
		return "awaiting-guess"
	case PhaseResolving:
		return "resolving"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome classifies a click.
type Outcome int

const (
	Incorrect Outcome = iota
	Correct
)

func (o Outcome) String() string {
	if o == Correct {
		return "correct"
	}
	return "incorrect"
}
