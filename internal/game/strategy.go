package game

import "github.com/lox/flip7/internal/deck"

// Strategy makes a player's decisions. Implementations must draw all
// randomness from the rng they were built with so games stay reproducible.
type Strategy interface {
	// ShouldDraw decides between drawing another card and passing.
	ShouldDraw(s State) bool

	// ShouldUseSecondChance decides whether to spend a held Second Chance
	// to cancel a bust. Declining means the player busts.
	ShouldUseSecondChance(s State) bool

	// OnGameEnd is called once per game with the outcome for this seat.
	OnGameEnd(won bool)
}

// Diagnostics are decision metrics a strategy may surface for reporting.
type Diagnostics struct {
	LastRisk             float64
	Decisions            int
	LuckyTriggers        int
	SuperstitionTriggers int
}

// Diagnoser is implemented by strategies that expose Diagnostics. The
// controller reads them before OnGameEnd.
type Diagnoser interface {
	Diagnostics() Diagnostics
}

// State is the read-only view a strategy gets at a decision point. It is
// rebuilt for every decision and owns its slices.
type State struct {
	Seat  int
	Round int

	// Score is the current round score. For a Second Chance decision it is
	// the score the player keeps if the busting card is cancelled.
	Score       int
	NumberCount int // distinct numbers held
	CardCount   int // cards held, every kind
	Hand        []deck.Card

	// Seen holds the discard pile followed by every opponent's hand.
	Seen []deck.Card

	OpponentScores  []int
	MaxScore        int
	HasSecondChance bool
}

// MaxOpponentScore returns the highest opponent score, or 0 when alone
func (s State) MaxOpponentScore() int {
	best := 0
	for _, v := range s.OpponentScores {
		best = max(best, v)
	}
	return best
}
