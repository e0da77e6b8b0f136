package game

import (
	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/deck"
)

const (
	// DefaultMaxScore normalises score gaps in the catch-up adjustment.
	DefaultMaxScore = 100

	// DefaultMaxTurns bounds the turns of a single round.
	DefaultMaxTurns = 2000

	// DefaultMaxRounds bounds a multi-round game.
	DefaultMaxRounds = 100
)

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	deck         *deck.Deck
	composition  deck.Composition
	logger       *log.Logger
	id           string
	maxScore     int
	maxTurns     int
	maxRounds    int
	winningTotal int
}

func defaultConfig() *gameConfig {
	return &gameConfig{
		composition: deck.Standard(),
		maxScore:    DefaultMaxScore,
		maxTurns:    DefaultMaxTurns,
		maxRounds:   DefaultMaxRounds,
	}
}

// WithDeck uses a specific deck instead of building and shuffling one.
func WithDeck(d *deck.Deck) Option {
	return func(c *gameConfig) {
		c.deck = d
	}
}

// WithComposition selects the card population for the built deck.
// Ignored when WithDeck is given.
func WithComposition(comp deck.Composition) Option {
	return func(c *gameConfig) {
		c.composition = comp
	}
}

// WithLogger sets the logger; games log draws and decisions at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithID tags the game for logs and results.
func WithID(id string) Option {
	return func(c *gameConfig) {
		c.id = id
	}
}

// WithMaxScore sets the normalisation bound handed to strategies.
func WithMaxScore(n int) Option {
	return func(c *gameConfig) {
		if n > 0 {
			c.maxScore = n
		}
	}
}

// WithMaxTurns bounds the turns per round; exceeding it fails with ErrTurnLimit.
func WithMaxTurns(n int) Option {
	return func(c *gameConfig) {
		if n > 0 {
			c.maxTurns = n
		}
	}
}

// WithWinningTotal plays rounds until a cumulative total reaches n.
// Zero plays a single round.
func WithWinningTotal(n int) Option {
	return func(c *gameConfig) {
		c.winningTotal = max(n, 0)
	}
}

// WithMaxRounds bounds a multi-round game; the game ends on totals when reached.
func WithMaxRounds(n int) Option {
	return func(c *gameConfig) {
		if n > 0 {
			c.maxRounds = n
		}
	}
}
