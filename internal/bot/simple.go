package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/game"
)

// DefaultThresholdCurve is the draw probability by cards held. Hands past
// the end of the curve always pass.
var DefaultThresholdCurve = []float64{1, 1, 1, 1, 0.7, 0.5, 0.3}

// ThresholdBot draws with a fixed probability per hand size
type ThresholdBot struct {
	curve  []float64
	rng    *rand.Rand
	logger *log.Logger
}

// NewThresholdBot creates a ThresholdBot on DefaultThresholdCurve
func NewThresholdBot(rng *rand.Rand, logger *log.Logger) *ThresholdBot {
	return &ThresholdBot{curve: DefaultThresholdCurve, rng: rng, logger: orDiscard(logger)}
}

func (t *ThresholdBot) ShouldDraw(s game.State) bool {
	if s.CardCount >= len(t.curve) {
		return false
	}
	w := t.curve[s.CardCount]
	if w >= 1 {
		return true
	}
	draw := t.rng.Float64() < w
	t.logger.Debug("Threshold decision", "cards", s.CardCount, "p", w, "draw", draw)
	return draw
}

func (t *ThresholdBot) ShouldUseSecondChance(s game.State) bool { return s.HasSecondChance }

func (t *ThresholdBot) OnGameEnd(bool) {}

// ManiacBot never stops drawing
type ManiacBot struct {
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(logger *log.Logger) *ManiacBot {
	return &ManiacBot{logger: orDiscard(logger)}
}

func (m *ManiacBot) ShouldDraw(game.State) bool { return true }

func (m *ManiacBot) ShouldUseSecondChance(s game.State) bool { return s.HasSecondChance }

func (m *ManiacBot) OnGameEnd(bool) {}

// DefaultTimidCards is the hand size a TimidBot stops at
const DefaultTimidCards = 3

// TimidBot draws until it holds a fixed number of cards
type TimidBot struct {
	cards  int
	logger *log.Logger
}

// NewTimidBot creates a TimidBot that passes once it holds cards cards
func NewTimidBot(cards int, logger *log.Logger) *TimidBot {
	if cards <= 0 {
		cards = DefaultTimidCards
	}
	return &TimidBot{cards: cards, logger: orDiscard(logger)}
}

func (b *TimidBot) ShouldDraw(s game.State) bool { return s.CardCount < b.cards }

func (b *TimidBot) ShouldUseSecondChance(s game.State) bool { return s.HasSecondChance }

func (b *TimidBot) OnGameEnd(bool) {}
