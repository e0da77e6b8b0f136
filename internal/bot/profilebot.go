package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/profile"
)

const (
	// LearningWindow is how many recent games feed the success rate.
	LearningWindow = 10

	learningIQ   = 0.7
	learnUpRate  = 0.6
	learnDnRate  = 0.4
	learnUpScale = 1.1
	learnDnScale = 0.9
)

// ProfileBot draws according to a player profile. It adapts its own copy
// of the base risk tolerance across games, never the caller's profile.
type ProfileBot struct {
	profile *profile.Profile
	rng     *rand.Rand
	logger  *log.Logger

	history []bool
	diag    game.Diagnostics
}

// NewProfileBot creates a bot for a validated profile
func NewProfileBot(p *profile.Profile, rng *rand.Rand, logger *log.Logger) *ProfileBot {
	return &ProfileBot{
		profile: p.Clone(),
		rng:     rng,
		logger:  orDiscard(logger).With("profile", p.Name),
	}
}

// Name returns the profile name
func (b *ProfileBot) Name() string { return b.profile.Name }

// BaseRisk returns the current, possibly adapted, base risk tolerance
func (b *ProfileBot) BaseRisk() float64 { return b.profile.RiskTolerance.Base }

func (b *ProfileBot) ShouldDraw(s game.State) bool {
	b.diag.Decisions++
	if s.CardCount < EarlyDrawCards {
		b.logger.Debug("Drawing on a short hand", "cards", s.CardCount)
		return true
	}

	a := Assess(b.profile, s, b.rng)
	if a.Lucky {
		b.diag.LuckyTriggers++
	}
	if a.Superstition {
		b.diag.SuperstitionTriggers++
	}
	b.diag.LastRisk = a.Risk()

	draw := b.rng.Float64() < a.Risk()
	b.logger.Debug("Draw decision",
		"cards", s.CardCount,
		"score", s.Score,
		"base", a.Base,
		"score_adj", a.Score,
		"deck_adj", a.Deck,
		"personality_adj", a.Personality,
		"risk", a.Risk(),
		"draw", draw)
	return draw
}

func (b *ProfileBot) ShouldUseSecondChance(s game.State) bool {
	if !s.HasSecondChance {
		return false
	}
	if b.profile.Intelligence > secondChanceIQ &&
		float64(s.Score) >= float64(b.profile.TargetScore)*nearTargetFraction {
		b.logger.Debug("Holding Second Chance near target", "score", s.Score, "target", b.profile.TargetScore)
		return false
	}
	return b.rng.Float64() < b.profile.RiskTolerance.Base
}

// OnGameEnd records the outcome and, for intelligent profiles, nudges the
// base tolerance toward what has been winning recently.
func (b *ProfileBot) OnGameEnd(won bool) {
	b.history = append(b.history, won)
	if len(b.history) > LearningWindow {
		b.history = b.history[len(b.history)-LearningWindow:]
	}
	b.diag = game.Diagnostics{}

	if b.profile.Intelligence <= learningIQ {
		return
	}

	wins := 0
	for _, w := range b.history {
		if w {
			wins++
		}
	}
	rate := float64(wins) / float64(len(b.history))

	before := b.profile.RiskTolerance.Base
	switch {
	case rate > learnUpRate:
		b.profile.RiskTolerance.Base = min(1, before*learnUpScale)
	case rate < learnDnRate:
		b.profile.RiskTolerance.Base = max(0, before*learnDnScale)
	}
	if b.profile.RiskTolerance.Base != before {
		b.logger.Debug("Adapted base risk", "rate", rate, "from", before, "to", b.profile.RiskTolerance.Base)
	}
}

// Diagnostics returns the metrics of the game in progress
func (b *ProfileBot) Diagnostics() game.Diagnostics { return b.diag }
