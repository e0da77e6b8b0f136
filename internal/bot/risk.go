package bot

import (
	"math/rand/v2"

	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/profile"
)

const (
	// EarlyDrawCards is the hand size below which a profile always draws.
	EarlyDrawCards = 3

	// HighNumber splits seen numbers for deck awareness: above it is high.
	HighNumber = 7

	deckAwarenessStep = 0.2
	luckyBoost        = 1.2
	superstitionDamp  = 0.5

	// Second Chance is held back from this fraction of the target score.
	nearTargetFraction = 0.8
	secondChanceIQ     = 0.8
)

// Assessment is the running risk after each pipeline step. Every step
// works on the clamped output of the one before.
type Assessment struct {
	Base        float64
	Score       float64
	Deck        float64
	Personality float64
	CatchUp     float64

	Lucky        bool
	Superstition bool
}

// Risk is the final draw probability
func (a Assessment) Risk() float64 { return a.CatchUp }

// Assess runs the full risk pipeline for a draw decision. The rng is only
// consumed when a superstition card is held.
func Assess(p *profile.Profile, s game.State, rng *rand.Rand) Assessment {
	var a Assessment
	a.Base = BaseRisk(p.RiskTolerance, s.CardCount)
	a.Score = ScoreAdjust(a.Base, p, s.Score)
	a.Deck = DeckAdjust(a.Score, p, s.Seen)
	a.Personality, a.Lucky, a.Superstition = PersonalityAdjust(a.Deck, p, s.Hand, rng)
	a.CatchUp = CatchUpAdjust(a.Personality, p, s.Score, s.MaxOpponentScore(), s.MaxScore)
	return a
}

// BaseRisk is the base tolerance scaled by the weight for the current hand
// size. Hands larger than the curve use its last weight.
func BaseRisk(rt profile.RiskTolerance, cardCount int) float64 {
	w := 1.0
	if n := len(rt.CardCountWeights); n > 0 {
		w = rt.CardCountWeights[min(max(cardCount, 0), n-1)]
	}
	return clamp(rt.Base * w)
}

// ScoreAdjust raises risk in proportion to the shortfall from the target
// score and lowers it once the target is reached.
func ScoreAdjust(risk float64, p *profile.Profile, score int) float64 {
	s := p.RiskTolerance.ScoreSensitivity
	target := p.TargetScore
	if target <= 0 {
		return clamp(risk)
	}
	if score < target {
		deficit := float64(target-score) / float64(target)
		return clamp(risk * (1 + s*deficit))
	}
	return clamp(risk * (1 - s/2))
}

// DeckAdjust compares visible high and low numbers. Mostly high numbers
// seen means the remaining deck is rich in low ones and vice versa.
func DeckAdjust(risk float64, p *profile.Profile, seen []deck.Card) float64 {
	high, low := 0, 0
	for _, c := range seen {
		if !c.IsNumber() {
			continue
		}
		if c.Value() > HighNumber {
			high++
		} else {
			low++
		}
	}

	awareness := p.RiskTolerance.DeckAwareness * p.Intelligence
	switch {
	case high > low:
		risk *= 1 - deckAwarenessStep*awareness
	case low > high:
		risk *= 1 + deckAwarenessStep*awareness
	}
	return clamp(risk)
}

// PersonalityAdjust boosts risk once when a lucky card is held and, with
// probability threshold, halves it when a superstition card is held.
func PersonalityAdjust(risk float64, p *profile.Profile, hand []deck.Card, rng *rand.Rand) (adjusted float64, lucky, superstition bool) {
	if p.LuckyCards.Enabled && holdsAny(hand, p.LuckyCards.Cards) {
		lucky = true
		risk *= luckyBoost
	}
	if p.Superstitions.Enabled && holdsAny(hand, p.Superstitions.Negative) {
		if rng.Float64() < p.Superstitions.Threshold {
			superstition = true
			risk *= superstitionDamp
		}
	}
	return clamp(risk), lucky, superstition
}

// CatchUpAdjust raises risk when an opponent is ahead, in proportion to the
// gap as a fraction of maxScore.
func CatchUpAdjust(risk float64, p *profile.Profile, score, maxOpponent, maxScore int) float64 {
	gap := maxOpponent - score
	if gap <= 0 || maxScore <= 0 {
		return clamp(risk)
	}
	factor := p.CatchUpAggression * p.Intelligence
	return clamp(risk * (1 + factor*float64(gap)/float64(maxScore)))
}

func holdsAny(hand []deck.Card, refs []profile.CardRef) bool {
	for _, c := range hand {
		for _, r := range refs {
			if r.Matches(c) {
				return true
			}
		}
	}
	return false
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
