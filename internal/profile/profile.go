// Package profile loads and validates the declarative player profiles that
// drive the risk strategy. Profiles are YAML documents, one per file.
package profile

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lox/flip7/internal/deck"
)

// ErrInvalidProfile is returned for malformed or out-of-range profiles.
var ErrInvalidProfile = errors.New("invalid profile")

const (
	// CurveLength is the number of card-count risk weights, for 0..6 cards.
	CurveLength = 7

	MinTargetScore = 20
	MaxTargetScore = 100
)

// Profile is the static configuration of a profile-driven player
type Profile struct {
	Name              string        `yaml:"name"`
	Description       string        `yaml:"description,omitempty"`
	Intelligence      float64       `yaml:"intelligence"`
	RiskTolerance     RiskTolerance `yaml:"risk_tolerance"`
	TargetScore       int           `yaml:"target_score"`
	CatchUpAggression float64       `yaml:"catch_up_aggression"`
	LuckyCards        LuckyCards    `yaml:"lucky_cards"`
	Superstitions     Superstitions `yaml:"superstitions"`
}

// RiskTolerance shapes the base draw probability
type RiskTolerance struct {
	Base             float64   `yaml:"base"`
	CardCountWeights []float64 `yaml:"card_count_weights"`
	ScoreSensitivity float64   `yaml:"score_sensitivity"`
	DeckAwareness    float64   `yaml:"deck_awareness"`
}

// LuckyCards boost risk while any of them is held
type LuckyCards struct {
	Enabled bool      `yaml:"enabled"`
	Cards   []CardRef `yaml:"cards,omitempty"`
}

// Superstitions may dampen risk while any of them is held
type Superstitions struct {
	Enabled   bool      `yaml:"enabled"`
	Negative  []CardRef `yaml:"negative,omitempty"`
	Threshold float64   `yaml:"threshold"`
}

// CardRef names a card in a profile: a number 0..12 or an action kind.
// In YAML it is either an integer or an action name such as "Deal Three".
type CardRef struct {
	Number int
	Action deck.Action
}

// NumberRef refers to number card n
func NumberRef(n int) CardRef { return CardRef{Number: n} }

// ActionRef refers to action card a
func ActionRef(a deck.Action) CardRef { return CardRef{Action: a} }

// IsAction reports whether the reference names an action kind
func (r CardRef) IsAction() bool { return r.Action != deck.NoAction }

// Matches reports whether c is the referenced card. Modifiers never match.
func (r CardRef) Matches(c deck.Card) bool {
	if r.IsAction() {
		return c.IsAction(r.Action)
	}
	return c.IsNumber() && c.Value() == r.Number
}

func (r CardRef) String() string {
	if r.IsAction() {
		return r.Action.String()
	}
	return strconv.Itoa(r.Number)
}

// UnmarshalYAML accepts an integer or an action name
func (r *CardRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: card must be a number or an action name", node.Line)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(node.Value)); err == nil {
		*r = NumberRef(n)
		return nil
	}
	a, err := deck.ParseAction(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = ActionRef(a)
	return nil
}

// MarshalYAML writes numbers as integers and actions by name
func (r CardRef) MarshalYAML() (any, error) {
	if r.IsAction() {
		return r.Action.String(), nil
	}
	return r.Number, nil
}

// Validate checks every bounded field. Strategies assume a validated profile.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if err := unit("intelligence", p.Intelligence); err != nil {
		return err
	}
	if err := unit("catch-up aggression", p.CatchUpAggression); err != nil {
		return err
	}
	if p.TargetScore < MinTargetScore || p.TargetScore > MaxTargetScore {
		return fmt.Errorf("%w: target score must be between %d and %d, got %d",
			ErrInvalidProfile, MinTargetScore, MaxTargetScore, p.TargetScore)
	}
	if err := p.RiskTolerance.Validate(); err != nil {
		return err
	}
	if err := p.LuckyCards.Validate(); err != nil {
		return err
	}
	return p.Superstitions.Validate()
}

// Validate checks the risk tolerance block
func (rt RiskTolerance) Validate() error {
	if err := unit("base risk tolerance", rt.Base); err != nil {
		return err
	}
	if len(rt.CardCountWeights) != CurveLength {
		return fmt.Errorf("%w: expected %d card count weights, got %d",
			ErrInvalidProfile, CurveLength, len(rt.CardCountWeights))
	}
	for i, w := range rt.CardCountWeights {
		if err := unit(fmt.Sprintf("card count weight %d", i), w); err != nil {
			return err
		}
	}
	if err := unit("score sensitivity", rt.ScoreSensitivity); err != nil {
		return err
	}
	return unit("deck awareness", rt.DeckAwareness)
}

// Validate checks the lucky cards block
func (lc LuckyCards) Validate() error {
	if lc.Enabled && len(lc.Cards) == 0 {
		return fmt.Errorf("%w: lucky cards enabled but no cards specified", ErrInvalidProfile)
	}
	return validRefs("lucky", lc.Cards)
}

// Validate checks the superstitions block
func (s Superstitions) Validate() error {
	if s.Enabled && len(s.Negative) == 0 {
		return fmt.Errorf("%w: superstitions enabled but no cards specified", ErrInvalidProfile)
	}
	if err := unit("superstition threshold", s.Threshold); err != nil {
		return err
	}
	return validRefs("superstition", s.Negative)
}

func validRefs(kind string, refs []CardRef) error {
	for _, r := range refs {
		if r.IsAction() {
			continue
		}
		if r.Number < deck.MinNumber || r.Number > deck.MaxNumber {
			return fmt.Errorf("%w: invalid %s card number %d", ErrInvalidProfile, kind, r.Number)
		}
	}
	return nil
}

func unit(field string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be between 0 and 1, got %v", ErrInvalidProfile, field, v)
	}
	return nil
}

// Clone returns a deep copy, so a strategy can adapt its own tolerance
// without touching profiles shared with other seats.
func (p *Profile) Clone() *Profile {
	c := *p
	c.RiskTolerance.CardCountWeights = slices.Clone(p.RiskTolerance.CardCountWeights)
	c.LuckyCards.Cards = slices.Clone(p.LuckyCards.Cards)
	c.Superstitions.Negative = slices.Clone(p.Superstitions.Negative)
	return &c
}
