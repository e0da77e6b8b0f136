package game

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/lox/flip7/internal/deck"
)

const (
	// SevenNumbers is both the round-winning count of distinct numbers and
	// the largest legal count; an eighth distinct number busts.
	SevenNumbers = 7

	// SevenBonus is added to the score of a hand holding exactly seven distinct numbers.
	SevenBonus = 15
)

// Status is the per-round state of a player
type Status int

const (
	Active Status = iota
	Frozen
	Passed
	Busted
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Frozen:
		return "frozen"
	case Passed:
		return "passed"
	case Busted:
		return "busted"
	default:
		return "?"
	}
}

// Outcome is what Receive reports back to the controller
type Outcome int

const (
	// Kept means the card was absorbed without busting.
	Kept Outcome = iota
	// Bust means the card duplicated a number or pushed the hand past seven.
	Bust
	// Rejected means the card is a Second Chance the player already holds;
	// it was not absorbed and must be offered to someone else.
	Rejected
	// Halt is the would-bust signal returned to a Deal Three cascade that
	// reaches a player who stopped being eligible mid-cascade. Nothing about
	// the player changes and the cascade must stop.
	Halt
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Kept:
		return "kept"
	case Bust:
		return "bust"
	case Rejected:
		return "rejected"
	case Halt:
		return "halt"
	default:
		return "?"
	}
}

// Player is one seat in a game. Hand and flags are reset every round; the
// cumulative total survives across rounds.
type Player struct {
	Seat     int
	Name     string
	Label    string // profile or strategy name, used for reporting
	Strategy Strategy

	hand    []deck.Card
	numbers uint16 // bit v set when number v is held
	dupe    bool

	frozen       bool
	passed       bool
	busted       bool
	secondChance bool

	total int
}

// NewPlayer creates a player with an empty hand
func NewPlayer(seat int, name string, strategy Strategy) *Player {
	return &Player{Seat: seat, Name: name, Strategy: strategy}
}

// Receive applies a card to the player's hand.
//
// A frozen, passed or busted player only accepts cards from a Deal Three
// cascade, and answers those with Halt. Any other delivery to an
// ineligible player fails with ErrCannotReceive.
func (p *Player) Receive(c deck.Card, cascade bool) (Outcome, error) {
	if !p.IsActive() {
		if cascade {
			return Halt, nil
		}
		return Kept, fmt.Errorf("%w: %s is %s, got %s", ErrCannotReceive, p.Name, p.Status(), c)
	}

	switch c.Kind() {
	case deck.NumberCard:
		p.hand = append(p.hand, c)
		bit := uint16(1) << c.Value()
		if p.numbers&bit != 0 {
			p.dupe = true
			p.busted = true
			return Bust, nil
		}
		p.numbers |= bit
		if p.WouldBust() {
			p.busted = true
			return Bust, nil
		}
		return Kept, nil

	case deck.ActionCard:
		switch c.Action() {
		case deck.SecondChance:
			if p.secondChance {
				return Rejected, nil
			}
			p.secondChance = true
		case deck.Freeze:
			p.frozen = true
		case deck.DealThree:
			// the controller runs the cascade
		}
		p.hand = append(p.hand, c)
		return Kept, nil

	case deck.ModifierCard:
		p.hand = append(p.hand, c)
		return Kept, nil

	default:
		panic(fmt.Sprintf("unhandled card kind %v", c.Kind()))
	}
}

// UseSecondChance cancels the bust caused by the most recent card. It
// returns that card and the spent Second Chance so they can be discarded.
// ok is false when the player is not busted or holds no Second Chance.
func (p *Player) UseSecondChance() (spent []deck.Card, ok bool) {
	if !p.busted || !p.secondChance || len(p.hand) == 0 {
		return nil, false
	}

	last := p.hand[len(p.hand)-1]
	p.hand = p.hand[:len(p.hand)-1]

	idx := slices.IndexFunc(p.hand, func(c deck.Card) bool { return c.IsAction(deck.SecondChance) })
	if idx >= 0 {
		spent = append(spent, last, p.hand[idx])
		p.hand = slices.Delete(p.hand, idx, idx+1)
	} else {
		spent = append(spent, last)
	}

	p.secondChance = false
	p.busted = false
	p.rebuildNumbers()
	return spent, true
}

func (p *Player) rebuildNumbers() {
	p.numbers = 0
	p.dupe = false
	for _, c := range p.hand {
		if !c.IsNumber() {
			continue
		}
		bit := uint16(1) << c.Value()
		if p.numbers&bit != 0 {
			p.dupe = true
		}
		p.numbers |= bit
	}
}

// Pass ends the player's participation in the round
func (p *Player) Pass() {
	if p.IsActive() {
		p.passed = true
	}
}

// Score returns the round score: zero when busted, otherwise ScoreHand.
func (p *Player) Score() int {
	if p.busted {
		return 0
	}
	return ScoreHand(p.hand)
}

// scoreBeforeLast is the score the player keeps if the last card is cancelled.
func (p *Player) scoreBeforeLast() int {
	if len(p.hand) == 0 {
		return 0
	}
	return ScoreHand(p.hand[:len(p.hand)-1])
}

// ScoreHand scores a hand in draw order: the sum of distinct number values,
// plus SevenBonus for exactly seven of them, then every modifier folded in
// hand order (flat bonuses add, the multiplier doubles the running total).
func ScoreHand(hand []deck.Card) int {
	var seen uint16
	sum := 0
	for _, c := range hand {
		if !c.IsNumber() {
			continue
		}
		bit := uint16(1) << c.Value()
		if seen&bit == 0 {
			seen |= bit
			sum += c.Value()
		}
	}
	if bits.OnesCount16(seen) == SevenNumbers {
		sum += SevenBonus
	}

	for _, c := range hand {
		if c.Kind() != deck.ModifierCard {
			continue
		}
		if c.IsMultiplier() {
			sum *= c.Value()
		} else {
			sum += c.Value()
		}
	}
	return sum
}

// HasSevenNumbers reports whether exactly seven distinct numbers are held
func (p *Player) HasSevenNumbers() bool {
	return p.NumberCount() == SevenNumbers
}

// WouldBust reports whether the hand is invalid: more than seven distinct
// numbers, or any number held twice.
func (p *Player) WouldBust() bool {
	return p.NumberCount() > SevenNumbers || p.dupe
}

// NumberCount returns the number of distinct numbers held
func (p *Player) NumberCount() int {
	return bits.OnesCount16(p.numbers)
}

// Numbers returns the distinct numbers held, ascending
func (p *Player) Numbers() []int {
	var out []int
	for v := deck.MinNumber; v <= deck.MaxNumber; v++ {
		if p.numbers&(1<<v) != 0 {
			out = append(out, v)
		}
	}
	return out
}

// Hand returns a copy of the hand in draw order
func (p *Player) Hand() []deck.Card {
	return slices.Clone(p.hand)
}

// CardCount returns the number of cards in hand, of every kind
func (p *Player) CardCount() int { return len(p.hand) }

// HasSecondChance reports whether an unspent Second Chance is held
func (p *Player) HasSecondChance() bool { return p.secondChance }

// IsActive reports whether the player may still take turns this round
func (p *Player) IsActive() bool {
	return !p.frozen && !p.passed && !p.busted
}

// Status returns the gating flag, busted taking precedence over frozen over passed
func (p *Player) Status() Status {
	switch {
	case p.busted:
		return Busted
	case p.frozen:
		return Frozen
	case p.passed:
		return Passed
	default:
		return Active
	}
}

// Total returns the cumulative score over completed rounds
func (p *Player) Total() int { return p.total }

// reset clears the hand and flags for a new round and returns the cards
// that were held.
func (p *Player) reset() []deck.Card {
	held := p.hand
	p.hand = nil
	p.numbers = 0
	p.dupe = false
	p.frozen = false
	p.passed = false
	p.busted = false
	p.secondChance = false
	return held
}
