package deck

import (
	"fmt"
	"strings"
)

// Composition describes the fixed card population of a deck.
type Composition struct {
	Name string
	// Numbers[v] is the number of copies of number card v.
	Numbers [MaxNumber + 1]int
	// ActionCopies is how many of each action kind the deck holds.
	ActionCopies int
	// Bonuses are the flat modifiers, one card each.
	Bonuses []int
	// Multipliers is the number of x2 cards.
	Multipliers int
}

// Standard is the retail Flip 7 deck: a single 0, n copies of every n in
// 1..12, three of each action and one of each modifier.
func Standard() Composition {
	c := Composition{
		Name:         "standard",
		ActionCopies: 3,
		Bonuses:      FlatBonuses,
		Multipliers:  1,
	}
	c.Numbers[0] = 1
	for v := 1; v <= MaxNumber; v++ {
		c.Numbers[v] = v
	}
	return c
}

// Uniform holds four copies of every number and four of each action.
func Uniform() Composition {
	c := Composition{
		Name:         "uniform",
		ActionCopies: 4,
		Bonuses:      FlatBonuses,
		Multipliers:  1,
	}
	for v := range c.Numbers {
		c.Numbers[v] = 4
	}
	return c
}

// ParseComposition returns the named preset
func ParseComposition(name string) (Composition, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard":
		return Standard(), nil
	case "uniform":
		return Uniform(), nil
	default:
		return Composition{}, fmt.Errorf("unknown deck composition %q (want standard or uniform)", name)
	}
}

// Size returns the total card population
func (c Composition) Size() int {
	n := 0
	for _, copies := range c.Numbers {
		n += copies
	}
	return n + c.ActionCopies*len(Actions) + len(c.Bonuses) + c.Multipliers
}

// Build enumerates the population in a fixed order: numbers ascending,
// then actions, then modifiers. The result is never shuffled.
func (c Composition) Build() []Card {
	cards := make([]Card, 0, c.Size())
	for v, copies := range c.Numbers {
		for range copies {
			cards = append(cards, Number(v))
		}
	}
	for _, a := range Actions {
		for range c.ActionCopies {
			cards = append(cards, ActionOf(a))
		}
	}
	for _, b := range c.Bonuses {
		cards = append(cards, Bonus(b))
	}
	for range c.Multipliers {
		cards = append(cards, Double())
	}
	return cards
}
