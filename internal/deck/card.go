package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a card is constructed with an out-of-range payload.
var ErrInvalidCard = errors.New("invalid card")

// Kind identifies which of the three card families a card belongs to
type Kind uint8

const (
	NumberCard Kind = iota + 1
	ActionCard
	ModifierCard
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case NumberCard:
		return "number"
	case ActionCard:
		return "action"
	case ModifierCard:
		return "modifier"
	default:
		return "?"
	}
}

// Action represents the effect carried by an action card
type Action uint8

const (
	NoAction Action = iota
	Freeze
	DealThree
	SecondChance
)

// Actions lists every action kind in declaration order.
var Actions = []Action{Freeze, DealThree, SecondChance}

// String returns the display name of an action
func (a Action) String() string {
	switch a {
	case Freeze:
		return "Freeze"
	case DealThree:
		return "Deal Three"
	case SecondChance:
		return "Second Chance"
	default:
		return "None"
	}
}

// ParseAction resolves an action name. Matching ignores case, spaces,
// underscores and dashes, so "Deal Three", "deal_three" and "DEALTHREE" agree.
func ParseAction(s string) (Action, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(s))

	switch key {
	case "freeze":
		return Freeze, nil
	case "dealthree":
		return DealThree, nil
	case "secondchance":
		return SecondChance, nil
	}
	return NoAction, fmt.Errorf("%w: unknown action %q", ErrInvalidCard, s)
}

const (
	// MinNumber and MaxNumber bound the value of a number card.
	MinNumber = 0
	MaxNumber = 12

	// MultiplierAmount is the only factor a multiplier modifier may carry.
	MultiplierAmount = 2
)

// FlatBonuses is the allow-list of flat modifier denominations.
var FlatBonuses = []int{2, 4, 6, 8, 10}

// Card is an immutable Flip 7 card. The zero value is not a valid card;
// use NewNumber, NewAction or NewModifier. Cards compare with == by kind
// and payload.
type Card struct {
	kind       Kind
	value      int
	action     Action
	multiplier bool
}

// NewNumber creates a number card with a value in 0..12
func NewNumber(value int) (Card, error) {
	if value < MinNumber || value > MaxNumber {
		return Card{}, fmt.Errorf("%w: number %d outside %d..%d", ErrInvalidCard, value, MinNumber, MaxNumber)
	}
	return Card{kind: NumberCard, value: value}, nil
}

// NewAction creates an action card
func NewAction(action Action) (Card, error) {
	switch action {
	case Freeze, DealThree, SecondChance:
		return Card{kind: ActionCard, action: action}, nil
	default:
		return Card{}, fmt.Errorf("%w: action card without a kind", ErrInvalidCard)
	}
}

// NewModifier creates a flat bonus (+2..+10) or the x2 multiplier
func NewModifier(amount int, multiplier bool) (Card, error) {
	if multiplier {
		if amount != MultiplierAmount {
			return Card{}, fmt.Errorf("%w: multiplier x%d not allowed", ErrInvalidCard, amount)
		}
		return Card{kind: ModifierCard, value: amount, multiplier: true}, nil
	}
	for _, b := range FlatBonuses {
		if amount == b {
			return Card{kind: ModifierCard, value: amount}, nil
		}
	}
	return Card{}, fmt.Errorf("%w: modifier +%d not allowed", ErrInvalidCard, amount)
}

// Number is NewNumber for values known to be valid; it panics otherwise.
func Number(value int) Card {
	return must(NewNumber(value))
}

// ActionOf is NewAction for kinds known to be valid; it panics otherwise.
func ActionOf(action Action) Card {
	return must(NewAction(action))
}

// Bonus returns the flat modifier +amount; it panics on a denomination outside the allow-list.
func Bonus(amount int) Card {
	return must(NewModifier(amount, false))
}

// Double returns the x2 multiplier card.
func Double() Card {
	return must(NewModifier(MultiplierAmount, true))
}

func must(c Card, err error) Card {
	if err != nil {
		panic(err)
	}
	return c
}

// Kind returns the card family
func (c Card) Kind() Kind { return c.kind }

// Value returns the number value, or the modifier amount. Zero for actions.
func (c Card) Value() int { return c.value }

// Action returns the action kind, or NoAction for non-action cards
func (c Card) Action() Action { return c.action }

// IsMultiplier reports whether the card is the x2 modifier
func (c Card) IsMultiplier() bool { return c.multiplier }

// IsNumber reports whether the card is a number card
func (c Card) IsNumber() bool { return c.kind == NumberCard }

// IsAction reports whether the card is an action card of the given kind
func (c Card) IsAction(a Action) bool { return c.kind == ActionCard && c.action == a }

// IsValid reports whether the card was produced by a constructor
func (c Card) IsValid() bool { return c.kind != 0 }

// String returns a short display form: "7", "Freeze", "+4", "x2"
func (c Card) String() string {
	switch c.kind {
	case NumberCard:
		return fmt.Sprintf("%d", c.value)
	case ActionCard:
		return c.action.String()
	case ModifierCard:
		if c.multiplier {
			return fmt.Sprintf("x%d", c.value)
		}
		return fmt.Sprintf("+%d", c.value)
	default:
		return "?"
	}
}
