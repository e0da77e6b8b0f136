package deck

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyDeck is returned by Draw when both the draw and discard piles are empty.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck owns the draw pile and the discard pile. Cards leave the deck only
// through Draw and come back only through Discard.
type Deck struct {
	draw    []Card // draw[0] is the top card
	discard []Card
	rng     *rand.Rand
	total   int
}

// New builds the composition and shuffles it with rng
func New(rng *rand.Rand, c Composition) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		draw:  c.Build(),
		rng:   rng,
		total: c.Size(),
	}
	d.Shuffle()
	return d
}

// NewStacked creates a deck whose draw pile is exactly cards, in order
// (cards[0] is drawn first). The rng is only used when the discard pile is
// reshuffled back in.
func NewStacked(rng *rand.Rand, cards ...Card) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	draw := make([]Card, len(cards))
	copy(draw, cards)
	return &Deck{draw: draw, rng: rng, total: len(cards)}
}

// Shuffle uniformly permutes the draw pile in place
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw pops the top card. An empty draw pile is refilled from the discard
// pile and reshuffled once before giving up with ErrEmptyDeck.
func (d *Deck) Draw() (Card, error) {
	if len(d.draw) == 0 {
		d.reshuffleDiscards()
	}
	if len(d.draw) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.draw[0]
	d.draw = d.draw[1:]
	return card, nil
}

// Discard puts a card on the discard pile. It stays visible through
// Discarded until the pile is reshuffled into the draw pile.
func (d *Deck) Discard(cards ...Card) {
	d.discard = append(d.discard, cards...)
}

func (d *Deck) reshuffleDiscards() {
	if len(d.discard) == 0 {
		return
	}
	d.draw = append(d.draw, d.discard...)
	d.discard = d.discard[:0]
	d.Shuffle()
}

// Discarded returns a copy of the discard pile
func (d *Deck) Discarded() []Card {
	out := make([]Card, len(d.discard))
	copy(out, d.discard)
	return out
}

// CardsRemaining returns the size of the draw pile
func (d *Deck) CardsRemaining() int { return len(d.draw) }

// DiscardCount returns the size of the discard pile
func (d *Deck) DiscardCount() int { return len(d.discard) }

// Total returns the card population the deck was created with
func (d *Deck) Total() int { return d.total }

// IsEmpty reports whether neither pile holds a card
func (d *Deck) IsEmpty() bool { return len(d.draw) == 0 && len(d.discard) == 0 }
