// Package game implements the Flip 7 rule engine: player hands, bust and
// scoring rules, and the round controller that drives turns.
//
// The main type is Game, which owns one Deck and the Players seated at it
// for the lifetime of a game. Players consult a Strategy for every draw and
// Second Chance decision; the strategy only ever sees a read-only State
// snapshot.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	g := game.New(rng, []game.Seat{
//	    {Name: "Alice", Strategy: bot.NewThresholdBot(rng, nil)},
//	    {Name: "Bob", Strategy: bot.NewManiacBot(nil)},
//	})
//	result, err := g.Play()
//
// # Deterministic Testing
//
// All randomness comes from the *rand.Rand handed to New. For complete
// control over card order, provide a stacked deck:
//
//	d := deck.NewStacked(rng, deck.Number(3), deck.Number(3))
//	g := game.New(rng, seats, game.WithDeck(d))
//
// # Round Flow
//
// A round deals one card to every seat, then cycles through Active players.
// Each turn the player either passes or draws; the drawn card is resolved
// (Deal Three cascades, Freeze, Second Chance hand-off, bust recovery). The
// round ends when no player is Active, the deck is exhausted, or a player
// collects seven distinct numbers, which wins the round on the spot.
package game
