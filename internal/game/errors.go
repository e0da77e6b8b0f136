package game

import "errors"

var (
	// ErrCannotReceive means a card was handed to a player that is frozen,
	// passed or busted outside a Deal Three cascade. It signals a controller
	// bug and is always propagated.
	ErrCannotReceive = errors.New("player cannot receive cards")

	// ErrTurnLimit means a round ran past its turn bound.
	ErrTurnLimit = errors.New("turn limit exceeded")

	// ErrGameOver is returned when a turn is requested after the game ended.
	ErrGameOver = errors.New("game already over")
)
