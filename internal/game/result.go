package game

import "github.com/lox/flip7/internal/deck"

// PlayerResult is the end state of one seat, safe to hand to reporting.
type PlayerResult struct {
	Seat         int
	Name         string
	Label        string
	Score        int
	Total        int
	Status       Status
	SevenNumbers bool
	Hand         []deck.Card
	Diagnostics  *Diagnostics
}

// RoundResult records one completed round
type RoundResult struct {
	Number        int
	Winner        int // seat index
	WinningScore  int
	SevenNumbers  bool // the round ended on a seven-number hand
	DeckExhausted bool
	Turns         int
	Players       []PlayerResult
}

// Result records a completed game
type Result struct {
	ID           string
	Winner       int // seat index
	WinnerName   string
	WinningTotal int
	Rounds       []RoundResult
	Players      []PlayerResult
}

func (g *Game) snapshot(p *Player) PlayerResult {
	return PlayerResult{
		Seat:         p.Seat,
		Name:         p.Name,
		Label:        p.Label,
		Score:        p.Score(),
		Total:        p.total,
		Status:       p.Status(),
		SevenNumbers: p.HasSevenNumbers() && !p.busted,
		Hand:         p.Hand(),
	}
}

// topSeat returns the first seat holding the maximum of value.
func topSeat(players []*Player, value func(*Player) int) *Player {
	var best *Player
	for _, p := range players {
		if best == nil || value(p) > value(best) {
			best = p
		}
	}
	return best
}
