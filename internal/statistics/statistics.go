// Package statistics aggregates simulated game outcomes per profile.
package statistics

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/lox/flip7/internal/game"
)

// PlayerOutcome is one seat's record of a finished game
type PlayerOutcome struct {
	Seat  int
	Name  string
	Label string // profile or strategy name; the aggregation key
	Won   bool

	Total  int         // cumulative score over the game
	Score  int         // score of the final round
	Status game.Status // status at the end of the final round

	Rounds  int
	Busts   int
	Freezes int
	Passes  int
	Sevens  int

	Diagnostics *game.Diagnostics
}

// GameOutcome is the record of one simulated game
type GameOutcome struct {
	Index         int
	ID            string
	Seed          int64
	Winner        int
	WinnerName    string
	WinningTotal  int
	Rounds        int
	DeckExhausted int // rounds cut short by an empty deck
	Players       []PlayerOutcome
}

// FromResult flattens a game result into an outcome record
func FromResult(index int, seed int64, res *game.Result) GameOutcome {
	out := GameOutcome{
		Index:        index,
		ID:           res.ID,
		Seed:         seed,
		Winner:       res.Winner,
		WinnerName:   res.WinnerName,
		WinningTotal: res.WinningTotal,
		Rounds:       len(res.Rounds),
	}

	for _, p := range res.Players {
		po := PlayerOutcome{
			Seat:        p.Seat,
			Name:        p.Name,
			Label:       p.Label,
			Won:         p.Seat == res.Winner,
			Total:       p.Total,
			Score:       p.Score,
			Status:      p.Status,
			Rounds:      len(res.Rounds),
			Diagnostics: p.Diagnostics,
		}
		if po.Label == "" {
			po.Label = p.Name
		}
		for _, r := range res.Rounds {
			rp := r.Players[p.Seat]
			switch rp.Status {
			case game.Busted:
				po.Busts++
			case game.Frozen:
				po.Freezes++
			case game.Passed:
				po.Passes++
			}
			if r.SevenNumbers && r.Winner == p.Seat {
				po.Sevens++
			}
		}
		out.Players = append(out.Players, po)
	}

	for _, r := range res.Rounds {
		if r.DeckExhausted {
			out.DeckExhausted++
		}
	}
	return out
}

// Summary tracks one profile across every seat it played
type Summary struct {
	Label string

	Games   int
	Wins    int
	Rounds  int
	Busts   int
	Freezes int
	Passes  int
	Sevens  int

	LuckyTriggers        int
	SuperstitionTriggers int

	SumScore  float64
	SumScore2 float64 // sum of squares for variance

	SumRisk     float64
	RiskSamples int
}

// Add incorporates one seat's outcome
func (s *Summary) Add(p PlayerOutcome) {
	s.Games++
	if p.Won {
		s.Wins++
	}
	s.Rounds += p.Rounds
	s.Busts += p.Busts
	s.Freezes += p.Freezes
	s.Passes += p.Passes
	s.Sevens += p.Sevens

	score := float64(p.Total)
	s.SumScore += score
	s.SumScore2 += score * score

	if d := p.Diagnostics; d != nil {
		s.LuckyTriggers += d.LuckyTriggers
		s.SuperstitionTriggers += d.SuperstitionTriggers
		if d.Decisions > 0 {
			s.SumRisk += d.LastRisk
			s.RiskSamples++
		}
	}
}

// WinRate returns wins per game
func (s *Summary) WinRate() float64 { return ratio(s.Wins, s.Games) }

// BustRate returns busts per round played
func (s *Summary) BustRate() float64 { return ratio(s.Busts, s.Rounds) }

// FreezeRate returns freezes per round played
func (s *Summary) FreezeRate() float64 { return ratio(s.Freezes, s.Rounds) }

// PassRate returns passes per round played
func (s *Summary) PassRate() float64 { return ratio(s.Passes, s.Rounds) }

// MeanRisk returns the mean of the last computed risk per game
func (s *Summary) MeanRisk() float64 {
	if s.RiskSamples == 0 {
		return 0
	}
	return s.SumRisk / float64(s.RiskSamples)
}

// Mean returns the mean game score
func (s *Summary) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of game scores
func (s *Summary) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return max(0, (s.SumScore2-float64(s.Games)*mean*mean)/float64(s.Games-1))
}

// StdDev returns the sample standard deviation of game scores
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean score
func (s *Summary) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean score
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Report aggregates a batch of games
type Report struct {
	Games         int
	Rounds        int
	DeckExhausted int

	SumWinning int
	MinWinning int
	MaxWinning int

	summaries map[string]*Summary
	order     []string
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{summaries: map[string]*Summary{}}
}

// Add incorporates a game outcome
func (r *Report) Add(o GameOutcome) {
	if r.Games == 0 || o.WinningTotal < r.MinWinning {
		r.MinWinning = o.WinningTotal
	}
	r.MaxWinning = max(r.MaxWinning, o.WinningTotal)
	r.SumWinning += o.WinningTotal
	r.Games++
	r.Rounds += o.Rounds
	r.DeckExhausted += o.DeckExhausted

	for _, p := range o.Players {
		s, ok := r.summaries[p.Label]
		if !ok {
			s = &Summary{Label: p.Label}
			r.summaries[p.Label] = s
			r.order = append(r.order, p.Label)
		}
		s.Add(p)
	}
}

// AverageWinningScore returns the mean winning total
func (r *Report) AverageWinningScore() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.SumWinning) / float64(r.Games)
}

// Summary returns the summary for label
func (r *Report) Summary(label string) (*Summary, bool) {
	s, ok := r.summaries[label]
	return s, ok
}

// Summaries returns every profile, best win rate first. Equal win rates
// keep the order profiles were first seen in.
func (r *Report) Summaries() []*Summary {
	out := make([]*Summary, 0, len(r.order))
	for _, label := range r.order {
		out = append(out, r.summaries[label])
	}
	slices.SortStableFunc(out, func(a, b *Summary) int {
		return cmp.Compare(b.WinRate(), a.WinRate())
	})
	return out
}

// Validate checks that every game produced exactly one winner
func (r *Report) Validate() error {
	wins := 0
	for _, s := range r.summaries {
		wins += s.Wins
	}
	if wins != r.Games {
		return fmt.Errorf("recorded %d wins for %d games", wins, r.Games)
	}
	return nil
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
