package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flip7/internal/game"
)

func TestSummaryMoments(t *testing.T) {
	s := &Summary{Label: "carl"}
	for _, total := range []int{10, 20, 30, 40} {
		s.Add(PlayerOutcome{Label: "carl", Total: total, Rounds: 1})
	}

	assert.Equal(t, 4, s.Games)
	assert.InDelta(t, 25.0, s.Mean(), 1e-9)
	assert.InDelta(t, 500.0/3, s.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(500.0/3), s.StdDev(), 1e-9)
	assert.InDelta(t, s.StdDev()/2, s.StdError(), 1e-9)

	lo, hi := s.ConfidenceInterval95()
	assert.InDelta(t, 25-1.96*s.StdError(), lo, 1e-9)
	assert.InDelta(t, 25+1.96*s.StdError(), hi, 1e-9)
}

func TestEmptySummary(t *testing.T) {
	s := &Summary{}
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.WinRate())
	assert.Zero(t, s.BustRate())
	assert.Zero(t, s.MeanRisk())
}

func TestSummaryRates(t *testing.T) {
	s := &Summary{}
	s.Add(PlayerOutcome{Won: true, Rounds: 4, Busts: 1, Freezes: 1, Passes: 2, Sevens: 1,
		Diagnostics: &game.Diagnostics{Decisions: 5, LastRisk: 0.4, LuckyTriggers: 2}})
	s.Add(PlayerOutcome{Rounds: 4, Busts: 3, Passes: 1,
		Diagnostics: &game.Diagnostics{Decisions: 3, LastRisk: 0.6, SuperstitionTriggers: 1}})
	s.Add(PlayerOutcome{Rounds: 2, Passes: 2, Diagnostics: &game.Diagnostics{}})

	assert.InDelta(t, 1.0/3, s.WinRate(), 1e-9)
	assert.InDelta(t, 0.4, s.BustRate(), 1e-9)
	assert.InDelta(t, 0.1, s.FreezeRate(), 1e-9)
	assert.InDelta(t, 0.5, s.PassRate(), 1e-9)
	assert.Equal(t, 1, s.Sevens)
	assert.Equal(t, 2, s.LuckyTriggers)
	assert.Equal(t, 1, s.SuperstitionTriggers)
	assert.InDelta(t, 0.5, s.MeanRisk(), 1e-9, "games without decisions are not sampled")
}

func TestFromResult(t *testing.T) {
	res := &game.Result{
		ID:           "g1",
		Winner:       1,
		WinnerName:   "bob",
		WinningTotal: 60,
		Players: []game.PlayerResult{
			{Seat: 0, Name: "alice", Label: "Cautious Carl", Total: 25, Score: 0, Status: game.Busted},
			{Seat: 1, Name: "bob", Total: 60, Score: 43, Status: game.Active, Diagnostics: &game.Diagnostics{Decisions: 2}},
		},
		Rounds: []game.RoundResult{
			{Winner: 0, DeckExhausted: true, Players: []game.PlayerResult{{Status: game.Passed}, {Status: game.Frozen}}},
			{Winner: 1, SevenNumbers: true, Players: []game.PlayerResult{{Status: game.Busted}, {Status: game.Active}}},
		},
	}

	o := FromResult(3, 99, res)
	assert.Equal(t, 3, o.Index)
	assert.Equal(t, int64(99), o.Seed)
	assert.Equal(t, "g1", o.ID)
	assert.Equal(t, 2, o.Rounds)
	assert.Equal(t, 1, o.DeckExhausted)
	require.Len(t, o.Players, 2)

	alice, bob := o.Players[0], o.Players[1]
	assert.Equal(t, "Cautious Carl", alice.Label)
	assert.False(t, alice.Won)
	assert.Equal(t, 1, alice.Busts)
	assert.Equal(t, 1, alice.Passes)
	assert.Equal(t, game.Busted, alice.Status)

	assert.Equal(t, "bob", bob.Label, "unlabelled seats aggregate by name")
	assert.True(t, bob.Won)
	assert.Equal(t, 1, bob.Freezes)
	assert.Equal(t, 1, bob.Sevens)
	assert.Equal(t, 43, bob.Score)
	assert.NotNil(t, bob.Diagnostics)
}

func TestReport(t *testing.T) {
	r := NewReport()
	r.Add(GameOutcome{WinningTotal: 40, Rounds: 1, Players: []PlayerOutcome{
		{Label: "carl", Won: true, Total: 40, Rounds: 1},
		{Label: "yuki", Total: 0, Rounds: 1, Busts: 1},
	}})
	r.Add(GameOutcome{WinningTotal: 70, Rounds: 2, DeckExhausted: 1, Players: []PlayerOutcome{
		{Label: "carl", Total: 30, Rounds: 2},
		{Label: "yuki", Won: true, Total: 70, Rounds: 2},
	}})
	r.Add(GameOutcome{WinningTotal: 55, Rounds: 1, Players: []PlayerOutcome{
		{Label: "carl", Total: 20, Rounds: 1},
		{Label: "yuki", Won: true, Total: 55, Rounds: 1},
	}})

	require.NoError(t, r.Validate())
	assert.Equal(t, 3, r.Games)
	assert.Equal(t, 4, r.Rounds)
	assert.Equal(t, 1, r.DeckExhausted)
	assert.Equal(t, 40, r.MinWinning)
	assert.Equal(t, 70, r.MaxWinning)
	assert.InDelta(t, 55.0, r.AverageWinningScore(), 1e-9)

	sums := r.Summaries()
	require.Len(t, sums, 2)
	assert.Equal(t, "yuki", sums[0].Label)
	assert.Equal(t, "carl", sums[1].Label)

	carl, ok := r.Summary("carl")
	require.True(t, ok)
	assert.InDelta(t, 30.0, carl.Mean(), 1e-9)
}

func TestReportValidateCatchesMissingWinner(t *testing.T) {
	r := NewReport()
	r.Add(GameOutcome{Players: []PlayerOutcome{{Label: "a"}, {Label: "b"}}})
	require.Error(t, r.Validate())
}
