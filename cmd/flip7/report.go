package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/simulator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	bustStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func printReport(w io.Writer, res *simulator.Results) {
	r := res.Report

	fmt.Fprintln(w, headerStyle.Render("Flip 7 simulation"))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("run %s  seed %d  %d games  %d rounds  %s",
		res.RunID, res.Seed, r.Games, r.Rounds, res.Elapsed.Round(time.Millisecond))))
	fmt.Fprintln(w)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Profile", "Games", "Wins", "Win rate", "Mean score", "95% CI", "Bust", "Freeze", "Sevens", "Risk").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 0:
				return nameStyle.Padding(0, 1)
			case 3:
				return winStyle.Padding(0, 1)
			case 6:
				return bustStyle.Padding(0, 1)
			}
			return cellStyle
		})

	for _, s := range r.Summaries() {
		lo, hi := s.ConfidenceInterval95()
		t.Row(
			s.Label,
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Wins),
			pct(s.WinRate()),
			fmt.Sprintf("%.1f", s.Mean()),
			fmt.Sprintf("%.1f..%.1f", lo, hi),
			pct(s.BustRate()),
			pct(s.FreezeRate()),
			strconv.Itoa(s.Sevens),
			fmt.Sprintf("%.2f", s.MeanRisk()),
		)
	}
	fmt.Fprintln(w, t.Render())

	fmt.Fprintf(w, "Winning score: avg %.1f, min %d, max %d\n", r.AverageWinningScore(), r.MinWinning, r.MaxWinning)
	if r.DeckExhausted > 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d rounds ended on an empty deck", r.DeckExhausted)))
	}
}

func printStandings(w io.Writer, res *game.Result) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Seat", "Player", "Profile", "Last round", "Status", "Total").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if row >= 0 && row < len(res.Players) && res.Players[row].Seat == res.Winner {
				return winStyle.Padding(0, 1)
			}
			return cellStyle
		})

	for _, p := range res.Players {
		t.Row(
			strconv.Itoa(p.Seat),
			p.Name,
			p.Label,
			fmt.Sprintf("%d %v", p.Score, p.Hand),
			p.Status.String(),
			strconv.Itoa(p.Total),
		)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%s wins with %d after %d rounds\n",
		nameStyle.Render(res.WinnerName), res.WinningTotal, len(res.Rounds))
}
