package profile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/fileutil"
)

// Presets returns the built-in profiles. Each call returns fresh copies.
func Presets() []*Profile {
	return []*Profile{
		{
			Name:         "Cautious Carl",
			Description:  "Banks early and rarely pushes past four cards",
			Intelligence: 0.7,
			RiskTolerance: RiskTolerance{
				Base:             0.3,
				CardCountWeights: []float64{1, 1, 0.9, 0.7, 0.5, 0.3, 0.1},
				ScoreSensitivity: 0.8,
				DeckAwareness:    0.6,
			},
			TargetScore:       30,
			CatchUpAggression: 0.2,
			Superstitions:     Superstitions{Threshold: 0.5},
		},
		{
			Name:         "Risk Taker Rachel",
			Description:  "Keeps flipping and trusts her lucky sevens",
			Intelligence: 0.6,
			RiskTolerance: RiskTolerance{
				Base:             0.8,
				CardCountWeights: []float64{1, 1, 1, 0.95, 0.9, 0.85, 0.8},
				ScoreSensitivity: 0.3,
				DeckAwareness:    0.4,
			},
			TargetScore:       70,
			CatchUpAggression: 0.8,
			LuckyCards: LuckyCards{
				Enabled: true,
				Cards:   []CardRef{NumberRef(7), ActionRef(deck.SecondChance)},
			},
			Superstitions: Superstitions{Threshold: 0.5},
		},
		{
			Name:         "Balanced Betty",
			Description:  "Counts cards and adapts to the table",
			Intelligence: 0.85,
			RiskTolerance: RiskTolerance{
				Base:             0.55,
				CardCountWeights: []float64{1, 1, 0.95, 0.85, 0.7, 0.55, 0.4},
				ScoreSensitivity: 0.5,
				DeckAwareness:    0.8,
			},
			TargetScore:       50,
			CatchUpAggression: 0.5,
			Superstitions:     Superstitions{Threshold: 0.5},
		},
		{
			Name:         "Superstitious Sam",
			Description:  "Loves threes, fears twelves and the Freeze",
			Intelligence: 0.4,
			RiskTolerance: RiskTolerance{
				Base:             0.5,
				CardCountWeights: []float64{1, 1, 0.9, 0.8, 0.7, 0.6, 0.5},
				ScoreSensitivity: 0.4,
				DeckAwareness:    0.2,
			},
			TargetScore:       45,
			CatchUpAggression: 0.4,
			LuckyCards: LuckyCards{
				Enabled: true,
				Cards:   []CardRef{NumberRef(3), NumberRef(7)},
			},
			Superstitions: Superstitions{
				Enabled:   true,
				Negative:  []CardRef{NumberRef(12), ActionRef(deck.Freeze)},
				Threshold: 0.7,
			},
		},
		{
			Name:         "YOLO Yuki",
			Description:  "Draws until something stops her",
			Intelligence: 0.2,
			RiskTolerance: RiskTolerance{
				Base:             1,
				CardCountWeights: []float64{1, 1, 1, 1, 1, 1, 1},
				ScoreSensitivity: 0.1,
				DeckAwareness:    0.1,
			},
			TargetScore:       100,
			CatchUpAggression: 1,
			LuckyCards: LuckyCards{
				Enabled: true,
				Cards:   []CardRef{ActionRef(deck.DealThree)},
			},
			Superstitions: Superstitions{Threshold: 0.5},
		},
	}
}

// FileName is the file a profile is written to: its name in snake case
func FileName(p *Profile) string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	name = strings.Join(strings.Fields(name), "_")
	return name + ".yaml"
}

// WritePresets writes every preset to dir, creating it if needed, and
// returns the paths written.
func WritePresets(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	var paths []string
	for _, p := range Presets() {
		path := filepath.Join(dir, FileName(p))
		err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return Encode(w, p)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
