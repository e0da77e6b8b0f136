package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flip7/internal/deck"
)

const sam = `
name: Superstitious Sam
description: Loves threes
intelligence: 0.4
risk_tolerance:
  base: 0.5
  card_count_weights: [1, 1, 0.9, 0.8, 0.7, 0.6, 0.5]
  score_sensitivity: 0.4
  deck_awareness: 0.2
target_score: 45
catch_up_aggression: 0.4
lucky_cards:
  enabled: true
  cards: [3, "Second Chance"]
superstitions:
  enabled: true
  negative: [12, freeze, deal_three]
  threshold: 0.7
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sam))
	require.NoError(t, err)

	assert.Equal(t, "Superstitious Sam", p.Name)
	assert.Equal(t, 45, p.TargetScore)
	assert.Len(t, p.RiskTolerance.CardCountWeights, CurveLength)
	assert.Equal(t, []CardRef{NumberRef(3), ActionRef(deck.SecondChance)}, p.LuckyCards.Cards)
	assert.Equal(t, []CardRef{NumberRef(12), ActionRef(deck.Freeze), ActionRef(deck.DealThree)}, p.Superstitions.Negative)
}

func TestParseRejects(t *testing.T) {
	valid, err := Parse([]byte(sam))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"missing name", func(p *Profile) { p.Name = " " }},
		{"intelligence above 1", func(p *Profile) { p.Intelligence = 1.2 }},
		{"negative base", func(p *Profile) { p.RiskTolerance.Base = -0.1 }},
		{"short curve", func(p *Profile) { p.RiskTolerance.CardCountWeights = []float64{1, 1} }},
		{"weight out of range", func(p *Profile) { p.RiskTolerance.CardCountWeights[3] = 2 }},
		{"sensitivity out of range", func(p *Profile) { p.RiskTolerance.ScoreSensitivity = 3 }},
		{"awareness out of range", func(p *Profile) { p.RiskTolerance.DeckAwareness = -1 }},
		{"target too low", func(p *Profile) { p.TargetScore = MinTargetScore - 1 }},
		{"target too high", func(p *Profile) { p.TargetScore = MaxTargetScore + 1 }},
		{"catch-up out of range", func(p *Profile) { p.CatchUpAggression = 1.5 }},
		{"lucky number out of range", func(p *Profile) { p.LuckyCards.Cards = []CardRef{NumberRef(13)} }},
		{"lucky enabled without cards", func(p *Profile) { p.LuckyCards.Cards = nil }},
		{"superstition threshold", func(p *Profile) { p.Superstitions.Threshold = 1.1 }},
		{"superstition number", func(p *Profile) { p.Superstitions.Negative = []CardRef{NumberRef(-1)} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid.Clone()
			tt.mutate(p)
			data, err := Marshal(p)
			require.NoError(t, err)

			_, err = Parse(data)
			require.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "name: x\nbogus: 1\n",
		"unknown action": "name: x\nlucky_cards:\n  cards: [\"Flip Four\"]\n",
		"card as a map":  "name: x\nlucky_cards:\n  cards: [{value: 3}]\n",
		"empty":          "",
		"not yaml":       "name: [unclosed\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestCardRefMatches(t *testing.T) {
	assert.True(t, NumberRef(0).Matches(deck.Number(0)))
	assert.False(t, NumberRef(0).Matches(deck.Bonus(2)), "modifiers never match")
	assert.False(t, NumberRef(4).Matches(deck.Number(5)))
	assert.True(t, ActionRef(deck.Freeze).Matches(deck.ActionOf(deck.Freeze)))
	assert.False(t, ActionRef(deck.Freeze).Matches(deck.ActionOf(deck.DealThree)))
	assert.Equal(t, "Deal Three", ActionRef(deck.DealThree).String())
	assert.Equal(t, "12", NumberRef(12).String())
}

func TestCloneIsDeep(t *testing.T) {
	p, err := Parse([]byte(sam))
	require.NoError(t, err)

	c := p.Clone()
	c.RiskTolerance.CardCountWeights[0] = 0
	c.LuckyCards.Cards[0] = NumberRef(9)
	c.RiskTolerance.Base = 0.1

	assert.Equal(t, 1.0, p.RiskTolerance.CardCountWeights[0])
	assert.Equal(t, NumberRef(3), p.LuckyCards.Cards[0])
	assert.Equal(t, 0.5, p.RiskTolerance.Base)
}

func TestPresetsAreValid(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 5)
	for _, p := range presets {
		assert.NoError(t, p.Validate(), p.Name)
	}

	presets[0].Name = "changed"
	assert.Equal(t, "Cautious Carl", Presets()[0].Name)
}

func TestWritePresetsRoundTrip(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "profiles")
	paths, err := WritePresets(dir)
	require.NoError(t, err)
	require.Len(t, paths, len(Presets()))
	assert.Equal(t, filepath.Join(dir, "cautious_carl.yaml"), paths[0])

	loaded, err := LoadDir(dir, log.New(os.Stderr))
	require.NoError(t, err)

	want := Presets()
	require.Len(t, loaded, len(want))
	for _, w := range want {
		got, ok := Find(loaded, w.Name)
		require.True(t, ok, w.Name)
		assert.Equal(t, w, got)
	}
}

func TestLoadDirSkipsInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("a_sam.yaml", sam)
	write("b_broken.yaml", "name: broken\nintelligence: 7\n")
	write("c_sam_again.yml", sam)
	write("notes.txt", "not a profile")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	var buf bytes.Buffer
	loaded, err := LoadDir(dir, log.New(&buf))
	require.NoError(t, err)

	assert.Equal(t, []string{"Superstitious Sam"}, Names(loaded))
	assert.Contains(t, buf.String(), "b_broken.yaml")
	assert.Contains(t, buf.String(), "duplicate")
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"), log.New(os.Stderr))
	require.Error(t, err)
}

func TestLoadWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: bad\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestFind(t *testing.T) {
	ps := Presets()
	p, ok := Find(ps, "yolo yuki")
	require.True(t, ok)
	assert.Equal(t, "YOLO Yuki", p.Name)

	_, ok = Find(ps, "nobody")
	assert.False(t, ok)
}
