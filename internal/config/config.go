// Package config loads the HCL simulation configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/flip7/internal/bot"
	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/game"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultGames         = 1000
	DefaultPlayers       = 6
	DefaultSeed          = 42
	DefaultWorkers       = 4
	DefaultDeck          = "standard"
	DefaultProfilesDir   = "profiles"
	DefaultProgressEvery = 100

	MaxPlayers = 18
)

// Config is the complete simulation configuration
type Config struct {
	Simulation *Simulation `hcl:"simulation,block"`
	Seats      []Seat      `hcl:"seat,block"`
}

// Simulation holds batch-level settings
type Simulation struct {
	Games         int    `hcl:"games,optional"`
	Players       int    `hcl:"players,optional"`
	Seed          int64  `hcl:"seed,optional"`
	Workers       int    `hcl:"workers,optional"`
	Deck          string `hcl:"deck,optional"`
	WinningTotal  int    `hcl:"winning_total,optional"`
	MaxTurns      int    `hcl:"max_turns,optional"`
	MaxRounds     int    `hcl:"max_rounds,optional"`
	MaxScore      int    `hcl:"max_score,optional"`
	ProfilesDir   string `hcl:"profiles_dir,optional"`
	Persistent    bool   `hcl:"persistent,optional"`
	ProgressEvery int    `hcl:"progress_every,optional"`
}

// Seat declares one player at the table
type Seat struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Profile  string `hcl:"profile,optional"`
	Position *int   `hcl:"position,optional"`
}

// DefaultConfig returns a six-player threshold table
func DefaultConfig() *Config {
	c := &Config{Simulation: &Simulation{}}
	c.applyDefaults()
	return c
}

// Load reads the config at filename. A missing file yields DefaultConfig.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills unset attributes with defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if c.Simulation == nil {
		c.Simulation = &Simulation{}
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	s := c.Simulation
	if s.Games == 0 {
		s.Games = DefaultGames
	}
	if s.Players == 0 {
		s.Players = max(DefaultPlayers, len(c.Seats))
	}
	if s.Seed == 0 {
		s.Seed = DefaultSeed
	}
	if s.Workers == 0 {
		s.Workers = DefaultWorkers
	}
	if s.Deck == "" {
		s.Deck = DefaultDeck
	}
	if s.MaxTurns == 0 {
		s.MaxTurns = game.DefaultMaxTurns
	}
	if s.MaxRounds == 0 {
		s.MaxRounds = game.DefaultMaxRounds
	}
	if s.MaxScore == 0 {
		s.MaxScore = game.DefaultMaxScore
	}
	if s.ProfilesDir == "" {
		s.ProfilesDir = DefaultProfilesDir
	}
	if s.ProgressEvery == 0 {
		s.ProgressEvery = DefaultProgressEvery
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			if c.Seats[i].Profile != "" {
				c.Seats[i].Strategy = bot.KindProfile
			} else {
				c.Seats[i].Strategy = bot.KindThreshold
			}
		}
	}
}

// Validate checks ranges, strategies and seat positions
func (c *Config) Validate() error {
	s := c.Simulation
	if s == nil {
		return fmt.Errorf("%w: missing simulation block", ErrInvalidConfig)
	}
	if s.Games < 1 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, s.Games)
	}
	if s.Players < 1 || s.Players > MaxPlayers {
		return fmt.Errorf("%w: players must be between 1 and %d, got %d", ErrInvalidConfig, MaxPlayers, s.Players)
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, s.Workers)
	}
	if _, err := deck.ParseComposition(s.Deck); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if s.WinningTotal < 0 {
		return fmt.Errorf("%w: winning total must not be negative", ErrInvalidConfig)
	}
	if s.MaxTurns < 1 || s.MaxRounds < 1 || s.MaxScore < 1 {
		return fmt.Errorf("%w: max_turns, max_rounds and max_score must be positive", ErrInvalidConfig)
	}
	if s.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress_every must not be negative", ErrInvalidConfig)
	}
	if len(c.Seats) > s.Players {
		return fmt.Errorf("%w: %d seats declared for %d players", ErrInvalidConfig, len(c.Seats), s.Players)
	}

	names := map[string]bool{}
	positions := map[int]string{}
	for _, seat := range c.Seats {
		if names[seat.Name] {
			return fmt.Errorf("%w: duplicate seat %q", ErrInvalidConfig, seat.Name)
		}
		names[seat.Name] = true

		if !slices.Contains(bot.Kinds(), seat.Strategy) {
			return fmt.Errorf("%w: seat %s: invalid strategy %q", ErrInvalidConfig, seat.Name, seat.Strategy)
		}
		if seat.Strategy == bot.KindProfile && seat.Profile == "" {
			return fmt.Errorf("%w: seat %s: profile strategy needs a profile", ErrInvalidConfig, seat.Name)
		}
		if seat.Position == nil {
			continue
		}
		pos := *seat.Position
		if pos < 0 || pos >= s.Players {
			return fmt.Errorf("%w: seat %s: position %d outside [0, %d)", ErrInvalidConfig, seat.Name, pos, s.Players)
		}
		if other, taken := positions[pos]; taken {
			return fmt.Errorf("%w: seats %s and %s share position %d", ErrInvalidConfig, other, seat.Name, pos)
		}
		positions[pos] = seat.Name
	}
	return nil
}

// Composition returns the configured deck composition
func (c *Config) Composition() (deck.Composition, error) {
	return deck.ParseComposition(c.Simulation.Deck)
}

// Arrange lays the seats out in table order. Positioned seats take their
// position, the rest fill the gaps in declaration order, and any seat left
// over is a threshold player named Player_N. Call Validate first.
func (c *Config) Arrange() []Seat {
	out := make([]Seat, c.Simulation.Players)
	filled := make([]bool, len(out))
	for _, s := range c.Seats {
		if s.Position != nil {
			out[*s.Position] = s
			filled[*s.Position] = true
		}
	}

	next := 0
	for _, s := range c.Seats {
		if s.Position != nil {
			continue
		}
		for filled[next] {
			next++
		}
		out[next] = s
		filled[next] = true
	}

	for i := range out {
		if !filled[i] {
			out[i] = Seat{Name: fmt.Sprintf("Player_%d", i+1), Strategy: bot.KindThreshold}
		}
		pos := i
		out[i].Position = &pos
	}
	return out
}
