package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/flip7/internal/bot"
	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/gameid"
	"github.com/lox/flip7/internal/profile"
	"github.com/lox/flip7/internal/randutil"
)

// PlayCmd plays a single game and logs every draw
type PlayCmd struct {
	Seed     *int64   `env:"FLIP7_SEED" help:"RNG seed (random when unset)"`
	Players  int      `short:"p" default:"4" help:"Seats at the table; seats without a profile play the threshold strategy"`
	Profile  []string `short:"P" help:"Profile for the next seat (repeatable)"`
	Profiles string   `default:"profiles" env:"FLIP7_PROFILES" help:"Profile directory"`
	Deck     string   `default:"standard" enum:"standard,uniform" help:"Deck composition"`
	Winning  int      `name:"winning-total" default:"200" help:"Play rounds until a total reaches this (0 = one round)"`
}

func (c *PlayCmd) Run(logger *log.Logger) error {
	seed := c.seed(quartz.NewReal())
	comp, err := deck.ParseComposition(c.Deck)
	if err != nil {
		return err
	}
	profiles, err := availableProfiles(c.Profiles, logger)
	if err != nil {
		return err
	}

	rng := randutil.New(seed)
	players := max(c.Players, len(c.Profile))
	seats := make([]game.Seat, players)
	for i := range seats {
		kind, label := bot.KindThreshold, bot.KindThreshold
		var p *profile.Profile
		if i < len(c.Profile) {
			var ok bool
			if p, ok = profile.Find(profiles, c.Profile[i]); !ok {
				return fmt.Errorf("unknown profile %q (have %v)", c.Profile[i], profile.Names(profiles))
			}
			kind, label = bot.KindProfile, p.Name
		}
		strategy, err := bot.New(kind, p, rng, logger)
		if err != nil {
			return err
		}
		seats[i] = game.Seat{Name: fmt.Sprintf("Player_%d", i+1), Label: label, Strategy: strategy}
	}

	transcript := log.NewWithOptions(os.Stdout, log.Options{Level: log.DebugLevel})
	id := gameid.NewGenerator(nil, randutil.Reader(seed)).Generate()
	fmt.Printf("Game %s, seed %d\n\n", id, seed)

	g := game.New(rng, seats,
		game.WithID(id),
		game.WithComposition(comp),
		game.WithLogger(transcript),
		game.WithWinningTotal(c.Winning),
	)
	res, err := g.Play()
	if err != nil {
		return err
	}

	fmt.Println()
	printStandings(os.Stdout, res)
	return nil
}

// seed is the --seed value, or the clock's current time when none was given
func (c *PlayCmd) seed(clock quartz.Clock) int64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return clock.Now("play", "seed").UnixNano()
}
