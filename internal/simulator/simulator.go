// Package simulator plays batches of independent games with reproducible
// per-game seeds.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/flip7/internal/bot"
	"github.com/lox/flip7/internal/config"
	"github.com/lox/flip7/internal/deck"
	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/gameid"
	"github.com/lox/flip7/internal/profile"
	"github.com/lox/flip7/internal/randutil"
	"github.com/lox/flip7/internal/statistics"
)

// Seat is a resolved player: a strategy kind and, for profile strategies,
// the validated profile.
type Seat struct {
	Name     string
	Strategy string
	Profile  *profile.Profile
}

// Label is the aggregation key used in reports
func (s Seat) Label() string {
	if s.Profile != nil {
		return s.Profile.Name
	}
	return s.Strategy
}

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Seed    int64
	Workers int
	Seats   []Seat

	Composition  deck.Composition
	WinningTotal int
	MaxTurns     int
	MaxRounds    int
	MaxScore     int

	// Persistent reuses one strategy per seat across every game, so
	// learning profiles adapt. Games then run one at a time on one rng.
	Persistent bool

	ProgressEvery int
	Monitor       Monitor
	Logger        *log.Logger
	Clock         quartz.Clock
}

// Monitor observes batch progress. Calls may come from any worker but are
// serialised by the simulator.
type Monitor interface {
	OnGameComplete(done, total int)
}

// Results is the outcome of a batch
type Results struct {
	RunID   string
	Seed    int64
	Games   []statistics.GameOutcome // indexed by game number
	Report  *statistics.Report
	Elapsed time.Duration
}

// Simulator runs Flip 7 game simulations
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock

	mu sync.Mutex // serialises Monitor calls
}

// New creates a new simulator with the given configuration
func New(cfg Config) *Simulator {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Composition.Size() == 0 {
		cfg.Composition = deck.Standard()
	}
	return &Simulator{config: cfg, logger: logger.WithPrefix("simulator"), clock: clock}
}

// FromConfig resolves a loaded configuration against the available
// profiles. Seats naming an unknown profile are an error.
func FromConfig(c *config.Config, profiles []*profile.Profile) (Config, error) {
	comp, err := c.Composition()
	if err != nil {
		return Config{}, err
	}

	var seats []Seat
	for _, s := range c.Arrange() {
		seat := Seat{Name: s.Name, Strategy: s.Strategy}
		if s.Strategy == bot.KindProfile {
			p, ok := profile.Find(profiles, s.Profile)
			if !ok {
				return Config{}, fmt.Errorf("%w: seat %s: unknown profile %q", config.ErrInvalidConfig, s.Name, s.Profile)
			}
			seat.Profile = p
		}
		seats = append(seats, seat)
	}

	sim := c.Simulation
	return Config{
		Games:         sim.Games,
		Seed:          sim.Seed,
		Workers:       sim.Workers,
		Seats:         seats,
		Composition:   comp,
		WinningTotal:  sim.WinningTotal,
		MaxTurns:      sim.MaxTurns,
		MaxRounds:     sim.MaxRounds,
		MaxScore:      sim.MaxScore,
		Persistent:    sim.Persistent,
		ProgressEvery: sim.ProgressEvery,
	}, nil
}

// Run executes the batch. Each game's seed depends only on the base seed
// and its index, so the results are the same for any worker count.
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	if s.config.Games < 1 {
		return nil, errors.New("at least one game required")
	}
	if len(s.config.Seats) == 0 {
		return nil, errors.New("at least one seat required")
	}

	runID := uuid.NewString()
	start := s.clock.Now("simulator", "start")
	s.logger.Info("Starting simulation",
		"run", runID,
		"games", s.config.Games,
		"players", len(s.config.Seats),
		"seed", s.config.Seed,
		"workers", s.config.Workers,
		"persistent", s.config.Persistent)

	outcomes := make([]statistics.GameOutcome, s.config.Games)
	var err error
	if s.config.Persistent {
		err = s.runPersistent(ctx, outcomes, start)
	} else {
		err = s.runParallel(ctx, outcomes, start)
	}
	if err != nil {
		return nil, err
	}

	report := statistics.NewReport()
	for _, o := range outcomes {
		report.Add(o)
	}
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.clock.Since(start, "simulator", "done")
	s.logger.Info("Simulation complete", "run", runID, "games", s.config.Games, "elapsed", elapsed)

	return &Results{
		RunID:   runID,
		Seed:    s.config.Seed,
		Games:   outcomes,
		Report:  report,
		Elapsed: elapsed,
	}, nil
}

func (s *Simulator) runParallel(ctx context.Context, outcomes []statistics.GameOutcome, start time.Time) error {
	// gctx is cancelled by Wait, so only the caller's ctx decides the result
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	var done atomic.Int64
	for i := range s.config.Games {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seed := randutil.Derive(s.config.Seed, i)
			rng := randutil.New(seed)
			strategies, err := s.strategies(rng)
			if err != nil {
				return err
			}
			out, err := s.playGame(i, seed, rng, strategies)
			if err != nil {
				return err
			}
			outcomes[i] = out
			s.progress(int(done.Add(1)), start)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Simulator) runPersistent(ctx context.Context, outcomes []statistics.GameOutcome, start time.Time) error {
	rng := randutil.New(s.config.Seed)
	strategies, err := s.strategies(rng)
	if err != nil {
		return err
	}
	for i := range s.config.Games {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := s.playGame(i, s.config.Seed, rng, strategies)
		if err != nil {
			return err
		}
		outcomes[i] = out
		s.progress(i+1, start)
	}
	return nil
}

func (s *Simulator) strategies(rng *rand.Rand) ([]game.Strategy, error) {
	out := make([]game.Strategy, len(s.config.Seats))
	for i, seat := range s.config.Seats {
		st, err := bot.New(seat.Strategy, seat.Profile, rng, s.logger)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		out[i] = st
	}
	return out, nil
}

func (s *Simulator) playGame(index int, seed int64, rng *rand.Rand, strategies []game.Strategy) (statistics.GameOutcome, error) {
	seats := make([]game.Seat, len(s.config.Seats))
	for i, seat := range s.config.Seats {
		seats[i] = game.Seat{Name: seat.Name, Label: seat.Label(), Strategy: strategies[i]}
	}

	id := gameid.NewGenerator(s.clock, randutil.Reader(randutil.Derive(seed, index))).Generate()
	g := game.New(rng, seats,
		game.WithID(id),
		game.WithComposition(s.config.Composition),
		game.WithLogger(s.logger),
		game.WithWinningTotal(s.config.WinningTotal),
		game.WithMaxTurns(s.config.MaxTurns),
		game.WithMaxRounds(s.config.MaxRounds),
		game.WithMaxScore(s.config.MaxScore),
	)

	res, err := g.Play()
	if err != nil {
		return statistics.GameOutcome{}, fmt.Errorf("game %d (seed %d): %w", index, seed, err)
	}
	return statistics.FromResult(index, seed, res), nil
}

func (s *Simulator) progress(done int, start time.Time) {
	if s.config.Monitor != nil {
		s.mu.Lock()
		s.config.Monitor.OnGameComplete(done, s.config.Games)
		s.mu.Unlock()
	}

	every := s.config.ProgressEvery
	if every <= 0 || done%every != 0 {
		return
	}
	elapsed := s.clock.Since(start, "simulator", "progress")
	s.logger.Info("Progress", "games", done, "of", s.config.Games, "elapsed", elapsed)
}
