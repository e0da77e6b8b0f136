package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/cmd/flip7/shared"
	"github.com/lox/flip7/internal/config"
	"github.com/lox/flip7/internal/simulator"
)

// SimulateCmd runs a batch of games from an HCL config, with flag overrides
type SimulateCmd struct {
	Config     string `short:"c" default:"sim.hcl" env:"FLIP7_CONFIG" help:"Simulation config file (defaults apply when missing)"`
	Games      *int   `short:"n" env:"FLIP7_GAMES" help:"Number of games to simulate"`
	Seed       *int64 `env:"FLIP7_SEED" help:"Base RNG seed"`
	Workers    *int   `short:"w" env:"FLIP7_WORKERS" help:"Concurrent games"`
	Profiles   string `env:"FLIP7_PROFILES" help:"Profile directory (overrides profiles_dir)"`
	Persistent bool   `env:"FLIP7_PERSISTENT" help:"Reuse strategies across games so profiles learn"`
	Winning    *int   `name:"winning-total" env:"FLIP7_WINNING_TOTAL" help:"Play rounds until a total reaches this (0 = one round)"`
	Dots       bool   `help:"Show a dot progress bar on stderr"`
}

func (c *SimulateCmd) Run(logger *log.Logger) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	profiles, err := availableProfiles(cfg.Simulation.ProfilesDir, logger)
	if err != nil {
		return err
	}

	simCfg, err := simulator.FromConfig(cfg, profiles)
	if err != nil {
		return err
	}
	simCfg.Logger = logger
	if c.Dots {
		simCfg.Monitor = NewDotsMonitor(os.Stderr, nil)
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	results, err := simulator.New(simCfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	printReport(os.Stdout, results)
	return nil
}

func (c *SimulateCmd) apply(cfg *config.Config) {
	s := cfg.Simulation
	if c.Games != nil {
		s.Games = *c.Games
	}
	if c.Seed != nil {
		s.Seed = *c.Seed
	}
	if c.Workers != nil {
		s.Workers = *c.Workers
	}
	if c.Profiles != "" {
		s.ProfilesDir = c.Profiles
	}
	if c.Persistent {
		s.Persistent = true
	}
	if c.Winning != nil {
		s.WinningTotal = *c.Winning
	}
}
