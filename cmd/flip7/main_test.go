package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flip7/internal/config"
	"github.com/lox/flip7/internal/profile"
	"github.com/lox/flip7/internal/simulator"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("flip7"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseSimulateFlags(t *testing.T) {
	cli, ctx := parse(t, "simulate", "--games", "12", "--seed", "9", "-w", "3", "--persistent")
	assert.Equal(t, "simulate", ctx.Command())

	cfg := config.DefaultConfig()
	cli.Simulate.apply(cfg)
	assert.Equal(t, 12, cfg.Simulation.Games)
	assert.Equal(t, int64(9), cfg.Simulation.Seed)
	assert.Equal(t, 3, cfg.Simulation.Workers)
	assert.True(t, cfg.Simulation.Persistent)
	assert.Equal(t, config.DefaultProfilesDir, cfg.Simulation.ProfilesDir)
}

func TestSimulateFlagsLeaveConfigAlone(t *testing.T) {
	cli, _ := parse(t, "simulate")

	cfg := config.DefaultConfig()
	cli.Simulate.apply(cfg)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestSimulateFlagsFromEnv(t *testing.T) {
	t.Setenv("FLIP7_GAMES", "77")
	cli, _ := parse(t, "simulate")
	require.NotNil(t, cli.Simulate.Games)
	assert.Equal(t, 77, *cli.Simulate.Games)
}

func TestAvailableProfiles(t *testing.T) {
	logger := log.New(io.Discard)

	missing, err := availableProfiles(filepath.Join(t.TempDir(), "none"), logger)
	require.NoError(t, err)
	assert.Equal(t, profile.Names(profile.Presets()), profile.Names(missing))

	dir := t.TempDir()
	custom := profile.Presets()[0].Clone()
	custom.Description = "tuned"
	data, err := profile.Marshal(custom)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "carl.yaml"), data, 0o644))

	got, err := availableProfiles(dir, logger)
	require.NoError(t, err)
	assert.Len(t, got, len(profile.Presets()))
	p, ok := profile.Find(got, custom.Name)
	require.True(t, ok)
	assert.Equal(t, "tuned", p.Description, "directory profiles override presets")
}

func TestPrintReport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.Games = 20
	simCfg, err := simulator.FromConfig(cfg, profile.Presets())
	require.NoError(t, err)
	simCfg.Clock = quartz.NewMock(t)

	res, err := simulator.New(simCfg).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	printReport(&buf, res)
	out := buf.String()
	assert.Contains(t, out, "threshold")
	assert.Contains(t, out, "Winning score")
	assert.Contains(t, out, res.RunID)
}

func TestProfilesInitAndValidate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	logger := log.New(io.Discard)

	require.NoError(t, (&ProfilesInitCmd{Dir: dir}).Run(logger))
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	require.Len(t, paths, len(profile.Presets()))

	require.NoError(t, (&ProfilesValidateCmd{Paths: paths}).Run(logger))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: bad\n"), 0o644))
	require.Error(t, (&ProfilesValidateCmd{Paths: append(paths, bad)}).Run(logger))
}

func TestDotsMonitor(t *testing.T) {
	var buf bytes.Buffer
	clk := quartz.NewMock(t)
	m := NewDotsMonitor(&buf, clk)

	m.OnGameComplete(2, 4)
	assert.Equal(t, strings.Repeat(".", 20), buf.String())

	m.OnGameComplete(1, 4)
	assert.Equal(t, strings.Repeat(".", 20), buf.String(), "stale counts print nothing")

	clk.Advance(2 * time.Second)
	m.OnGameComplete(4, 4)
	m.OnGameComplete(3, 4)
	out := buf.String()
	bar, _, _ := strings.Cut(out, " ")
	assert.Equal(t, strings.Repeat(".", progressDots), bar)
	assert.Contains(t, out, "4 games in 2.0s (2/sec)")
	assert.Equal(t, 1, strings.Count(out, "games in"), "summary prints once")

	m.OnGameComplete(2, 4)
	assert.Equal(t, out, buf.String(), "late completions after the summary print nothing")
}

func TestPlaySeed(t *testing.T) {
	clk := quartz.NewMock(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk.Set(now)

	assert.Equal(t, now.UnixNano(), (&PlayCmd{}).seed(clk), "unset seed comes from the clock")

	seed := int64(42)
	assert.Equal(t, seed, (&PlayCmd{Seed: &seed}).seed(clk))

	cli, _ := parse(t, "play", "--seed", "7")
	assert.Equal(t, int64(7), cli.Play.seed(clk))
}
