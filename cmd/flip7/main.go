package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/lox/flip7/cmd/flip7/shared"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"V" help:"Show version"`
	LogLevel string           `name:"log-level" enum:"debug,info,warn,error" default:"info" env:"FLIP7_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	Verbose  bool             `short:"v" help:"Shorthand for --log-level=debug"`

	Simulate SimulateCmd `cmd:"" help:"Run a batch of simulated games"`
	Play     PlayCmd     `cmd:"" help:"Play one game and print a transcript"`
	Profiles ProfilesCmd `cmd:"" help:"Manage risk profiles"`
}

func main() {
	// A missing .env is fine; flags and the real environment still apply.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("flip7"),
		kong.Description("Flip 7 game engine and strategy simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger := shared.SetupLogger(cli.LogLevel, cli.Verbose)
	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
