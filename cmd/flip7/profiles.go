package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/profile"
)

// ProfilesCmd groups the profile subcommands
type ProfilesCmd struct {
	Init     ProfilesInitCmd     `cmd:"" help:"Write the built-in profiles as YAML files"`
	Validate ProfilesValidateCmd `cmd:"" help:"Check profile files"`
	List     ProfilesListCmd     `cmd:"" help:"List the profiles available in a directory"`
}

type ProfilesInitCmd struct {
	Dir string `arg:"" optional:"" default:"profiles" help:"Directory to write to"`
}

func (c *ProfilesInitCmd) Run(logger *log.Logger) error {
	paths, err := profile.WritePresets(c.Dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Info("Wrote profile", "path", p)
	}
	return nil
}

type ProfilesValidateCmd struct {
	Paths []string `arg:"" type:"existingfile" help:"Profile files to check"`
}

func (c *ProfilesValidateCmd) Run(logger *log.Logger) error {
	failed := 0
	for _, path := range c.Paths {
		p, err := profile.Load(path)
		if err != nil {
			logger.Error("Invalid profile", "error", err)
			failed++
			continue
		}
		fmt.Printf("%s %s\n", winStyle.Render("ok"), nameStyle.Render(p.Name)+dimStyle.Render(" "+path))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles invalid", failed, len(c.Paths))
	}
	return nil
}

type ProfilesListCmd struct {
	Dir string `arg:"" optional:"" default:"profiles" help:"Profile directory"`
}

func (c *ProfilesListCmd) Run(logger *log.Logger) error {
	profiles, err := availableProfiles(c.Dir, logger)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		fmt.Printf("%-20s %s\n", nameStyle.Render(p.Name), dimStyle.Render(p.Description))
	}
	return nil
}

// availableProfiles loads dir and adds every built-in preset the directory
// does not override. A missing directory yields the presets alone.
func availableProfiles(dir string, logger *log.Logger) ([]*profile.Profile, error) {
	loaded, err := profile.LoadDir(dir, logger)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logger.Debug("No profile directory, using built-in profiles", "dir", dir)
	}
	for _, p := range profile.Presets() {
		if _, ok := profile.Find(loaded, p.Name); !ok {
			loaded = append(loaded, p)
		}
	}
	return loaded, nil
}
