package main

import (
	"fmt"

	"github.com/fwojciec/lectio"
	"github.com/fwojciec/lectio/yaml"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	seed, err := yaml.LoadSeedFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	report, err := deps.Service.Seed(deps.Ctx, seed)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Versions: %d added, %d already present\n", report.VersionsCreated, report.VersionsSkipped)
	fmt.Fprintf(deps.Stdout, "Confessions: %d added, %d already present\n", report.ConfessionsCreated, report.ConfessionsSkipped)
	return nil
}
