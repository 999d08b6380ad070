package main

import (
	"fmt"

	"github.com/fwojciec/lectio"
)

// Run executes the set-version command.
func (c *SetVersionCmd) Run(deps *Dependencies) error {
	return setVersion(deps, lectio.OwnerUser, c.User, c.Version)
}

// Run executes the unset-version command.
func (c *UnsetVersionCmd) Run(deps *Dependencies) error {
	return unsetVersion(deps, lectio.OwnerUser, c.User)
}

// Run executes the set-guild-version command.
func (c *SetGuildVersionCmd) Run(deps *Dependencies) error {
	return setVersion(deps, lectio.OwnerGuild, c.Guild, c.Version)
}

// Run executes the unset-guild-version command.
func (c *UnsetGuildVersionCmd) Run(deps *Dependencies) error {
	return unsetVersion(deps, lectio.OwnerGuild, c.Guild)
}

func setVersion(deps *Dependencies, kind lectio.OwnerKind, ownerID int64, command string) error {
	v, err := deps.Service.SetVersion(deps.Ctx, kind, ownerID, command)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Set %s %d to %s (%s)\n", kind, ownerID, v.Name, v.Abbreviation)
	return nil
}

func unsetVersion(deps *Dependencies, kind lectio.OwnerKind, ownerID int64) error {
	if err := deps.Service.UnsetVersion(deps.Ctx, kind, ownerID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Cleared version for %s %d\n", kind, ownerID)
	return nil
}
