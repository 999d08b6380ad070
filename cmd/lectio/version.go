package main

import (
	"fmt"

	"github.com/fwojciec/lectio"
)

// Run executes the add-version command.
func (c *AddVersionCmd) Run(deps *Dependencies) error {
	books, err := lectio.ParseBookMask(c.Books)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	v := &lectio.Version{
		Command:      c.Command,
		Name:         c.Name,
		Abbreviation: c.Abbreviation,
		Backend:      c.Backend,
		Locator:      c.Locator,
		RightToLeft:  c.RTL,
		Books:        books,
	}
	if err := deps.Service.Versions.CreateVersion(deps.Ctx, v); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added version %q (%s)\n", v.Command, v.Abbreviation)
	return nil
}

// Run executes the update-version command.
func (c *UpdateVersionCmd) Run(deps *Dependencies) error {
	var upd lectio.VersionUpdate
	if c.Backend != "" {
		upd.Backend = &c.Backend
	}
	if c.Locator != "" {
		upd.Locator = &c.Locator
	}
	if c.Books != "" {
		books, err := lectio.ParseBookMask(c.Books)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
			return err
		}
		upd.Books = &books
	}
	if upd.Backend == nil && upd.Locator == nil && upd.Books == nil {
		fmt.Fprintf(deps.Stderr, "error: nothing to update\n")
		return lectio.Errorf(lectio.EINVALID, "nothing to update")
	}

	v, err := deps.Service.Versions.UpdateVersion(deps.Ctx, c.Command, upd)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Updated version %q (%s %s)\n", v.Command, v.Backend, v.Locator)
	return nil
}

// Run executes the delete-version command.
func (c *DeleteVersionCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return lectio.Errorf(lectio.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Service.Versions.DeleteVersion(deps.Ctx, c.Command); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted version %q\n", c.Command)
	return nil
}
