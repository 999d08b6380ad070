package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/lectio"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	ref := strings.Join(c.Reference, " ")
	p, err := deps.Service.Lookup(deps.Ctx, caller(c.User, c.Guild), ref, c.Version)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, lectio.FormatPassage(p, c.Limit))
	return nil
}

// Run executes the references command. Failed references are reported on
// stderr without stopping the others.
func (c *ReferencesCmd) Run(deps *Dependencies) error {
	results, err := deps.Service.LookupAll(deps.Ctx, caller(c.User, c.Guild), strings.Join(c.Text, " "))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No references found")
		return nil
	}
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.Match.Text, lectio.ErrorMessage(r.Err))
			continue
		}
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintln(deps.Stdout, lectio.FormatPassage(r.Passage, c.Limit))
	}
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	opts := lectio.SearchOptions{Limit: c.Limit, Offset: c.Offset}
	results, err := deps.Service.Search(deps.Ctx, caller(c.User, c.Guild), c.Version, c.Terms, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, lectio.FormatSearchResults(results, c.Offset))
	return nil
}

// Run executes the versions command.
func (c *VersionsCmd) Run(deps *Dependencies) error {
	versions, err := deps.Service.Versions.FindVersions(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	if len(versions) == 0 {
		fmt.Fprintln(deps.Stdout, "No versions registered")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, v := range versions {
		marker := ""
		if strings.EqualFold(v.Command, deps.Service.Resolver.DefaultCommand) {
			marker = " (default)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s%s\n", v.Command, v.Abbreviation, v.Name, marker)
	}
	return w.Flush()
}
