package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/lectio/lookup"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Service *lookup.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB             string  `name:"db" env:"LECTIO_DB" help:"SQLite database path"`
	Postgres       string  `name:"postgres" env:"LECTIO_POSTGRES_URI" help:"PostgreSQL URI; overrides --db when set"`
	DefaultVersion string  `name:"default-version" env:"LECTIO_DEFAULT_VERSION" default:"esv" help:"Version used when no preference applies"`
	WOLURL         string  `name:"wol-url" env:"LECTIO_WOL_URL" help:"Base URL of the online library backend"`
	Render         bool    `env:"LECTIO_RENDER" help:"Fetch pages with a headless browser"`
	Rate           float64 `env:"LECTIO_RATE" default:"1" help:"Chapter pages per second requested from the online library; 0 disables the limit"`
	Retries        int     `env:"LECTIO_RETRIES" help:"Retries of unavailable upstream pages; 0 reports the first failure"`
	Verbose        bool    `short:"v" help:"Log upstream requests and lookups"`

	Lookup            LookupCmd            `cmd:"" help:"Look up a Bible passage"`
	References        ReferencesCmd        `cmd:"" help:"Look up every [bracketed] reference in a message"`
	Search            SearchCmd            `cmd:"" help:"Search a version for passages"`
	Versions          VersionsCmd          `cmd:"" help:"List available versions"`
	SetVersion        SetVersionCmd        `cmd:"" help:"Set a user's preferred version"`
	UnsetVersion      UnsetVersionCmd      `cmd:"" help:"Clear a user's preferred version"`
	SetGuildVersion   SetGuildVersionCmd   `cmd:"" help:"Set a guild's preferred version"`
	UnsetGuildVersion UnsetGuildVersionCmd `cmd:"" help:"Clear a guild's preferred version"`
	AddVersion        AddVersionCmd        `cmd:"" help:"Add a version"`
	UpdateVersion     UpdateVersionCmd     `cmd:"" help:"Change the backend of a version"`
	DeleteVersion     DeleteVersionCmd     `cmd:"" help:"Delete a version"`
	Confessions       ConfessionsCmd       `cmd:"" help:"List available confessions"`
	Confess           ConfessCmd           `cmd:"" help:"Show a confession's contents or one of its sections"`
	ConfessSearch     ConfessSearchCmd     `cmd:"" help:"Search a confession"`
	Seed              SeedCmd              `cmd:"" help:"Load versions and confessions from a YAML file"`
	Serve             ServeCmd             `cmd:"" help:"Serve the HTTP API"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Reference []string `arg:"" help:"Reference, e.g. John 3:16-18"`
	Version   string   `short:"V" help:"Version command; defaults to the caller's preference"`
	User      int64    `help:"User ID whose preference applies"`
	Guild     int64    `help:"Guild ID whose preference applies"`
	Limit     int      `default:"2000" help:"Maximum message length; 0 disables truncation"`
}

// ReferencesCmd is the "references" subcommand.
type ReferencesCmd struct {
	Text  []string `arg:"" help:"Message text containing [references]"`
	User  int64    `help:"User ID whose preference applies"`
	Guild int64    `help:"Guild ID whose preference applies"`
	Limit int      `default:"2000" help:"Maximum message length per passage"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Terms   []string `arg:"" help:"Search terms"`
	Version string   `short:"V" help:"Version command; defaults to the caller's preference"`
	User    int64    `help:"User ID whose preference applies"`
	Guild   int64    `help:"Guild ID whose preference applies"`
	Limit   int      `default:"5" help:"Results per page"`
	Offset  int      `help:"Results to skip"`
}

// VersionsCmd is the "versions" subcommand.
type VersionsCmd struct{}

// SetVersionCmd is the "set-version" subcommand.
type SetVersionCmd struct {
	User    int64  `arg:"" help:"User ID"`
	Version string `arg:"" help:"Version command"`
}

// UnsetVersionCmd is the "unset-version" subcommand.
type UnsetVersionCmd struct {
	User int64 `arg:"" help:"User ID"`
}

// SetGuildVersionCmd is the "set-guild-version" subcommand.
type SetGuildVersionCmd struct {
	Guild   int64  `arg:"" help:"Guild ID"`
	Version string `arg:"" help:"Version command"`
}

// UnsetGuildVersionCmd is the "unset-guild-version" subcommand.
type UnsetGuildVersionCmd struct {
	Guild int64 `arg:"" help:"Guild ID"`
}

// AddVersionCmd is the "add-version" subcommand.
type AddVersionCmd struct {
	Command      string `arg:"" help:"Command users type to select the version"`
	Abbreviation string `arg:"" help:"Abbreviation shown with passages"`
	Name         string `arg:"" help:"Full name"`
	Backend      string `default:"JWOrg" help:"Backend kind serving the version"`
	Locator      string `help:"Upstream edition the backend addresses"`
	Books        string `default:"OT,NT" help:"Comma separated groups (OT, NT, DC) or book names"`
	RTL          bool   `name:"rtl" help:"Text runs right to left"`
}

// UpdateVersionCmd is the "update-version" subcommand.
type UpdateVersionCmd struct {
	Command string `arg:"" help:"Version command"`
	Backend string `help:"New backend kind"`
	Locator string `help:"New upstream edition"`
	Books   string `help:"New comma separated book groups"`
}

// DeleteVersionCmd is the "delete-version" subcommand.
type DeleteVersionCmd struct {
	Command string `arg:"" help:"Version command"`
	Force   bool   `help:"Confirm deletion"`
}

// ConfessionsCmd is the "confessions" subcommand.
type ConfessionsCmd struct{}

// ConfessCmd is the "confess" subcommand.
type ConfessCmd struct {
	Command string `arg:"" help:"Confession command"`
	Address string `arg:"" optional:"" help:"Section address, e.g. 1.2 or 42"`
}

// ConfessSearchCmd is the "confess-search" subcommand.
type ConfessSearchCmd struct {
	Command string   `arg:"" help:"Confession command"`
	Terms   []string `arg:"" help:"Search terms"`
	Limit   int      `default:"20" help:"Maximum sections shown"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML seed file"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"LECTIO_ADDR" help:"Listen address"`
}

// caller builds a lookup.Caller from optional user and guild flags. Zero
// means unset.
func caller(user, guild int64) lookup.Caller {
	var c lookup.Caller
	if user != 0 {
		c.UserID = &user
	}
	if guild != 0 {
		c.GuildID = &guild
	}
	return c
}
