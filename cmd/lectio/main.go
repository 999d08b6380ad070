package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lectio"
	"github.com/fwojciec/lectio/goquery"
	lechttp "github.com/fwojciec/lectio/http"
	"github.com/fwojciec/lectio/lookup"
	"github.com/fwojciec/lectio/participle"
	"github.com/fwojciec/lectio/postgres"
	"github.com/fwojciec/lectio/rod"
	lslog "github.com/fwojciec/lectio/slog"
	"github.com/fwojciec/lectio/sqlite"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// retryBase is the first backoff delay when --retries is set.
const retryBase = 500 * time.Millisecond

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor --postgres is given.
	DBPath string

	// Fetcher replaces the HTTP or browser fetcher. Set for end-to-end
	// testing.
	Fetcher lectio.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close releases the store and fetcher opened by Run.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lectio"),
		kong.Description("Look up Bible passages and historic confessions"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lectio --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("invocation", uuid.NewString())

	versions, prefs, confessions, err := m.openStore(ctx, cli, stderr)
	if err != nil {
		return err
	}
	defer m.Close()

	registry := lectio.NewRegistry()
	if needsBackend(kongCtx.Selected()) {
		fetcher, err := m.openFetcher(cli, stderr)
		if err != nil {
			return err
		}
		baseURL := cli.WOLURL
		if baseURL == "" {
			baseURL = goquery.DefaultBaseURL
		}
		var transport lectio.Fetcher = lslog.NewPageLogger(fetcher, deps.Logger)
		if cli.Retries > 0 {
			retrying := lectio.NewRetryFetcher(transport, lectio.BackoffDelays(cli.Retries, retryBase))
			retrying.OnRetry = func(url string, attempt int, err error) {
				deps.Logger.Warn("retry", "url", url, "attempt", attempt, "err", err)
			}
			transport = retrying
		}
		backend := goquery.NewBackend(transport,
			goquery.WithBaseURL(baseURL),
			goquery.WithPageRate(cli.Rate),
		)
		registry.Register(goquery.Kind, lslog.NewLoggingBackend(backend, deps.Logger))
	}

	deps.Service = lookup.NewService(
		participle.NewParser(),
		versions,
		prefs,
		lslog.NewLoggingConfessionService(confessions, deps.Logger),
		registry,
	)
	deps.Service.Resolver.DefaultCommand = cli.DefaultVersion

	return kongCtx.Run(deps)
}

// openStore opens PostgreSQL when a URI is configured and SQLite otherwise.
func (m *Main) openStore(ctx context.Context, cli *CLI, stderr io.Writer) (lectio.VersionService, lectio.PreferenceService, lectio.ConfessionService, error) {
	if cli.Postgres != "" {
		db := postgres.NewDB(cli.Postgres)
		if err := db.Open(ctx); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		m.closers = append(m.closers, db)
		return postgres.NewVersionService(db), postgres.NewPreferenceService(db), postgres.NewConfessionService(db), nil
	}

	path := cli.DB
	if path == "" {
		path = m.DBPath
	}
	if dir := filepath.Dir(path); path != ":memory:" && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LECTIO_DB to use a different database path\n")
		return nil, nil, nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.closers = append(m.closers, db)
	return sqlite.NewVersionService(db), sqlite.NewPreferenceService(db), sqlite.NewConfessionService(db), nil
}

// openFetcher returns the injected fetcher, a headless browser when
// rendering is requested, or a plain HTTP client.
func (m *Main) openFetcher(cli *CLI, stderr io.Writer) (lectio.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if cli.Render {
		f, err := rod.NewFetcher(rod.WithUserAgent(""))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, f)
		return f, nil
	}
	f := lechttp.NewFetcher(lechttp.WithHeader("User-Agent", ""))
	m.closers = append(m.closers, f)
	return f, nil
}

// needsBackend reports whether the selected command reads passages.
func needsBackend(node *kong.Node) bool {
	if node == nil {
		return false
	}
	switch node.Name {
	case "lookup", "references", "search", "serve":
		return true
	}
	return false
}

func defaultDBPath() string {
	if path := os.Getenv("LECTIO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lectio.db"
	}
	return filepath.Join(home, ".lectio", "lectio.db")
}
