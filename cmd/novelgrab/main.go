package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/sqlite"
)

func main() {
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
	// SQLite database, opened only by commands that need the store.
	DB *sqlite.DB

	// Fetcher overrides the HTTP fetcher. Used by end-to-end tests.
	Fetcher novelgrab.Fetcher

	// ConfigPaths are the JSON configuration files consulted for flag
	// defaults, in order.
	ConfigPaths []string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{"~/.novelgrab.json"},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Fetcher: m.Fetcher,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("novelgrab"),
		kong.Description("Download web novels chapter by chapter"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(kong.JSON, m.ConfigPaths...),
		kong.Vars{"db_path": defaultDBPath()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'novelgrab --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	if needsStore(kongCtx.Command(), cli) {
		if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set NOVELGRAB_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()

		deps.DB = m.DB
		deps.Books = sqlite.NewBookService(m.DB)
		deps.Chapters = sqlite.NewChapterService(m.DB)
	}

	return kongCtx.Run(deps)
}

// needsStore reports whether the selected command reads or writes SQLite.
func needsStore(command string, cli *CLI) bool {
	switch strings.Fields(command)[0] {
	case "books", "chapters", "show":
		return true
	case "grab":
		return cli.Grab.Format == FormatSQLite
	}
	return false
}

// newLogger returns the process logger on stderr. Verbose enables debug
// output; otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "novelgrab.db"
	}
	return filepath.Join(home, ".novelgrab", "novelgrab.db")
}
