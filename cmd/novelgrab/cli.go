package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Books    novelgrab.BookService
	Chapters novelgrab.ChapterService

	// Fetcher, when set, replaces the HTTP fetcher.
	Fetcher novelgrab.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string          `default:"${db_path}" env:"NOVELGRAB_DB" help:"SQLite database path"`
	Config  kong.ConfigFlag `help:"JSON file with flag defaults"`
	Verbose bool            `short:"v" help:"Enable debug logging"`

	Grab     GrabCmd     `cmd:"" help:"Download every chapter of a book"`
	TOC      TOCCmd      `cmd:"" name:"toc" help:"List a book's chapters without downloading them"`
	Books    BooksCmd    `cmd:"" help:"List books in the database"`
	Chapters ChaptersCmd `cmd:"" help:"List stored chapters of a book"`
	Show     ShowCmd     `cmd:"" help:"Print one stored chapter"`
}

// Output formats of the grab command.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatSQLite   = "sqlite"
)

// FetchFlags are the request tunables shared by commands that hit the network.
type FetchFlags struct {
	Timeout     time.Duration `default:"15s" env:"NOVELGRAB_TIMEOUT" help:"Timeout per request"`
	Delay       time.Duration `default:"1.5s" env:"NOVELGRAB_DELAY" help:"Minimum spacing between requests to the site"`
	Retries     int           `default:"3" env:"NOVELGRAB_RETRIES" help:"Attempts per request"`
	RetryDelay  time.Duration `default:"2s" help:"Wait between attempts"`
	PageCeiling int           `default:"100" help:"Maximum chapter listing pages to visit"`
	NoSort      bool          `help:"Keep listing order instead of sorting by chapter number"`
}

// config builds the run configuration from the flags.
func (f FetchFlags) config() novelgrab.Config {
	cfg := novelgrab.DefaultConfig()
	cfg.Timeout = f.Timeout
	cfg.ChapterDelay = f.Delay
	cfg.RetryLimit = f.Retries
	cfg.RetryDelay = f.RetryDelay
	cfg.PageCeiling = f.PageCeiling
	cfg.SortByNumber = !f.NoSort
	return cfg
}

// GrabCmd is the "grab" subcommand.
type GrabCmd struct {
	URL         string `arg:"" help:"Book landing page or chapter listing URL"`
	Format      string `short:"f" default:"text" enum:"text,json,markdown,sqlite" env:"NOVELGRAB_FORMAT" help:"Output format (text, json, markdown, sqlite)"`
	Out         string `short:"o" help:"Output directory (text) or file (json, markdown)"`
	Ext         string `default:".txt" help:"Chapter file extension for text output"`
	Resume      bool   `short:"r" help:"Skip chapters saved by an earlier run"`
	ResumeFile  string `default:"resume.json" env:"NOVELGRAB_RESUME_FILE" help:"Resume checkpoint file"`
	Concurrency int    `short:"c" default:"1" help:"Chapters fetched at once"`
	MinChars    int    `default:"100" help:"Extracted text shorter than this is re-fetched"`

	FetchFlags `embed:""`
}

// TOCCmd is the "toc" subcommand.
type TOCCmd struct {
	URL string `arg:"" help:"Book landing page or chapter listing URL"`

	FetchFlags `embed:""`
}

// BooksCmd is the "books" subcommand.
type BooksCmd struct{}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct {
	URL string `arg:"" help:"Book URL as stored"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL   string `arg:"" help:"Book URL as stored"`
	Index int    `arg:"" help:"Chapter index"`
}
