package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kbcards"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Loader    kbcards.CatalogLoader
	LinkLabel string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    kong.ConfigFlag `help:"YAML configuration file (keys are flag names)" type:"path"`
	Endpoint  string          `help:"Catalog endpoint URL" env:"KBCARDS_ENDPOINT"`
	Fallback  string          `help:"Fallback catalog file or URL" env:"KBCARDS_FALLBACK" default:"data.json"`
	Timeout   time.Duration   `help:"HTTP request timeout" default:"10s"`
	LogLevel  string          `help:"Log level" default:"warn" enum:"debug,info,warn,error"`
	LogFile   string          `help:"Write logs to this file instead of stderr" type:"path"`
	LinkLabel string          `help:"Text of each card's link" default:"Learn more"`

	Render RenderCmd `cmd:"" help:"Render the catalog as an HTML page or Markdown"`
	Search SearchCmd `cmd:"" help:"Print cards matching a query"`
	Browse BrowseCmd `cmd:"" help:"Browse the catalog with live filtering"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Query  string `short:"q" help:"Filter cards by name or description"`
	Format string `short:"f" default:"html" enum:"html,markdown" help:"Output format (html, markdown)"`
	Out    string `short:"o" type:"path" help:"Write to this file instead of stdout"`
	Page   string `type:"existingfile" help:"HTML page shell containing a .card-container element"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query        string `arg:"" optional:"" help:"Filter cards by name or description"`
	Width        int    `short:"w" default:"72" help:"Card width in columns"`
	NoHyperlinks bool   `help:"Print link URLs instead of terminal hyperlinks"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Query string `short:"q" help:"Initial query"`
	Width int    `short:"w" default:"72" help:"Card width in columns"`
}
