package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kbcards"
	kbfs "github.com/fwojciec/kbcards/fs"
	kbhttp "github.com/fwojciec/kbcards/http"
	kbslog "github.com/fwojciec/kbcards/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration file read before flags are resolved. Set before
	// calling Run(). Missing files are ignored.
	ConfigPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	var configPaths []string
	if m.ConfigPath != "" {
		configPaths = append(configPaths, m.ConfigPath)
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kbcards"),
		kong.Description("Search and render a knowledge-base catalog as cards"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(LoadYAML, configPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'kbcards --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The browser owns the terminal, so its logs go to a file or nowhere.
	logOutput := stderr
	if strings.HasPrefix(kongCtx.Command(), "browse") {
		logOutput = io.Discard
	}
	if cli.LogFile != "" {
		f, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", cli.LogFile, err)
		}
		defer f.Close()
		logOutput = f
	}

	logger, err := newLogger(logOutput, cli.LogLevel)
	if err != nil {
		return err
	}

	deps.Logger = logger
	deps.Loader = newCatalogLoader(cli, logger)
	deps.LinkLabel = cli.LinkLabel

	return kbslog.Guard(logger, func() error {
		return kongCtx.Run(deps)
	})
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// newCatalogLoader builds the load chain: the endpoint first, then the
// fallback resource. Either may be left unset.
func newCatalogLoader(cli *CLI, logger *slog.Logger) *kbcards.Chain {
	var strategies []kbcards.Strategy
	if cli.Endpoint != "" {
		strategies = append(strategies, kbcards.Strategy{
			Name:   kbcards.SourcePrimary,
			Loader: kbhttp.NewLoader(cli.Endpoint, kbhttp.WithTimeout(cli.Timeout)),
		})
	}
	if cli.Fallback != "" {
		strategies = append(strategies, kbcards.Strategy{
			Name:   kbcards.SourceFallback,
			Loader: fallbackLoader(cli.Fallback, cli.Timeout),
		})
	}
	return kbcards.NewChain(kbslog.LoggingStrategies(logger, strategies...)...)
}

// fallbackLoader reads the fallback resource over HTTP when it is an
// http(s) URL and from the filesystem otherwise.
func fallbackLoader(location string, timeout time.Duration) kbcards.Loader {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return kbhttp.NewLoader(location, kbhttp.WithTimeout(timeout))
	}
	return kbfs.NewLoader(location)
}

func defaultConfigPath() string {
	if path := os.Getenv("KBCARDS_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kbcards", "config.yaml")
}
