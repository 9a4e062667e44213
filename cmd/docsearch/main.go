package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/htmltomarkdown"
	dshttp "github.com/fwojciec/docsearch/http"
	"github.com/fwojciec/docsearch/site"
	dsslog "github.com/fwojciec/docsearch/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the fetcher chosen from the base URL.
	// Set before calling Run() for end-to-end testing.
	Fetcher docsearch.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("docsearch"),
		kong.Description("Browse and search a documentation site's outline and descriptions"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
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
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher, err = newFetcher(cli)
		if err != nil {
			return err
		}
	}
	defer fetcher.Close()
	if cli.Verbose {
		fetcher = dsslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	var svc docsearch.SiteService = site.New(fetcher, cli.BaseURL, cli.Root, site.WithLogger(deps.Logger))
	if cli.Verbose {
		svc = dsslog.NewLoggingSiteService(svc, deps.Logger)
	}
	deps.Site = svc
	deps.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(siteDomain(cli.BaseURL)))

	if _, err := svc.Preload(ctx); err != nil {
		fmt.Fprintf(stderr, "Hint: the outline is read from %s/%s-outline.json\n", cli.BaseURL, cli.Root)
		return fmt.Errorf("failed to load outline: %w", err)
	}

	return kongCtx.Run(deps)
}

// newFetcher returns an HTTP fetcher for http(s) base URLs and a file
// fetcher for anything else.
func newFetcher(cli *CLI) (docsearch.Fetcher, error) {
	u, err := url.Parse(cli.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cli.BaseURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		return dshttp.NewFetcher(
			dshttp.WithTimeout(cli.Timeout),
			dshttp.WithRateLimit(cli.RPS),
		), nil
	default:
		return fs.NewFetcher(), nil
	}
}

// siteDomain returns scheme://host of an http(s) base URL, or "".
func siteDomain(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
