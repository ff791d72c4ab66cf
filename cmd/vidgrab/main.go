package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/vidgrab"
	"github.com/fwojciec/vidgrab/extract"
	"github.com/fwojciec/vidgrab/fs"
	"github.com/fwojciec/vidgrab/goquery"
	"github.com/fwojciec/vidgrab/rod"
	vgslog "github.com/fwojciec/vidgrab/slog"
	"github.com/fwojciec/vidgrab/sqlite"
	"github.com/fwojciec/vidgrab/ytdlp"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment may be set up already.
	_ = godotenv.Load()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, errNoCommand) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	stop()
	os.Exit(ExitCode(err))
}

// Exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// errNoCommand is returned when vidgrab is run without arguments.
var errNoCommand = errors.New("no command specified")

// UsageError reports invalid command line input.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps the result of Run to a process exit status.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// GoodstuffURLs are the channels extracted by the goodstuff command.
var GoodstuffURLs = []string{
	"https://vkvideo.ru/@public111751633/all",
	"https://vkvideo.ru/@club180058315/all",
}

// Main represents the program.
type Main struct {
	// SQLite database holding the download history. Opened on demand.
	DB *sqlite.DB

	// Collaborators for end-to-end testing. Built from flags when nil.
	Renderer   vidgrab.Renderer
	Downloader vidgrab.Downloader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vidgrab"),
		kong.Description("Extract and download videos from vkvideo.ru listing pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"cache_dir": defaultCacheDir(),
			"db_path":   defaultDBPath(),
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		parser.Stdout = stderr
		_, _ = parser.Parse([]string{"--help"})
		return &UsageError{Err: errNoCommand}
	}

	if args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse(args)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return &UsageError{Err: err}
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())
	deps.Logger = logger

	var results vidgrab.ResultCache = fs.NewResultCache(filepath.Join(cli.CacheDir, "results"))
	if cli.Debug {
		results = vgslog.NewLoggingResultCache(results, logger)
	}
	deps.Results = results
	deps.Pages = fs.NewPageCache(filepath.Join(cli.CacheDir, "pages"))

	var flags *ExtractFlags
	switch cmd {
	case "goodstuff":
		flags = &cli.Goodstuff.ExtractFlags
	case "url":
		flags = &cli.URL.ExtractFlags
	}

	if flags != nil {
		if flags.NewOnly && !flags.Fresh {
			return &UsageError{Err: errors.New("--new-only requires --fresh")}
		}
		if flags.Retries < 0 {
			return &UsageError{Err: errors.New("--retries must not be negative")}
		}

		links := goquery.NewParser()
		renderer := m.renderer(cli, logger, links)
		if flags.Record || flags.Replay {
			renderer = &extract.RecordingRenderer{
				Next:   renderer,
				Pages:  deps.Pages,
				Replay: flags.Replay,
				Logger: logger,
			}
		}
		defer renderer.Close()

		var linkParser vidgrab.LinkParser = links
		if cli.Debug {
			linkParser = vgslog.NewLoggingParser(links, logger)
		}

		deps.Extractor = &extract.Extractor{
			Renderer:        renderer,
			Parser:          linkParser,
			Cache:           results,
			Limiter:         extract.NewDomainLimiter(1.0),
			Login:           links,
			Logger:          logger,
			Progress:        progressLogger(logger),
			ContinueOnError: !flags.FailFast,
			RetryDelays:     retryDelays(flags.Retries),
		}
	}

	if cmd == "history" || (flags != nil && flags.Download) {
		if err := m.openDB(cli.DB); err != nil {
			return err
		}
		defer m.Close()
		deps.History = sqlite.NewDownloadService(m.DB)
	}

	if flags != nil && flags.Download {
		downloader := m.Downloader
		if downloader == nil {
			downloader = ytdlp.NewDownloader(ytdlp.WithBinary(cli.YtDlp))
		}
		if cli.Debug {
			downloader = vgslog.NewLoggingDownloader(downloader, logger)
		}
		deps.Downloader = downloader
	}

	return kongCtx.Run(deps)
}

func (m *Main) renderer(cli *CLI, logger *slog.Logger, login vidgrab.LoginDetector) vidgrab.Renderer {
	var r vidgrab.Renderer = m.Renderer
	if r == nil {
		r = rod.NewRenderer(
			rod.WithHeadless(cli.Headless),
			rod.WithBrowserBin(cli.Chrome),
			rod.WithWaitPolicy(vidgrab.WaitPolicy(cli.Wait)),
			rod.WithNavigationTimeout(cli.Timeout),
			rod.WithSettleDelay(cli.Settle),
		)
	}
	if cli.Debug {
		r = rod.NewLoggingRenderer(r, logger, rod.WithLoginDetector(login))
	}
	return r
}

func (m *Main) openDB(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q (set VIDGRAB_DB to use another path): %w", path, err)
	}
	return nil
}

// progressLogger reports each finished listing page.
func progressLogger(logger *slog.Logger) vidgrab.ExtractProgressFunc {
	return func(p vidgrab.ExtractProgress) {
		if p.Error != nil {
			return
		}
		logger.Info("extracted",
			"url", p.URL,
			"outcome", p.Outcome,
			"videos", p.Videos,
			"progress", progress(p.Completed, p.Total),
		)
	}
}

// retryDelays returns n backoff delays: 1s, 2s, 4s, then doubling.
func retryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := extract.DefaultRetryDelays()
	for len(delays) < n {
		delays = append(delays, delays[len(delays)-1]*2)
	}
	return delays[:n]
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".vidgrab", "cache")
	}
	return filepath.Join(home, ".vidgrab", "cache")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vidgrab.db"
	}
	return filepath.Join(home, ".vidgrab", "vidgrab.db")
}
