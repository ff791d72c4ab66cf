package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/vidgrab"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Results    vidgrab.ResultCache
	Pages      vidgrab.PageCache
	Extractor  vidgrab.Extractor
	Downloader vidgrab.Downloader
	History    vidgrab.DownloadHistory
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	CacheDir string        `name:"cache-dir" env:"VIDGRAB_CACHE_DIR" default:"${cache_dir}" help:"Directory for cached results and recorded pages"`
	DB       string        `name:"db" env:"VIDGRAB_DB" default:"${db_path}" help:"Download history database"`
	YtDlp    string        `name:"yt-dlp" env:"VIDGRAB_YTDLP" default:"yt-dlp" help:"yt-dlp executable"`
	Chrome   string        `name:"chrome" env:"VIDGRAB_CHROME" help:"Chrome or Chromium executable (found automatically when empty)"`
	Timeout  time.Duration `default:"30s" help:"Page navigation timeout"`
	Settle   time.Duration `default:"1s" help:"Delay after scrolling before the page is captured"`
	Wait     string        `default:"load" enum:"load,idle" help:"When navigation is complete: load event or network idle (${enum})"`
	Headless bool          `default:"true" negatable:"" help:"Run the browser without a window"`
	Debug    bool          `help:"Log every render, parse, cache and download operation"`

	Goodstuff GoodstuffCmd `cmd:"" help:"Extract videos from the built-in list of channels"`
	URL       URLCmd       `cmd:"" name:"url" help:"Extract videos from one listing page"`
	Forget    ForgetCmd    `cmd:"" help:"Drop cached results and recorded pages for listing pages"`
	History   HistoryCmd   `cmd:"" help:"List downloaded videos"`
}

// ExtractFlags are shared by the extraction commands.
type ExtractFlags struct {
	Fresh    bool   `help:"Ignore cached results and re-render every page"`
	NewOnly  bool   `name:"new-only" help:"With --fresh, print only videos missing from the previous result"`
	List     bool   `help:"Also save the result to --output"`
	Output   string `default:"vkvideo_links.yml" help:"Export file for --list (.json for JSON, YAML otherwise)"`
	Format   string `default:"yaml" enum:"yaml,json" help:"Output format for stdout (${enum})"`
	Download bool   `help:"Download every extracted video with yt-dlp"`
	Dest     string `short:"d" default:"." help:"Destination folder for --download"`
	FailFast bool   `name:"fail-fast" help:"Stop at the first page or video that fails"`
	Retries  int    `default:"0" help:"Extra render attempts per page, with 1s/2s/4s backoff"`
	Record   bool   `help:"Save rendered pages to the page cache"`
	Replay   bool   `help:"Serve pages from the page cache when recorded"`
}

// GoodstuffCmd is the "goodstuff" subcommand.
type GoodstuffCmd struct {
	ExtractFlags `embed:""`
}

// URLCmd is the "url" subcommand.
type URLCmd struct {
	URL string `arg:"" help:"Listing page URL"`

	ExtractFlags `embed:""`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	URLs []string `arg:"" name:"url" help:"Listing page URLs to forget"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct{}
