package main

import (
	"context"
	"io"
	"log/slog"
)

// CLI defines the command-line interface structure for Kong. Configuration
// is flag-based with environment fallbacks, so the bot can run from a plain
// .env file.
type CLI struct {
	Serve ServeCmd `cmd:"" help:"Run the Telegram bot"`
	Crawl CrawlCmd `cmd:"" help:"Crawl the program sites once and download discovered documents"`
	Ask   AskCmd   `cmd:"" help:"Ask a one-off question from the terminal"`

	GeminiAPIKey     string   `env:"GEMINI_API_KEY" help:"Google Gemini API key"`
	TelegramToken    string   `env:"TELEGRAM_BOT_TOKEN" help:"Telegram bot token"`
	Model            string   `env:"GEMINI_MODEL" default:"gemini-2.5-flash" help:"Gemini model name"`
	SeedURLs         []string `env:"SEED_URLS" default:"https://abit.itmo.ru/program/master/ai,https://abit.itmo.ru/program/master/ai_product" help:"Crawl seed URLs"`
	DownloadDir      string   `env:"DOWNLOAD_DIR" default:"downloads" help:"Directory for downloaded documents"`
	MaxPages         int      `env:"MAX_PAGES" default:"400" help:"Crawl page limit"`
	RequestTimeout   int      `env:"REQUEST_TIMEOUT" default:"20" help:"Per-request timeout in seconds"`
	UserAgent        string   `env:"USER_AGENT" default:"admitbot" help:"Crawler User-Agent"`
	MaxContextChars  int      `env:"SITE_CONTEXT_LIMIT" default:"100000" help:"Site context character limit"`
	MaxFilesPerQuery int      `env:"MAX_FILES_PER_QUERY" default:"4" help:"Max candidate documents per question"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Out string `short:"o" help:"Write the aggregated site text to this file"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask"`
	File     string `short:"f" help:"Ground the answer in this document (display name or path)"`
	Context  string `short:"c" help:"Read site context from this file (e.g. from 'crawl -o')"`
}

// Dependencies holds configuration and shared services for command
// execution, bound into Kong so command Run methods receive them.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	CLI    *CLI
}
