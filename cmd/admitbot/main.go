package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"admitbot"
	"admitbot/bot"
	"admitbot/crawl"
	"admitbot/fs"
	"admitbot/gemini"
	admithttp "admitbot/http"
	"admitbot/mem"
	admitslog "admitbot/slog"
	"admitbot/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"google.golang.org/genai"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Load a local .env if present; listed variables feed Kong's env tags.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	deps.CLI = cli

	parser, err := kong.New(cli,
		kong.Name("admitbot"),
		kong.Description("Admissions Q&A bot for master's program applicants."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'admitbot --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// newGeminiClient connects to the Gemini API using the configured key.
func newGeminiClient(ctx context.Context, cli *CLI, stderr io.Writer) (*genai.Client, error) {
	if cli.GeminiAPIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cli.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

// newCrawler assembles the crawl pipeline from the configured limits.
func newCrawler(cli *CLI, logger *slog.Logger) *crawl.Crawler {
	fetcher := admithttp.NewFetcher(
		admithttp.WithTimeout(requestTimeout(cli)),
		admithttp.WithUserAgent(cli.UserAgent),
	)
	return &crawl.Crawler{
		Fetcher:  fetcher,
		Limiter:  crawl.NewDomainLimiter(crawlRequestsPerSecond),
		Logger:   logger,
		MaxPages: cli.MaxPages,
		MaxChars: cli.MaxContextChars,
	}
}

// crawlRequestsPerSecond bounds the per-domain crawl rate.
const crawlRequestsPerSecond = 2.0

func requestTimeout(cli *CLI) time.Duration {
	return time.Duration(cli.RequestTimeout) * time.Second
}

// Run executes the serve command: the long-polling Telegram bot.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := deps.CLI

	if cli.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN not set")
	}
	api, err := tgbotapi.NewBotAPI(cli.TelegramToken)
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	client, err := newGeminiClient(ctx, cli, deps.Stderr)
	if err != nil {
		return err
	}

	var tokens *gemini.TokenCounter
	if tc, err := gemini.NewTokenCounter(cli.Model); err != nil {
		deps.Logger.Warn("token counter unavailable", "error", err)
	} else {
		tokens = tc
	}

	b := &bot.Bot{
		Catalog:    fs.NewCatalog(cli.DownloadDir),
		Selector:   admitslog.NewSelector(gemini.NewSelector(client, cli.Model), deps.Logger),
		Composer:   gemini.NewComposer(client, cli.Model),
		Sessions:   mem.NewSessionStore(),
		Approvals:  mem.NewApprovalRegistry(),
		Crawler:    admitslog.NewCrawler(newCrawler(cli, deps.Logger), deps.Logger),
		Downloader: admithttp.NewDownloader(deps.Logger),
		Channel:    telegram.NewChannel(api),
		Logger:     deps.Logger,
		Config: bot.Config{
			SeedURLs:      cli.SeedURLs,
			DownloadDir:   cli.DownloadDir,
			MaxCandidates: cli.MaxFilesPerQuery,
		},
	}
	if tokens != nil {
		b.Tokens = tokens
	}

	deps.Logger.Info("bot started", "username", api.Self.UserName)
	poller := telegram.NewPoller(api, b, deps.Logger)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Run executes the crawl command: a one-shot crawl with an optional text dump.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cli := deps.CLI

	crawler := admitslog.NewCrawler(newCrawler(cli, deps.Logger), deps.Logger)
	result, err := crawler.Crawl(deps.Ctx, cli.SeedURLs)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	downloader := admithttp.NewDownloader(deps.Logger)
	paths, err := downloader.FetchAll(deps.Ctx, result.DocumentURLs, cli.DownloadDir)
	if err != nil {
		return fmt.Errorf("document download failed: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%d chars), downloaded %d of %d documents to %s\n",
		result.Pages, len(result.Text), len(paths), len(result.DocumentURLs), cli.DownloadDir)

	if c.Out != "" {
		if err := os.WriteFile(c.Out, []byte(result.Text), 0644); err != nil {
			return fmt.Errorf("failed to write site text: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Site text written to %s\n", c.Out)
	}
	return nil
}

// Run executes the ask command: a one-off question from the terminal,
// optionally grounded in a downloaded document.
func (c *AskCmd) Run(deps *Dependencies) error {
	cli := deps.CLI

	client, err := newGeminiClient(deps.Ctx, cli, deps.Stderr)
	if err != nil {
		return err
	}
	composer := gemini.NewComposer(client, cli.Model)

	var siteContext string
	if c.Context != "" {
		data, err := os.ReadFile(c.Context)
		if err != nil {
			return fmt.Errorf("failed to read site context: %w", err)
		}
		siteContext = string(data)
	}

	if c.File != "" {
		path, err := resolveDocument(deps.Ctx, cli.DownloadDir, c.File)
		if err != nil {
			return err
		}
		answer, err := composer.AnswerFromDocument(deps.Ctx, c.Question, path, siteContext)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, answer)
		return nil
	}

	catalog := fs.NewCatalog(cli.DownloadDir)
	docs, err := catalog.List(deps.Ctx)
	if err == nil && len(docs) > 0 {
		selector := admitslog.NewSelector(gemini.NewSelector(client, cli.Model), deps.Logger)
		names, err := selector.SelectDocuments(deps.Ctx, c.Question, admitbot.DisplayNames(docs), cli.MaxFilesPerQuery, siteContext)
		if err == nil && len(names) > 0 {
			fmt.Fprintf(deps.Stderr, "Candidate documents (rerun with -f to use one): %s\n", strings.Join(names, ", "))
		}
	}

	answer, err := composer.AnswerFromContext(deps.Ctx, c.Question, siteContext)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, answer)
	return nil
}

// resolveDocument maps a display name (or direct path) to a catalog path.
func resolveDocument(ctx context.Context, dir, name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	docs, err := fs.NewCatalog(dir).List(ctx)
	if err != nil {
		return "", err
	}
	for _, doc := range docs {
		if strings.EqualFold(doc.DisplayName, name) {
			return doc.Path, nil
		}
	}
	return "", fmt.Errorf("document %q not found in %s", name, dir)
}
