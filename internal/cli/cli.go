package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/cf-readme/internal/config"
	"github.com/pfrederiksen/cf-readme/internal/logger"
	"github.com/pfrederiksen/cf-readme/internal/problem"
	"github.com/pfrederiksen/cf-readme/internal/readme"
	"github.com/pfrederiksen/cf-readme/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagStdout  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cf-readme <url|contest/index>",
		Short: "Generate a README from a Codeforces problem",
		Long: `A CLI tool that downloads a Codeforces problem page and writes a README
with the problem name, rating, tags, statement, sample tests and note,
followed by an empty Solution section.

The problem can be given as a full URL or as a short reference such as
1694A or 1694/A.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	defaults := config.DefaultConfig()

	// Define flags
	cmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default: .cf-readme.yaml in . or $HOME)")
	cmd.Flags().StringP("output", "o", defaults.Output, "Output file name")
	cmd.Flags().StringP("output-dir", "d", defaults.OutputDir, "Directory to write the README into")
	cmd.Flags().String("format", defaults.Format, "Output format: markdown or json")
	cmd.Flags().BoolP("force", "f", defaults.Overwrite, "Overwrite an existing output file")
	cmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write the README to stdout instead of a file")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	cmd.Flags().String("base-url", defaults.BaseURL, "Site used to resolve short problem references")
	cmd.Flags().String("user-agent", defaults.UserAgent, "User-Agent header sent with requests")
	cmd.Flags().Duration("timeout", defaults.Timeout, "HTTP request timeout")
	cmd.Flags().Uint("attempts", defaults.Attempts, "Fetch attempts before giving up")
	cmd.Flags().Duration("retry-delay", defaults.RetryDelay, "Initial delay between fetch attempts")
	cmd.Flags().Int("max-lines", defaults.MaxLines, "Stop scanning after this many page lines (0 = no limit)")

	return cmd
}

// runGenerate is the main command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format, err := readme.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	// The scraper falls back to the package defaults, so one run owns them.
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	logger.DefaultMetrics().Reset()

	pageURL, err := problem.ResolveURL(args[0], cfg.BaseURL)
	if err != nil {
		return err
	}

	logger.Debug("Resolved problem", logger.Fields{
		"ref":    args[0],
		"url":    pageURL,
		"format": string(format),
	})

	sc := scraper.New(
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithAttempts(cfg.Attempts),
		scraper.WithRetryDelay(cfg.RetryDelay),
		scraper.WithMaxLines(cfg.MaxLines),
	)

	start := time.Now()
	p, err := sc.FetchProblem(cmd.Context(), pageURL)
	if err != nil {
		return fmt.Errorf("fetching problem: %w", err)
	}

	doc, err := readme.Render(p, format)
	if err != nil {
		return fmt.Errorf("rendering README: %w", err)
	}

	if err := writeOutput(cmd, cfg, format, doc); err != nil {
		return err
	}

	logger.RecordTiming("total", time.Since(start))
	logger.Debug("Run metrics", logger.MetricsSnapshot())

	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
