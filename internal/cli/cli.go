package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nepali-holidays/nepcal/internal/config"
	"github.com/nepali-holidays/nepcal/internal/logger"
	"github.com/nepali-holidays/nepcal/internal/pipeline"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagURL       string
	flagOutput    string
	flagDebugHTML string
	flagFormat    string
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nepali-holidays",
		Short: "Build an iCalendar file of Nepali public holidays",
		Long: `A CLI tool that scrapes the public holiday tables of the
"Public holidays in Nepal" Wikipedia article and writes them as
all-day events to an iCalendar file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&flagURL, "url", config.DefaultURL, "Page to scrape")
	cmd.Flags().StringVar(&flagOutput, "output", config.DefaultOutputPath, "Calendar file to write")
	cmd.Flags().StringVar(&flagDebugHTML, "debug-html", config.DefaultDebugPath, "Where to save the fetched page (empty disables)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// loadConfig reads the config file and applies the flags that were set
// explicitly on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Source.URL = strings.TrimSpace(flagURL)
	}
	if flags.Changed("output") {
		cfg.Output.Path = strings.TrimSpace(flagOutput)
	}
	if flags.Changed("debug-html") {
		cfg.Source.DebugPath = strings.TrimSpace(flagDebugHTML)
	}

	return cfg, cfg.Validate()
}

// runGenerate is the main command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := logger.New(level, cmd.ErrOrStderr())
	if flagVerbose {
		log.SetLevel(logger.LevelDebug)
	}
	logger.SetDefault(log)
	logger.DefaultMetrics().Reset()

	logger.Debug("starting run", logger.Fields{
		"url":    cfg.Source.URL,
		"output": cfg.Output.Path,
		"debug":  cfg.Source.DebugPath,
	})

	report, err := pipeline.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	result := &OutputResult{Report: report}
	if flagVerbose {
		snapshot := logger.GetMetricsSnapshot()
		result.Metrics = &snapshot
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI with the process arguments and returns the exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// run executes the root command and maps its outcome to an exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("run failed", nil, err)
		fmt.Fprintf(stderr, "❌ Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
