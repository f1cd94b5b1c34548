// Package cmd defines the contentgen command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/areapages/internal/app"
	"github.com/JakeFAU/areapages/internal/catalog"
	"github.com/JakeFAU/areapages/internal/config"
	"github.com/JakeFAU/areapages/internal/logging"
	"github.com/JakeFAU/areapages/internal/pipeline"
)

const (
	exitOK      = 0
	exitFailure = 1
)

type options struct {
	envFile      string
	concurrency  int
	limit        int
	allowFullRun bool
}

// newRootCmd builds the command. The process exit code is stored in exitCode.
func newRootCmd(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "contentgen",
		Short: "Generates location landing-page content for every town and service",
		Long: `contentgen enumerates every (location, service) combination, skips the ones
already stored, and generates the rest through a generative text API with a
bounded number of concurrent requests. Re-running it resumes where it left off.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			*exitCode = run(cmd, opts, stdout, stderr)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "key=value file read for settings missing from the environment")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "maximum concurrent generation requests (overrides pipeline.concurrency)")
	flags.IntVar(&opts.limit, "limit", 0, "attempt at most this many outstanding tasks (overrides pipeline.limit)")
	flags.BoolVar(&opts.allowFullRun, "allow-full-run", false, "run every combination when existing keys cannot be read")
	return cmd
}

// run executes one pipeline pass and returns the exit code. The summary is printed on every path.
func run(cmd *cobra.Command, opts options, stdout, stderr io.Writer) int {
	summary, err := execute(cmd, opts)
	fmt.Fprint(stdout, summary.String())
	if err != nil {
		fmt.Fprintf(stderr, "contentgen: %v\n", err)
		return exitFailure
	}
	return summary.ExitCode()
}

func execute(cmd *cobra.Command, opts options) (pipeline.Summary, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return pipeline.Summary{}, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		cfg.Pipeline.Concurrency = opts.concurrency
	}
	if flags.Changed("limit") {
		cfg.Pipeline.Limit = opts.limit
	}
	if flags.Changed("allow-full-run") {
		cfg.Pipeline.AllowFullRun = opts.allowFullRun
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.Summary{}, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development, cfg.Logging.Level)
	if err != nil {
		return pipeline.Summary{}, err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	locations, err := catalog.LoadLocations(cfg.Pipeline.LocationsFile)
	if err != nil {
		logger.Error("failed to load locations", zap.String("path", cfg.Pipeline.LocationsFile), zap.Error(err))
		return pipeline.Summary{}, fmt.Errorf("load locations: %w", err)
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize services", zap.Error(err))
		return pipeline.Summary{}, err
	}
	defer a.Close()

	summary, err := a.Run(ctx, locations)
	if err != nil {
		logger.Error("pipeline aborted", zap.Error(err))
		return summary, err
	}
	return summary, nil
}

// Execute runs the command against the process arguments and exits with its code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := executeContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func executeContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := exitOK
	cmd := newRootCmd(stdout, stderr, &code)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprint(stdout, pipeline.Summary{}.String())
		fmt.Fprintf(stderr, "contentgen: %v\n", err)
		return exitFailure
	}
	return code
}
