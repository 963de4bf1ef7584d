package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	service "github.com/okian/shotzone/internal/app"
	"github.com/okian/shotzone/internal/adapters/report"
	"github.com/okian/shotzone/internal/adapters/source"
	"github.com/okian/shotzone/internal/config"
	"github.com/okian/shotzone/internal/shotgen"
	"github.com/okian/shotzone/pkg/logger"
	"github.com/okian/shotzone/pkg/metrics"
)

const outputFilePermission = 0o644

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shotzone",
		Short: "Shot-zone attempt mix and eFG% report for a basketball shot log",
		Long: `shotzone classifies every shot in a CSV shot log (team, fgmade, x, y) into
2PT, 3PC (corner three) or 3PNC (non-corner three) and prints each team's
attempt mix and effective field-goal percentage per zone.

Configuration is layered: defaults, then the YAML file named by
SHOTZONE_CONFIG, then SHOTZONE_* environment variables, then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}

	reportCmd := newReportCmd()
	root.AddCommand(reportCmd, newGenerateCmd())
	// Running the bare binary produces the report.
	root.RunE = reportCmd.RunE
	root.Args = reportCmd.Args
	root.Flags().AddFlagSet(reportCmd.Flags())
	return root
}

func newReportCmd() *cobra.Command {
	var (
		format      string
		teams       int
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Classify shots and print attempt percentages and eFG per zone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.Get()

			cfg, err := config.Load(ctx)
			if err != nil {
				log.Error(ctx, "failed to load config", logger.Error(err))
				return err
			}
			if len(args) == 1 {
				cfg.InputPath = args[0]
			}
			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.OutputFormat = format
			}
			if flags.Changed("teams") {
				cfg.ExpectedTeams = teams
			}
			if flags.Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}
			if err := cfg.Validate(); err != nil {
				log.Error(ctx, "invalid configuration", logger.Error(err))
				return err
			}

			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}

			return runReport(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatText, "output format: text or json")
	cmd.Flags().IntVar(&teams, "teams", 0, "reject inputs without exactly this many teams (0 accepts any)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	return cmd
}

func runReport(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	log := logger.Get()

	renderer, err := report.NewRenderer(cfg.OutputFormat)
	if err != nil {
		return err
	}

	src := source.NewCSVSource(cfg.InputPath, source.WithStdin(stdin))
	svc := service.New(
		service.WithLogger(log.Named("report")),
		service.WithExpectedTeams(cfg.ExpectedTeams),
	)

	if _, err := svc.Run(ctx, src, renderer, stdout); err != nil {
		log.Error(ctx, "report failed", logger.String("input", cfg.InputPath), logger.Error(err))
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "failed to write metrics", logger.String("metrics_file", cfg.MetricsFile), logger.Error(err))
			return err
		}
		log.Debug(ctx, "metrics written", logger.String("metrics_file", cfg.MetricsFile))
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	var (
		cfg    shotgen.Config
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic shot log as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logger.Get()

			w := cmd.OutOrStdout()
			if output != "" && output != source.StdinPath {
				f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := shotgen.Write(ctx, w, cfg); err != nil {
				log.Error(ctx, "generation failed", logger.Error(err))
				return err
			}
			log.Info(ctx, "shot log generated",
				logger.Int("shots", cfg.Shots),
				logger.Int("teams", cfg.Teams),
				logger.String("output", output),
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.Shots, "shots", shotgen.DefaultShots, "number of shots to generate")
	cmd.Flags().IntVar(&cfg.Teams, "teams", shotgen.DefaultTeams, "number of teams (1-26)")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", shotgen.DefaultSeed, "random seed; the same seed yields the same log")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}
