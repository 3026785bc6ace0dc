package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"ripdoctor/internal/analysis"
	"ripdoctor/internal/config"
	"ripdoctor/internal/history"
	"ripdoctor/internal/introspect"
	"ripdoctor/internal/logging"
	"ripdoctor/internal/media"
	"ripdoctor/internal/repair"
	"ripdoctor/internal/report"
)

type rootOptions struct {
	configPath  string
	checkOnly   bool
	deep        bool
	analyzeOnly bool
	doRepair    bool
	force       bool
	backup      bool
	outputPath  string
	verbose     bool
	jsonOutput  bool
	noHistory   bool
	logLevel    string
	logFormat   string
}

func newRootCommand(exitCode *int) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ripdoctor [flags] <file>",
		Short:         "Diagnose and repair ripped media containers",
		Long: `ripdoctor runs a set of independent probes against a media container,
aggregates their findings into a severity-scored report, and can drive a
conditional repair-and-reverify workflow.

The exit status equals the report's issue count; zero means healthy.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, opts, args[0], exitCode)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.checkOnly, "check-only", false, "run only the quick structural and inventory checks")
	flags.BoolVar(&opts.deep, "deep", false, "run the deep analysis probe set")
	flags.BoolVar(&opts.analyzeOnly, "analyze-only", false, "suppress repair even when --repair is given")
	flags.BoolVar(&opts.doRepair, "repair", false, "repair the file when the analysis finds issues")
	flags.BoolVar(&opts.force, "force", false, "repair even when no issues were found, with the forced remux strategy")
	flags.BoolVar(&opts.backup, "backup", false, "copy the input aside before repairing")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "path for the repaired file (default <base>_repaired.<ext>)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show every finding, not just per-probe summaries")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print the report as JSON")
	flags.BoolVar(&opts.noHistory, "no-history", false, "do not record this run in the history database")

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file path")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "override the configured log format (console or json)")

	rootCmd.AddCommand(newDepsCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))

	return rootCmd
}

func loadEnvironment(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runDoctor(cmd *cobra.Command, opts *rootOptions, path string, exitCode *int) error {
	cfg, logger, err := loadEnvironment(opts)
	if err != nil {
		return err
	}

	file, err := media.Load(path)
	if err != nil {
		return err
	}

	insp := introspect.NewClient(
		cfg.Tools.FFprobe, cfg.Tools.FFmpeg, cfg.Tools.Mkvmerge,
		introspect.WithPacketLimit(cfg.Analysis.PacketLimit),
	)
	controller := analysis.NewController(insp, logger,
		analysis.WithWorkers(cfg.Analysis.Workers),
		analysis.WithProbeTimeout(time.Duration(cfg.Analysis.ProbeTimeoutSeconds)*time.Second),
		analysis.WithThresholds(analysis.Thresholds{
			SyncWarnSkew:  cfg.Analysis.SyncWarnSeconds,
			SyncErrorSkew: cfg.Analysis.SyncErrorSeconds,
			GapSeconds:    cfg.Analysis.GapSeconds,
			MaxDuration:   time.Duration(cfg.Analysis.MaxDurationHours * float64(time.Hour)),
			MaxSize:       int64(cfg.Analysis.MaxSizeGiB) << 30,
			MaxTagLength:  cfg.Analysis.MaxTagLength,
		}),
	)

	ctx := cmd.Context()

	if opts.checkOnly {
		if controller.QuickCheck(ctx, file) {
			fmt.Fprintln(cmd.OutOrStdout(), "OK:", file.Path)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "issues found:", file.Path)
		*exitCode = 1
		return nil
	}

	mode := analysis.ModeFull
	if opts.deep {
		mode = analysis.ModeDeep
	}

	rep := controller.Run(ctx, mode, file)
	if err := renderReport(cmd.OutOrStdout(), rep, opts.verbose, opts.jsonOutput); err != nil {
		return err
	}
	*exitCode = rep.TotalIssues

	if cfg.History.Enabled && !opts.noHistory {
		recordHistory(cmd, cfg, logger, file.Path, string(mode), rep)
	}

	if opts.doRepair && !opts.analyzeOnly {
		if rep.TotalIssues == 0 && !opts.force {
			fmt.Fprintln(cmd.OutOrStdout(), "repair not necessary: no issues found")
			return nil
		}
		executor, err := repair.NewExecutor(cfg.Tools.FFmpeg, repair.NewIntegrityVerifier(insp), logger,
			repair.WithMinOutputBytes(cfg.Repair.MinOutputBytes))
		if err != nil {
			return err
		}
		outcome, err := executor.Repair(ctx, repair.Plan{
			InputPath:  file.Path,
			OutputPath: opts.outputPath,
			Backup:     opts.backup,
			Force:      opts.force,
		})
		if err != nil {
			return fmt.Errorf("repair: %w", err)
		}
		renderOutcome(cmd.OutOrStdout(), outcome)
	}
	return nil
}

func recordHistory(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, path, mode string, rep report.AnalysisReport) {
	if err := cfg.EnsureDirectories(); err != nil {
		logger.Warn("history disabled for this run", slog.Any("error", err))
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("history disabled for this run", slog.Any("error", err))
		return
	}
	defer store.Close()
	if _, err := store.Record(cmd.Context(), path, mode, rep); err != nil {
		logger.Warn("history record failed", slog.Any("error", err))
	}
}
