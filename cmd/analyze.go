package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/commentguard/internal/config"
	"github.com/abhisek/commentguard/internal/llm"
	"github.com/abhisek/commentguard/internal/logging"
	"github.com/abhisek/commentguard/internal/moderate"
	"github.com/abhisek/commentguard/internal/render"
	"github.com/abhisek/commentguard/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify a comment collection and write the annotated result",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd)
	},
}

func init() {
	analyzeCmd.Flags().String("input", "", "Input comments JSON file (overrides config)")
	analyzeCmd.Flags().String("output", "", "Output annotated JSON file (overrides config)")
	analyzeCmd.Flags().Int("workers", 0, "Concurrent classification workers (overrides config)")
	analyzeCmd.Flags().Bool("no-report", false, "Skip printing the summary report")
	analyzeCmd.Flags().Bool("no-history", false, "Skip recording the run in the history database")

	// The root command runs analyze directly, so it carries the same flags.
	rootCmd.Flags().AddFlagSet(analyzeCmd.Flags())
}

func runAnalyze(cmd *cobra.Command) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("input"); v != "" {
		cfg.Input = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Moderate.Workers = v
	}

	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	logger := logging.New("analyze")

	// Configuration faults abort before any comment is processed.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration fault: %w", err)
	}

	terms := moderate.DefaultVocabulary
	if cfg.Vocabulary != "" {
		terms, err = moderate.LoadVocabulary(cfg.Vocabulary)
		if err != nil {
			return fmt.Errorf("configuration fault: %w", err)
		}
	}
	prefilter, err := moderate.NewPrefilter(terms)
	if err != nil {
		return fmt.Errorf("configuration fault: %w", err)
	}

	ctx := context.Background()
	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	logger.Info("classifier configured", "provider", cfg.LLM.Provider, "model", provider.ModelID())

	comments, err := store.LoadComments(cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("loaded comments", "count", len(comments), "path", cfg.Input)
	render.InitialSummary(os.Stdout, comments)

	classifier := moderate.WithRetry(
		moderate.NewClassifier(provider, cfg.Moderate),
		cfg.Moderate.Retry,
		logging.New("retry"),
	)
	pipeline := moderate.NewPipeline(prefilter, classifier, cfg.Moderate.Workers, logging.New("pipeline"))

	started := time.Now()
	annotated, err := pipeline.Run(ctx, comments)
	if err != nil {
		return fmt.Errorf("classification run: %w", err)
	}
	finished := time.Now()

	stats := pipeline.Stats()
	logger.Info("analysis complete",
		"processed", stats.Prefiltered+stats.RemoteClassified,
		"failed", stats.Failed(),
		"duration", finished.Sub(started).Round(time.Millisecond))

	if err := store.SaveAnnotated(cfg.Output, annotated); err != nil {
		return err
	}
	logger.Info("saved annotated comments", "path", cfg.Output)

	report := moderate.Summarize(annotated)

	if skip, _ := cmd.Flags().GetBool("no-history"); !skip {
		recordRun(cmd, logger, provider.ModelID(), started, finished, report, stats, annotated)
	}

	if skip, _ := cmd.Flags().GetBool("no-report"); !skip {
		render.Report(os.Stdout, report)
		render.Stats(os.Stdout, stats)
	}

	return nil
}

// recordRun appends the run to the history database. History is
// best-effort: a storage failure logs a warning, it does not fail an
// otherwise complete run.
func recordRun(cmd *cobra.Command, logger *slog.Logger, model string, started, finished time.Time, report moderate.Report, stats moderate.Stats, annotated []moderate.AnnotatedComment) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		logger.Warn("resolve history database path", "error", err)
		return
	}

	s, err := store.Open(dbPath)
	if err != nil {
		logger.Warn("open history database", "error", err)
		return
	}
	defer s.Close()

	run := store.Run{
		ID:          store.NewRunID(),
		StartedAt:   started,
		FinishedAt:  finished,
		Model:       model,
		Total:       report.Total,
		Offensive:   report.OffensiveCount,
		Prefiltered: int(stats.Prefiltered),
		Remote:      int(stats.RemoteClassified),
		MissingText: int(stats.MissingText),
		Exhausted:   int(stats.Exhausted),
	}
	if err := s.RecordRun(context.Background(), run, annotated); err != nil {
		logger.Warn("record run", "error", err)
	}
}
