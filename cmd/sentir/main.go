package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sentir/internal/config"
	"sentir/internal/importer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &config.Options{}

	cmd := &cobra.Command{
		Use:           "sentir",
		Short:         "Import journal HTML exports into a mood-tracking CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.CSVPath, "csv", "HowWeFeelEmotions.csv", "Path to the target mood-tracking CSV")
	flags.StringVar(&opts.EntriesDir, "entries", "AppleJournalEntries/Entries", "Directory holding the journal HTML exports")
	flags.StringVar(&opts.DefaultTime, "time", "12:00 PM", "Time of day written into the Date column")
	flags.StringVar(&opts.MoodsFile, "moods-file", "moods.txt", "File with allowed moods, one per line")
	flags.StringVar(&opts.RulesFile, "rules", "", "Optional TOML file overriding the keyword rules")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Run every stage but write nothing")
	flags.BoolVar(&opts.Force, "force", false, "Skip deduplication, append every entry")
	flags.BoolVar(&opts.LLMOff, "llm-off", false, "Disable the external mood fallback")
	flags.StringVar(&opts.LLMModel, "llm-model", "gpt-4o-mini", "Model used by the mood fallback")
	flags.StringVar(&opts.LLMProvider, "llm-provider", config.ProviderOpenAI, "Fallback provider: openai or ollama")
	flags.BoolVar(&opts.LLMDebug, "llm-debug", false, "Log fallback prompts and responses")
	flags.BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")

	return cmd
}

func run(ctx context.Context, opts *config.Options) error {
	logger := newLogger(opts.Verbose)
	slog.SetDefault(logger)

	config.LoadEnv(logger)

	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	imp, err := importer.New(opts, logger)
	if err != nil {
		return err
	}

	summary, err := imp.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Import finished",
		"scanned", summary.Scanned,
		"skipped", summary.Skipped,
		"duplicates", summary.Duplicates,
		"appended", summary.Appended,
		"dry_run", opts.DryRun,
	)
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
