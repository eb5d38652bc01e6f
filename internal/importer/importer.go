// Package importer runs the batch: extract every HTML entry, drop the
// ones already in the target CSV, resolve a mood, append the rest.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"sentir/internal/config"
	"sentir/internal/csvfile"
	"sentir/internal/dedupe"
	"sentir/internal/extract"
	"sentir/internal/mood"
	"sentir/internal/types"
)

// dateLayout renders the Date cell: year, English weekday abbreviation,
// month abbreviation, unpadded day, 12-hour clock.
const dateLayout = "2006 Mon Jan 2 03:04 PM"

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
	intentionRe = regexp.MustCompile(`\b(quero|pretendo|vou|preciso|devo|decidi|planejo|i want|i will|i need|i must|i decided|i plan)\b`)
)

type Importer struct {
	opts     *config.Options
	target   *csvfile.File
	resolver *mood.Resolver
	keys     *dedupe.Set
	logger   *slog.Logger
}

// New opens the target CSV, assembles the mood pool and rules, and wires
// the fallback provider when it is enabled and has credentials.
func New(opts *config.Options, logger *slog.Logger) (*Importer, error) {
	target, err := csvfile.Open(opts.CSVPath)
	if err != nil {
		return nil, err
	}

	pool := mood.NewPool(target.ExistingMoods()...)
	if opts.MoodsFile != "" {
		extra, err := mood.LoadMoodsFile(opts.MoodsFile)
		if err != nil {
			return nil, err
		}
		for _, m := range extra {
			pool.Add(m)
		}
	}
	if pool.Len() == 0 {
		logger.Warn("No moods found in CSV or moods file; rows will carry an empty Mood")
	}

	rules := mood.DefaultRules()
	if opts.RulesFile != "" {
		rules, err = mood.LoadRules(opts.RulesFile)
		if err != nil {
			return nil, err
		}
	}

	fallback, err := buildFallback(opts, logger)
	if err != nil {
		return nil, err
	}

	return &Importer{
		opts:     opts,
		target:   target,
		resolver: mood.NewResolver(pool, rules, fallback, logger),
		keys:     target.ExistingKeys(),
		logger:   logger,
	}, nil
}

// buildFallback returns nil when the external stage is off or unusable;
// the resolver then runs deterministic-only.
func buildFallback(opts *config.Options, logger *slog.Logger) (mood.Fallback, error) {
	if opts.LLMOff {
		return nil, nil
	}

	switch opts.LLMProvider {
	case config.ProviderOpenAI:
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if apiKey == "" {
			logger.Warn("OPENAI_API_KEY not set; mood fallback disabled")
			return nil, nil
		}
		return mood.NewOpenAIFallback(opts.LLMModel, apiKey, opts.LLMDebug, logger)
	case config.ProviderOllama:
		return mood.NewOllamaFallback(opts.LLMModel, opts.LLMDebug, logger)
	default:
		return nil, fmt.Errorf("unknown fallback provider %q", opts.LLMProvider)
	}
}

// Run performs one sequential pass over the entries directory.
func (imp *Importer) Run(ctx context.Context) (*types.Summary, error) {
	entries, err := os.ReadDir(imp.opts.EntriesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries directory: %w", err)
	}

	clock := imp.opts.DefaultClock()
	summary := &types.Summary{}
	var rows [][]string

	for _, dirEntry := range entries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), ".html") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Scanned++

		path := filepath.Join(imp.opts.EntriesDir, dirEntry.Name())
		entry, err := extract.Parse(path)
		if err != nil {
			summary.Skipped++
			if types.IsSkip(err) {
				imp.logger.Warn("Skipping entry", "file", dirEntry.Name(), "reason", err)
			} else {
				imp.logger.Warn("Failed to extract entry", "file", dirEntry.Name(), "error", err)
			}
			continue
		}

		dateStr := formatDate(entry.Date, clock)
		notes := entry.Title
		if notes == "" {
			notes = firstSentence(entry.Body)
		}
		reflections := entry.Body

		key := dedupe.NewKey(dateStr, notes, reflections)
		if !imp.opts.Force && imp.keys.Contains(key) {
			summary.Duplicates++
			imp.logger.Debug("Entry already imported", "file", dirEntry.Name(), "date", dateStr)
			continue
		}
		imp.keys.Add(key)

		moodStr := imp.resolver.Resolve(ctx, dirEntry.Name(), entry.Title+" "+entry.Body)

		rows = append(rows, imp.target.NewRow(map[string]string{
			csvfile.ColDate:        dateStr,
			csvfile.ColMood:        moodStr,
			csvfile.ColNotes:       notes,
			csvfile.ColReflections: reflections,
			csvfile.ColTakeaways:   extractTakeaway(entry.Body),
		}))
		summary.Appended++

		imp.logger.Info("New entry", "file", dirEntry.Name(), "date", dateStr, "mood", moodStr)
	}

	if imp.opts.DryRun {
		imp.logger.Info("Dry run, nothing written", "rows", len(rows))
		return summary, nil
	}

	if err := imp.target.Append(rows); err != nil {
		return summary, err
	}

	return summary, nil
}

// formatDate combines the entry's calendar date with the default time of
// day into the target CSV's date format.
func formatDate(date time.Time, clock time.Time) string {
	combined := time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local,
	)
	return combined.Format(dateLayout)
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, m := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:m[1]]); s != "" {
			sentences = append(sentences, s)
		}
		start = m[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func firstSentence(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return text
	}
	return sentences[0]
}

// extractTakeaway picks the first sentence stating an intention, which
// fills the Takeaways column.
func extractTakeaway(text string) string {
	for _, sentence := range splitSentences(text) {
		if intentionRe.MatchString(strings.ToLower(sentence)) {
			return sentence
		}
	}
	return ""
}
