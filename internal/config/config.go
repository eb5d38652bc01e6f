// Package config holds the run options and their validation, plus the
// optional .env credential loading for the external mood fallback.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// TimeLayout parses the --time flag ("12:00 PM").
const TimeLayout = "3:04 PM"

// Fallback providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Options are the run options, filled from CLI flags.
type Options struct {
	CSVPath     string
	EntriesDir  string
	DefaultTime string
	MoodsFile   string
	RulesFile   string
	DryRun      bool
	Force       bool
	LLMOff      bool
	LLMModel    string
	LLMProvider string
	LLMDebug    bool
	Verbose     bool
}

// Validate fills defaults and checks the required inputs. Missing entries
// directory or target CSV are the only fatal startup conditions.
func (o *Options) Validate() error {
	if o.DefaultTime == "" {
		o.DefaultTime = "12:00 PM"
	}
	if _, err := time.Parse(TimeLayout, o.DefaultTime); err != nil {
		return fmt.Errorf("invalid default time %q: %w", o.DefaultTime, err)
	}

	if o.LLMModel == "" {
		o.LLMModel = "gpt-4o-mini"
	}
	if o.LLMProvider == "" {
		o.LLMProvider = ProviderOpenAI
	}
	switch o.LLMProvider {
	case ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("invalid fallback provider %q (must be %q or %q)", o.LLMProvider, ProviderOpenAI, ProviderOllama)
	}

	if o.EntriesDir == "" {
		return fmt.Errorf("entries directory is required")
	}
	info, err := os.Stat(o.EntriesDir)
	if err != nil {
		return fmt.Errorf("entries directory %s: %w", o.EntriesDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("entries path %s is not a directory", o.EntriesDir)
	}

	if o.CSVPath == "" {
		return fmt.Errorf("target CSV path is required")
	}
	if _, err := os.Stat(o.CSVPath); err != nil {
		return fmt.Errorf("target CSV %s: %w", o.CSVPath, err)
	}

	return nil
}

// DefaultClock returns the validated time of day applied to every row.
func (o *Options) DefaultClock() time.Time {
	clock, err := time.Parse(TimeLayout, o.DefaultTime)
	if err != nil {
		clock, _ = time.Parse(TimeLayout, "12:00 PM")
	}
	return clock
}

// LoadEnv loads a .env file from the executable's directory, then the
// working directory. Variables already set in the environment win, so an
// exported OPENAI_API_KEY is never overridden.
func LoadEnv(logger *slog.Logger) {
	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), ".env"))
	}
	candidates = append(candidates, ".env")

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Debug("Skipping unreadable env file", "path", path, "error", err)
			continue
		}
		logger.Debug("Loaded env file", "path", path)
	}
}
