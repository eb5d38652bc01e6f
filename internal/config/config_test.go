package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions(t *testing.T) *Options {
	t.Helper()
	dir := t.TempDir()

	entries := filepath.Join(dir, "entries")
	require.NoError(t, os.Mkdir(entries, 0o755))

	csvPath := filepath.Join(dir, "feelings.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Date,Mood\n"), 0o644))

	return &Options{
		CSVPath:    csvPath,
		EntriesDir: entries,
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	opts := validOptions(t)
	require.NoError(t, opts.Validate())

	assert.Equal(t, "12:00 PM", opts.DefaultTime)
	assert.Equal(t, "gpt-4o-mini", opts.LLMModel)
	assert.Equal(t, ProviderOpenAI, opts.LLMProvider)
}

func TestValidateRejectsBadTime(t *testing.T) {
	opts := validOptions(t)
	opts.DefaultTime = "25:99"
	assert.Error(t, opts.Validate())
}

func TestValidateRejectsBadProvider(t *testing.T) {
	opts := validOptions(t)
	opts.LLMProvider = "carrier-pigeon"
	assert.Error(t, opts.Validate())
}

func TestValidateRequiresEntriesDir(t *testing.T) {
	opts := validOptions(t)
	opts.EntriesDir = filepath.Join(t.TempDir(), "missing")
	assert.Error(t, opts.Validate())

	opts = validOptions(t)
	opts.EntriesDir = ""
	assert.Error(t, opts.Validate())
}

func TestValidateRequiresCSV(t *testing.T) {
	opts := validOptions(t)
	opts.CSVPath = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, opts.Validate())
}

func TestDefaultClock(t *testing.T) {
	opts := validOptions(t)
	opts.DefaultTime = "9:30 AM"
	require.NoError(t, opts.Validate())

	clock := opts.DefaultClock()
	assert.Equal(t, 9, clock.Hour())
	assert.Equal(t, 30, clock.Minute())
}
