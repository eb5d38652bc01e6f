package csvfile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentir/internal/dedupe"
)

const testHeader = "Date,Mood,Energy,Notes,Reflections,Takeaways\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feelings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readBack(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestOpenRequiresMoodColumn(t *testing.T) {
	path := writeCSV(t, "Date,Notes\n")
	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mood")
}

func TestColumnLookupIsCaseInsensitive(t *testing.T) {
	path := writeCSV(t, testHeader)
	f, err := Open(path)
	require.NoError(t, err)

	i, ok := f.Column("mood")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = f.Column("Nope")
	assert.False(t, ok)
}

func TestExistingMoods(t *testing.T) {
	path := writeCSV(t, testHeader+
		"2025 Wed Oct 29 12:00 PM,Calm;Grateful,,n1,r1,\n"+
		"2025 Thu Oct 30 12:00 PM, Calm ,,n2,r2,\n"+
		"2025 Fri Oct 31 12:00 PM,,,n3,r3,\n")
	f, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Calm", "Grateful"}, f.ExistingMoods())
}

func TestExistingKeys(t *testing.T) {
	path := writeCSV(t, testHeader+
		"2025 Wed Oct 29 12:00 PM,Calm,,some notes,some reflections,\n")
	f, err := Open(path)
	require.NoError(t, err)

	keys := f.ExistingKeys()
	assert.Equal(t, 1, keys.Len())
	assert.True(t, keys.Contains(dedupe.NewKey("2025 Wed Oct 29 12:00 PM", "some notes", "some reflections")))
}

func TestNewRowHeaderOrder(t *testing.T) {
	path := writeCSV(t, "Mood,Extra,Date,Notes\n")
	f, err := Open(path)
	require.NoError(t, err)

	row := f.NewRow(map[string]string{
		ColDate:        "2025 Wed Oct 29 12:00 PM",
		ColMood:        "Calm",
		ColNotes:       "n",
		ColReflections: "ignored, column absent",
	})

	assert.Equal(t, []string{"Calm", "", "2025 Wed Oct 29 12:00 PM", "n"}, row)
}

func TestAppendPreservesExistingRows(t *testing.T) {
	path := writeCSV(t, testHeader+
		"2025 Wed Oct 29 12:00 PM,Calm,,n1,r1,\n")
	f, err := Open(path)
	require.NoError(t, err)

	row := f.NewRow(map[string]string{
		ColDate: "2025 Thu Oct 30 12:00 PM",
		ColMood: "Grateful",
	})
	require.NoError(t, f.Append([][]string{row}))

	rows := readBack(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025 Wed Oct 29 12:00 PM", rows[1][0])
	assert.Equal(t, "Grateful", rows[2][1])
}

func TestAppendAfterMissingTrailingNewline(t *testing.T) {
	// Last row has no terminating newline; the appended row must not be
	// glued onto it.
	path := writeCSV(t, testHeader+
		"2025 Wed Oct 29 12:00 PM,Calm,,n1,r1,")
	f, err := Open(path)
	require.NoError(t, err)

	row := f.NewRow(map[string]string{
		ColDate: "2025 Thu Oct 30 12:00 PM",
		ColMood: "Grateful",
	})
	require.NoError(t, f.Append([][]string{row}))

	rows := readBack(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "Calm", rows[1][1])
	assert.Equal(t, "2025 Thu Oct 30 12:00 PM", rows[2][0])
}

func TestAppendNothing(t *testing.T) {
	path := writeCSV(t, testHeader)
	f, err := Open(path)
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Append(nil))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
