// Package csvfile gives header-order-driven access to the target
// mood-tracking CSV. The file's own header is the schema: rows are built
// with exactly one cell per header column, named columns are located
// case-insensitively, and writes only ever append.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"sentir/internal/dedupe"
)

// Column names the importer fills. Any other columns in the target header
// are preserved as empty cells.
const (
	ColDate        = "Date"
	ColMood        = "Mood"
	ColNotes       = "Notes"
	ColReflections = "Reflections"
	ColTakeaways   = "Takeaways"
)

type File struct {
	path    string
	header  []string
	index   map[string]int
	records [][]string
}

// Open reads the whole target CSV once. The file must exist and carry a
// header naming at least the Date and Mood columns.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read target CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("target CSV %s has no header", path)
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	file := &File{
		path:    path,
		header:  header,
		index:   index,
		records: rows[1:],
	}

	for _, required := range []string{ColDate, ColMood} {
		if _, ok := file.Column(required); !ok {
			return nil, fmt.Errorf("target CSV %s is missing the %s column", path, required)
		}
	}

	return file, nil
}

func (f *File) Header() []string {
	return f.header
}

func (f *File) Rows() int {
	return len(f.records)
}

// Column resolves a column name to its position, case-insensitively.
func (f *File) Column(name string) (int, bool) {
	i, ok := f.index[strings.ToLower(name)]
	return i, ok
}

func (f *File) cell(record []string, name string) string {
	i, ok := f.Column(name)
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ExistingMoods collects every mood already present in the Mood column.
// Cells hold one or more moods separated by ';'.
func (f *File) ExistingMoods() []string {
	seen := make(map[string]struct{})
	var moods []string
	for _, record := range f.records {
		for _, mood := range strings.Split(f.cell(record, ColMood), ";") {
			mood = strings.TrimSpace(mood)
			if mood == "" {
				continue
			}
			if _, ok := seen[mood]; ok {
				continue
			}
			seen[mood] = struct{}{}
			moods = append(moods, mood)
		}
	}
	return moods
}

// ExistingKeys fingerprints every row already in the file.
func (f *File) ExistingKeys() *dedupe.Set {
	keys := dedupe.NewSet()
	for _, record := range f.records {
		keys.Add(dedupe.NewKey(
			f.cell(record, ColDate),
			f.cell(record, ColNotes),
			f.cell(record, ColReflections),
		))
	}
	return keys
}

// NewRow lays the named values out in header order. Columns absent from
// the header are ignored except Date and Mood, which Open guarantees.
func (f *File) NewRow(values map[string]string) []string {
	row := make([]string, len(f.header))
	for name, value := range values {
		if i, ok := f.Column(name); ok {
			row[i] = value
		}
	}
	return row
}

// Append writes rows to the end of the file. Existing content is never
// touched; a file whose last row lacks a trailing newline gets one first
// so the new row is never glued onto it.
func (f *File) Append(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	// O_RDWR so the trailing-newline check can read the last byte;
	// O_APPEND still forces every write to the end.
	out, err := os.OpenFile(f.path, os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open target CSV for append: %w", err)
	}
	defer out.Close()

	if err := ensureTrailingNewline(out); err != nil {
		return err
	}

	writer := csv.NewWriter(out)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush target CSV: %w", err)
	}
	return nil
}

func ensureTrailingNewline(out *os.File) error {
	info, err := out.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat target CSV: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err := out.ReadAt(last, info.Size()-1); err != nil {
		return fmt.Errorf("failed to read target CSV tail: %w", err)
	}
	if last[0] == '\n' {
		return nil
	}

	if _, err := out.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to terminate last row: %w", err)
	}
	return nil
}
