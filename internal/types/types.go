package types

import (
	"time"
)

// Entry is one journal record extracted from one HTML export file.
// Date carries the calendar date only; the time of day is applied
// later from the run options.
type Entry struct {
	Date  time.Time
	Title string
	Body  string
}

// Summary holds the per-run counters reported at the end of an import.
type Summary struct {
	Scanned    int
	Skipped    int
	Duplicates int
	Appended   int
}
