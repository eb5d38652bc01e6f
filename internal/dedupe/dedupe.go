// Package dedupe detects journal rows that were already imported into the
// target CSV. The fingerprint is deliberately lossy: the first 10 bytes of
// the formatted date cell plus 40-rune prefixes of Notes and Reflections.
// Over-deduplication from the truncation is an accepted tradeoff.
package dedupe

import (
	"strings"
)

const (
	datePrefixLen = 10
	textPrefixLen = 40
)

// Key is the fingerprint of one CSV row.
type Key struct {
	Date        string
	Notes       string
	Reflections string
}

// NewKey builds the fingerprint from the raw cell values. Values are
// trimmed before truncation so trailing whitespace never splits keys.
func NewKey(date, notes, reflections string) Key {
	return Key{
		Date:        prefix(strings.TrimSpace(date), datePrefixLen),
		Notes:       prefix(strings.TrimSpace(notes), textPrefixLen),
		Reflections: prefix(strings.TrimSpace(reflections), textPrefixLen),
	}
}

// prefix truncates to at most n runes, never splitting a multibyte rune.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Set is the membership test against already-imported rows. It is built
// once from the target CSV at startup and grows as a run accepts rows,
// so one run never emits the same key twice.
type Set struct {
	seen map[Key]struct{}
}

func NewSet() *Set {
	return &Set{
		seen: make(map[Key]struct{}),
	}
}

func (s *Set) Contains(k Key) bool {
	_, ok := s.seen[k]
	return ok
}

func (s *Set) Add(k Key) {
	s.seen[k] = struct{}{}
}

func (s *Set) Len() int {
	return len(s.seen)
}
