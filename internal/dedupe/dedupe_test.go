package dedupe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyTruncation(t *testing.T) {
	long := strings.Repeat("abcde", 20)
	key := NewKey("2025 Wed Oct 29 12:00 PM", long, long)

	assert.Equal(t, "2025 Wed O", key.Date)
	assert.Len(t, []rune(key.Notes), 40)
	assert.Len(t, []rune(key.Reflections), 40)
}

func TestNewKeyMultibyte(t *testing.T) {
	long := strings.Repeat("ção", 30)
	key := NewKey("2025 Wed Oct 29 12:00 PM", long, "")

	runes := []rune(key.Notes)
	assert.Len(t, runes, 40)
	assert.Equal(t, []rune(long)[:40], runes)
}

func TestNewKeyTrimsBeforeTruncating(t *testing.T) {
	a := NewKey("  2025 Wed Oct 29", "  notes  ", "body")
	b := NewKey("2025 Wed Oct 29", "notes", "body")

	assert.Equal(t, b, a)
}

func TestNewKeyShortValues(t *testing.T) {
	key := NewKey("2025", "short", "")

	assert.Equal(t, "2025", key.Date)
	assert.Equal(t, "short", key.Notes)
	assert.Equal(t, "", key.Reflections)
}

func TestSet(t *testing.T) {
	set := NewSet()
	key := NewKey("2025 Wed Oct 29 12:00 PM", "notes", "reflections")

	assert.False(t, set.Contains(key))
	set.Add(key)
	assert.True(t, set.Contains(key))
	assert.Equal(t, 1, set.Len())

	set.Add(key)
	assert.Equal(t, 1, set.Len())

	other := NewKey("2025 Thu Oct 30 12:00 PM", "notes", "reflections")
	assert.False(t, set.Contains(other))
}
