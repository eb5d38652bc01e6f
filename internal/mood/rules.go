package mood

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Rule maps a keyword pattern to an ordered list of mood preferences.
// Patterns are matched against folded lowercase entry text, so they can
// stay diacritic-free ("ansios" matches both "ansioso" and "ansiosíssimo").
type Rule struct {
	Pattern string   `toml:"pattern"`
	Moods   []string `toml:"moods"`

	re *regexp.Regexp
}

// Ruleset is the deterministic stage's configuration. Neutral lists the
// moods tried, in order, when no rule matches and the external fallback
// is disabled.
type Ruleset struct {
	Rules   []Rule   `toml:"rule"`
	Neutral []string `toml:"neutral"`
}

// DefaultRules covers the Portuguese emotion stems of typical entries
// plus a calm/positive group.
func DefaultRules() *Ruleset {
	rs := &Ruleset{
		Rules: []Rule{
			{Pattern: `\b(ansios|ansiedade|preocupad|nervos)`, Moods: []string{"Anxious", "Concerned", "Uneasy"}},
			{Pattern: `\b(depress|morrer|suicid|hopeless|sem razao)`, Moods: []string{"Depressed", "Hopeless", "Miserable", "Down"}},
			{Pattern: `\b(cansad|exaust|fatig)`, Moods: []string{"Exhausted", "Tired", "Fatigued"}},
			{Pattern: `\b(preso|prisao|trancad)`, Moods: []string{"Trapped"}},
			{Pattern: `\b(frustr|raiva|irrit|culpa|vergonh)`, Moods: []string{"Frustrated", "Peeved", "Guilty", "Ashamed"}},
			{Pattern: `\b(inspir|motivad|orgulh|confian)`, Moods: []string{"Inspired", "Motivated", "Proud"}},
			{Pattern: `\b(grat|feliz|bem|esperan|otimi)`, Moods: []string{"Grateful", "Hopeful", "Optimistic", "Good", "Content"}},
			{Pattern: `\b(calm|tranquil|seren|relax|paz)`, Moods: []string{"Calm", "Peaceful", "Relaxed", "Content"}},
		},
		Neutral: []string{"Thoughtful", "Mellow", "Calm", "Neutral", "Meh", "Balanced"},
	}
	if err := rs.compile(); err != nil {
		panic(err)
	}
	return rs
}

// LoadRules reads a user ruleset from a TOML file:
//
//	neutral = ["Calm", "Neutral"]
//
//	[[rule]]
//	pattern = '\b(saudade|nostalg)'
//	moods = ["Wistful", "Nostalgic"]
func LoadRules(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rs Ruleset
	if err := toml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s defines no rules", path)
	}
	if err := rs.compile(); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return &rs, nil
}

func (rs *Ruleset) compile() error {
	for i := range rs.Rules {
		if rs.Rules[i].Pattern == "" {
			return fmt.Errorf("rule %d has no pattern", i)
		}
		re, err := regexp.Compile(rs.Rules[i].Pattern)
		if err != nil {
			return fmt.Errorf("rule %d pattern: %w", i, err)
		}
		rs.Rules[i].re = re
	}
	return nil
}
