// Package mood resolves the Mood cell for an entry: deterministic keyword
// rules first, then an optional external text-classification fallback.
// The result is always either empty or ';'-joined members of the pool.
package mood

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"sentir/internal/utils"
)

// maxMoods caps how many moods a single row carries.
const maxMoods = 2

// snippetLen bounds the text sent to the external fallback.
const snippetLen = 2000

// Fallback is the external classification stage. Choose returns the raw
// response; the resolver validates it against the pool.
type Fallback interface {
	Name() string
	Choose(ctx context.Context, text string, moods []string) (string, error)
}

// poolToken matches one pool mood's name as a whole token of entry text.
type poolToken struct {
	mood string
	re   *regexp.Regexp
}

type Resolver struct {
	pool     *Pool
	rules    *Ruleset
	tokens   []poolToken
	fallback Fallback
	logger   *slog.Logger
}

// NewResolver wires the two stages. A nil fallback disables the external
// stage entirely, which also activates the neutral default list.
func NewResolver(pool *Pool, rules *Ruleset, fallback Fallback, logger *slog.Logger) *Resolver {
	if rules == nil {
		rules = DefaultRules()
	}

	tokens := make([]poolToken, 0, pool.Len())
	for _, mood := range pool.Moods() {
		tokens = append(tokens, poolToken{
			mood: mood,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(utils.Fold(mood)) + `\b`),
		})
	}

	return &Resolver{
		pool:     pool,
		rules:    rules,
		tokens:   tokens,
		fallback: fallback,
		logger:   logger,
	}
}

// Resolve picks moods for one entry. label identifies the entry in logs.
func (r *Resolver) Resolve(ctx context.Context, label, text string) string {
	chosen := r.deterministic(text)
	if len(chosen) > 0 {
		return strings.Join(chosen, ";")
	}

	if r.fallback == nil {
		for _, neutral := range r.rules.Neutral {
			if canonical, ok := r.pool.Canonical(neutral); ok {
				return canonical
			}
		}
		return ""
	}

	return strings.Join(r.external(ctx, label, text), ";")
}

// deterministic runs the rule table over the folded text, then matches
// pool mood names themselves as whole tokens.
func (r *Resolver) deterministic(text string) []string {
	folded := utils.Fold(text)

	var chosen []string
	for _, rule := range r.rules.Rules {
		if len(chosen) >= maxMoods {
			break
		}
		if !rule.re.MatchString(folded) {
			continue
		}
		for _, preference := range rule.Moods {
			canonical, ok := r.pool.Canonical(preference)
			if !ok || slices.Contains(chosen, canonical) {
				continue
			}
			chosen = append(chosen, canonical)
			break
		}
	}

	for _, token := range r.tokens {
		if len(chosen) >= maxMoods {
			break
		}
		if slices.Contains(chosen, token.mood) {
			continue
		}
		if token.re.MatchString(folded) {
			chosen = append(chosen, token.mood)
		}
	}

	return chosen
}

// external asks the fallback service and keeps only responses that name
// pool members. Any failure resolves to no mood; the row is still written.
func (r *Resolver) external(ctx context.Context, label, text string) []string {
	if r.pool.Len() == 0 {
		return nil
	}

	raw, err := r.fallback.Choose(ctx, snippet(text), r.pool.Moods())
	if err != nil {
		r.logger.Warn("Mood fallback failed", "provider", r.fallback.Name(), "entry", label, "error", err)
		return nil
	}

	var chosen []string
	for _, part := range strings.Split(raw, ";") {
		canonical, ok := r.pool.Canonical(part)
		if !ok {
			if strings.TrimSpace(part) != "" {
				r.logger.Debug("Mood fallback returned out-of-list value", "entry", label, "value", strings.TrimSpace(part))
			}
			continue
		}
		if slices.Contains(chosen, canonical) {
			continue
		}
		chosen = append(chosen, canonical)
		if len(chosen) >= maxMoods {
			break
		}
	}
	return chosen
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen])
}
