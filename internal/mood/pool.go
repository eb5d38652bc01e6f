package mood

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Pool is the closed set of acceptable Mood values. Membership is
// case-insensitive; the casing of the first occurrence is canonical.
type Pool struct {
	ordered []string
	byLower map[string]string
}

func NewPool(moods ...string) *Pool {
	p := &Pool{
		byLower: make(map[string]string),
	}
	for _, m := range moods {
		p.Add(m)
	}
	return p
}

func (p *Pool) Add(mood string) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return
	}
	lower := strings.ToLower(mood)
	if _, ok := p.byLower[lower]; ok {
		return
	}
	p.byLower[lower] = mood
	p.ordered = append(p.ordered, mood)
}

// Canonical maps any casing of a pool member to its stored form.
func (p *Pool) Canonical(mood string) (string, bool) {
	canonical, ok := p.byLower[strings.ToLower(strings.TrimSpace(mood))]
	return canonical, ok
}

func (p *Pool) Contains(mood string) bool {
	_, ok := p.Canonical(mood)
	return ok
}

// Moods returns the members in insertion order.
func (p *Pool) Moods() []string {
	return p.ordered
}

func (p *Pool) Len() int {
	return len(p.ordered)
}

// LoadMoodsFile reads a one-mood-per-line file. Blank lines and lines
// starting with '#' are skipped. A missing file is not an error: the
// pool then consists only of moods observed in the CSV.
func LoadMoodsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open moods file: %w", err)
	}
	defer f.Close()

	var moods []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		moods = append(moods, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read moods file: %w", err)
	}
	return moods, nil
}
