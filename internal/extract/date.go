package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sentir/internal/utils"
)

// monthsByToken maps folded lowercase month names to month numbers for the
// locales the journal export is known to use (Portuguese, English, Spanish,
// French). Keys are stored pre-folded, so lookups must fold first.
var monthsByToken = map[string]time.Month{
	// Portuguese
	"janeiro":   time.January,
	"fevereiro": time.February,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
	// English
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
	// Spanish
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
	// French
	"janvier":  time.January,
	"fevrier":  time.February,
	"mars":     time.March,
	"avril":    time.April,
	"mai":      time.May,
	"juin":     time.June,
	"juillet":  time.July,
	"aout":     time.August,
	"octobre":  time.October,
	"novembre": time.November,
	"decembre": time.December,
}

// datePattern binds a header shape to the capture groups holding each part.
type datePattern struct {
	re    *regexp.Regexp
	day   int
	month int
	year  int
}

var datePatterns = []datePattern{
	// "29 de outubro de 2025" (pt/es)
	{regexp.MustCompile(`(\d{1,2}) de (\p{L}+) de (\d{4})`), 1, 2, 3},
	// "29 octobre 2025", "1er octobre 2025", "29 october 2025" (fr/en)
	{regexp.MustCompile(`(\d{1,2})(?:er)? (\p{L}+) (\d{4})`), 1, 2, 3},
	// "october 29, 2025" (en)
	{regexp.MustCompile(`(\p{L}+) (\d{1,2}), (\d{4})`), 2, 1, 3},
}

// ParseDateHeader extracts a calendar date from a localized page header such
// as "quarta-feira, 29 de outubro de 2025". The header is folded before the
// month token lookup, so diacritics never matter.
func ParseDateHeader(header string) (time.Time, error) {
	folded := utils.Fold(strings.TrimSpace(header))

	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}

		month, ok := monthsByToken[m[p.month]]
		if !ok {
			continue
		}

		day, err := strconv.Atoi(m[p.day])
		if err != nil {
			continue
		}
		year, err := strconv.Atoi(m[p.year])
		if err != nil {
			continue
		}

		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		if date.Day() != day || date.Month() != month {
			return time.Time{}, fmt.Errorf("invalid day %d for %s %d", day, month, year)
		}
		return date, nil
	}

	return time.Time{}, fmt.Errorf("no recognizable date in header %q", header)
}
