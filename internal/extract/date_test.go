package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseDateHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Time
	}{
		{"portuguese", "quarta-feira, 29 de outubro de 2025", date(2025, time.October, 29)},
		{"portuguese cedilla", "1 de março de 2024", date(2024, time.March, 1)},
		{"portuguese folded", "1 de marco de 2024", date(2024, time.March, 1)},
		{"spanish", "miércoles, 29 de octubre de 2025", date(2025, time.October, 29)},
		{"french", "3 février 2025", date(2025, time.February, 3)},
		{"french first of month", "1er octobre 2025", date(2025, time.October, 1)},
		{"french august", "15 août 2023", date(2023, time.August, 15)},
		{"english month first", "October 29, 2025", date(2025, time.October, 29)},
		{"english day first", "29 October 2025", date(2025, time.October, 29)},
		{"mixed case", "29 DE OUTUBRO DE 2025", date(2025, time.October, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateHeader(tt.header)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateHeaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"no date", "just some words"},
		{"unknown month", "29 de brumário de 2025"},
		{"invalid day", "31 de fevereiro de 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateHeader(tt.header)
			assert.Error(t, err)
		})
	}
}
