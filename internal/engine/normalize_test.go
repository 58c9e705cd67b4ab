package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{"day-month-year dashes", "08-05-2022", time.Date(2022, 5, 8, 0, 0, 0, 0, time.UTC), true},
		{"day-month-year slashes", "08/05/2022", time.Date(2022, 5, 8, 0, 0, 0, 0, time.UTC), true},
		{"iso", "2022-05-08", time.Date(2022, 5, 8, 0, 0, 0, 0, time.UTC), true},
		{"surrounding whitespace", "  08-05-2022 ", time.Date(2022, 5, 8, 0, 0, 0, 0, time.UTC), true},
		{"spreadsheet serial", "44689", time.Date(2022, 5, 8, 0, 0, 0, 0, time.UTC), true},
		{"fractional serial truncates", "44689.75", time.Date(2022, 5, 8, 0, 0, 0, 0, time.UTC), true},
		{"serial day zero", "0", time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC), true},
		{"blank", "", time.Time{}, false},
		{"nan sentinel", "nan", time.Time{}, false},
		{"none sentinel", "None", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
		{"month out of range", "31-13-2022", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"45", 45, true},
		{" 45.5 ", 45.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"forty", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseFloat(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseFloat(%q) = %v, %v, want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"nan", ""},
		{"NaN", ""},
		{" none ", ""},
		{"NONE", ""},
		{"Raining", "Raining"},
		{"", ""},
		{"nantucket", "nantucket"}, // only the exact sentinel collapses
	}

	for _, tt := range tests {
		if got := CleanText(tt.raw); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, daysBetween(a, a))
	// June has 30 days.
	assert.Equal(t, 30, daysBetween(a, a.AddDate(0, 1, 0)))
	assert.Equal(t, 31, daysBetween(a.AddDate(0, 1, 0), a.AddDate(0, 2, 0)))
	assert.Equal(t, -1, daysBetween(a, a.AddDate(0, 0, -1)))
	assert.Equal(t, 1825, daysBetween(a.AddDate(0, 0, -1825), a))
}

func TestFormatTonnes(t *testing.T) {
	assert.Equal(t, "50", formatTonnes(50))
	assert.Equal(t, "45.5", formatTonnes(45.5))
}
