package report

import "testing"

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii untouched", "Crane 1 OK", "Crane 1 OK"},
		{"diacritics folded", "Café Zürich naïve", "Cafe Zurich naive"},
		{"en and em dashes", "2020–2025 — overdue", "2020-2025 - overdue"},
		{"smart quotes", "“brakes” and ‘hook’", `"brakes" and 'hook'`},
		{"degree sign", "35°C on deck", "35 deg C on deck"},
		{"multiply sign", "3×4 sling", "3x4 sling"},
		{"check mark", "inspected ✓", "inspected OK"},
		{"ellipsis and bullet", "• pending…", "* pending..."},
		{"unmapped wide runes dropped", "序号 hook", " hook"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transliterate(tt.input); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
