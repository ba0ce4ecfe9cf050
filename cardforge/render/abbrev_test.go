package render

import "testing"

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"atBats", "AB"},
		{"hits", "H"},
		{"homeRuns", "HR"},
		{"battingAverage", "AVG"},
		{"era", "ERA"},
		{"strikeoutsPer9", "K/9"},
		{"winPercentage", "W%"},

		// Case-insensitive fallback
		{"ATBATS", "AB"},
		{"homeruns", "HR"},
		{"Era", "ERA"},

		// Unknown keys pass through unchanged
		{"AB", "AB"},
		{"grandSlams", "grandSlams"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Abbreviate(tt.key); got != tt.want {
				t.Errorf("Abbreviate(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
