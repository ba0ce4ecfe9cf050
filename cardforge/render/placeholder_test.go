package render

import (
	"testing"
)

func intp(v int) *int { return &v }

func testCardData() *CardData {
	return &CardData{
		Player: Player{
			Name:         "Babe Ruth",
			Team:         "Yankees",
			Position:     "RF",
			JerseyNumber: "3",
			Year:         intp(1927),
			Throws:       "left",
		},
		CustomFields: map[string]FlexString{
			"careerHighlights": "714 home runs",
		},
	}
}

func TestResolvePlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		content string
		data    *CardData
		want    string
	}{
		{
			name:    "player name token",
			content: "{{player.name}}",
			data:    testCardData(),
			want:    "Babe Ruth",
		},
		{
			name:    "all occurrences replaced",
			content: "#{{player.jerseyNumber}} wears #{{player.jerseyNumber}}",
			data:    testCardData(),
			want:    "#3 wears #3",
		},
		{
			name:    "mixed tokens in one string",
			content: "{{player.name}} ({{player.team}}, {{player.position}})",
			data:    testCardData(),
			want:    "Babe Ruth (Yankees, RF)",
		},
		{
			name:    "throws is capitalized",
			content: "Throws: {{player.throws}}",
			data:    testCardData(),
			want:    "Throws: Left",
		},
		{
			name:    "year renders as number",
			content: "Year: {{player.year}}",
			data:    testCardData(),
			want:    "Year: 1927",
		},
		{
			name:    "missing year renders empty",
			content: "Year: {{player.year}}",
			data:    &CardData{},
			want:    "Year: ",
		},
		{
			name:    "unrecognized token left verbatim",
			content: "{{player.nickname}}",
			data:    testCardData(),
			want:    "{{player.nickname}}",
		},
		{
			name:    "unclosed token left verbatim",
			content: "{{player.name",
			data:    testCardData(),
			want:    "{{player.name",
		},
		{
			name:    "token nested past stray braces still resolves",
			content: "{{x {{player.name}} y",
			data:    testCardData(),
			want:    "{{x Babe Ruth y",
		},
		{
			name:    "token wrapped in stray brace pairs",
			content: "{{ {{player.team}} }}",
			data:    testCardData(),
			want:    "{{ Yankees }}",
		},
		{
			name:    "unrecognized then recognized token",
			content: "{{unknown}} {{player.name}}",
			data:    testCardData(),
			want:    "{{unknown}} Babe Ruth",
		},
		{
			name:    "career highlights present",
			content: "{{customFields.careerHighlights}}",
			data:    testCardData(),
			want:    "714 home runs",
		},
		{
			name:    "career highlights absent uses fallback",
			content: "{{customFields.careerHighlights}}",
			data:    &CardData{},
			want:    "No highlights available",
		},
		{
			name:    "career highlights empty stays empty",
			content: "{{customFields.careerHighlights}}",
			data: &CardData{
				CustomFields: map[string]FlexString{"careerHighlights": ""},
			},
			want: "",
		},
		{
			name:    "empty content",
			content: "",
			data:    testCardData(),
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlaceholders(tt.content, tt.data)
			if got != tt.want {
				t.Errorf("ResolvePlaceholders(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestResolvePlaceholdersSentinels(t *testing.T) {
	tests := []struct {
		name    string
		content string
		data    *CardData
		want    string
	}{
		{
			name:    "player name sentinel replaced",
			content: "Player Name",
			data:    testCardData(),
			want:    "Babe Ruth",
		},
		{
			name:    "player name sentinel kept when name empty",
			content: "Player Name",
			data:    &CardData{},
			want:    "Player Name",
		},
		{
			name:    "team position sentinel both present",
			content: "Team • Position",
			data:    testCardData(),
			want:    "Yankees • RF",
		},
		{
			name:    "team position sentinel team only",
			content: "Team • Position",
			data:    &CardData{Player: Player{Team: "Yankees"}},
			want:    "Yankees",
		},
		{
			name:    "team position sentinel position only",
			content: "Team • Position",
			data:    &CardData{Player: Player{Position: "RF"}},
			want:    "RF",
		},
		{
			name:    "team position sentinel neither present",
			content: "Team • Position",
			data:    &CardData{},
			want:    "Team • Position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlaceholders(tt.content, tt.data)
			if got != tt.want {
				t.Errorf("ResolvePlaceholders(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestResolvePlaceholdersIdempotent(t *testing.T) {
	data := testCardData()
	contents := []string{
		"{{player.name}} - {{player.team}}",
		"Player Name",
		"Team • Position",
		"Jersey: #{{player.jerseyNumber}}",
		"{{customFields.careerHighlights}}",
	}
	for _, content := range contents {
		once := ResolvePlaceholders(content, data)
		twice := ResolvePlaceholders(once, data)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", content, once, twice)
		}
	}
}
