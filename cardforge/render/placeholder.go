package render

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The placeholder vocabulary is a wire contract with template authoring:
// exactly these path tokens resolve, everything else inside {{...}} is left
// verbatim.
const (
	highlightsFallback = "No highlights available"

	sentinelPlayerName   = "Player Name"
	sentinelTeamPosition = "Team • Position"
)

// ResolvePlaceholders substitutes every occurrence of the recognized
// {{path.to.field}} tokens in content, then applies the two legacy literal
// sentinels kept for pre-token templates. It is pure and, on output that
// contains no further tokens, idempotent.
func ResolvePlaceholders(content string, data *CardData) string {
	if content == "" {
		return content
	}
	out := substituteTokens(content, data)
	out = substituteSentinels(out, data)
	return out
}

func substituteTokens(content string, data *CardData) string {
	if !strings.Contains(content, "{{") {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	for {
		open := strings.Index(content, "{{")
		if open < 0 {
			b.WriteString(content)
			break
		}
		rest := content[open+2:]
		close := strings.Index(rest, "}}")
		if close < 0 {
			b.WriteString(content)
			break
		}
		path := rest[:close]
		b.WriteString(content[:open])
		if value, ok := lookupToken(path, data); ok {
			b.WriteString(value)
			content = rest[close+2:]
		} else {
			// Unrecognized open: emit the braces and rescan right after
			// them, so a recognized token nested past stray braces still
			// resolves.
			b.WriteString("{{")
			content = rest
		}
	}
	return b.String()
}

func lookupToken(path string, data *CardData) (string, bool) {
	switch path {
	case "player.name":
		return data.Player.Name, true
	case "player.team":
		return data.Player.Team, true
	case "player.position":
		return data.Player.Position, true
	case "player.jerseyNumber":
		return string(data.Player.JerseyNumber), true
	case "player.year":
		if data.Player.Year == nil {
			return "", true
		}
		return strconv.Itoa(*data.Player.Year), true
	case "player.throws":
		return capitalize(data.Player.Throws), true
	case "customFields.careerHighlights":
		// Absent resolves to the fallback; present-but-empty stays empty.
		if v, ok := data.CustomFields["careerHighlights"]; ok {
			return string(v), true
		}
		return highlightsFallback, true
	}
	return "", false
}

func substituteSentinels(content string, data *CardData) string {
	if name := data.Player.Name; name != "" && strings.Contains(content, sentinelPlayerName) {
		content = strings.ReplaceAll(content, sentinelPlayerName, name)
	}
	if strings.Contains(content, sentinelTeamPosition) {
		team, position := data.Player.Team, data.Player.Position
		var joined string
		switch {
		case team != "" && position != "":
			joined = team + " • " + position
		case team != "":
			joined = team
		case position != "":
			joined = position
		default:
			// Neither present: the sentinel stays as authored.
			return content
		}
		content = strings.ReplaceAll(content, sentinelTeamPosition, joined)
	}
	return content
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
