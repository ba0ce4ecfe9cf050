package render

import "strings"

// statAbbreviations maps canonical stat keys to their short display labels.
// The output feeds both rendering and the stat table's width estimation, so
// entries must stay stable.
var statAbbreviations = map[string]string{
	// Offensive stats
	"atBats":             "AB",
	"hits":               "H",
	"runs":               "R",
	"doubles":            "2B",
	"triples":            "3B",
	"homeRuns":           "HR",
	"runsBattedIn":       "RBI",
	"stolenBases":        "SB",
	"walks":              "BB",
	"strikeouts":         "SO",
	"battingAverage":     "AVG",
	"onBasePercentage":   "OBP",
	"sluggingPercentage": "SLG",
	"onBasePlusSlugging": "OPS",
	"totalBases":         "TB",
	"hitByPitch":         "HBP",
	"sacrificeFlies":     "SF",
	"plateAppearances":   "PA",

	// Pitching stats
	"wins":           "W",
	"losses":         "L",
	"games":          "G",
	"gamesStarted":   "GS",
	"completeGames":  "CG",
	"shutouts":       "SHO",
	"saves":          "SV",
	"inningsPitched": "IP",
	"earnedRuns":     "ER",
	"era":            "ERA",
	"whip":           "WHIP",
	"strikeoutsPer9": "K/9",
	"walksPer9":      "BB/9",
	"hitsPer9":       "H/9",
	"winPercentage":  "W%",
	"hitBatters":     "HBP",
	"wildPitches":    "WP",
}

var statAbbreviationsLower = func() map[string]string {
	m := make(map[string]string, len(statAbbreviations))
	for k, v := range statAbbreviations {
		m[strings.ToLower(k)] = v
	}
	return m
}()

// Abbreviate returns the display abbreviation for a stat key: exact match
// first, then case-insensitive, then the key unchanged (it may already be an
// abbreviation, or a custom stat).
func Abbreviate(key string) string {
	if abbrev, ok := statAbbreviations[key]; ok {
		return abbrev
	}
	if abbrev, ok := statAbbreviationsLower[strings.ToLower(key)]; ok {
		return abbrev
	}
	return key
}
