package analyzer

import (
	"strings"
)

// knownSingulars lists irregular plurals and words that only look plural.
var knownSingulars = map[string]string{
	"series":    "series",
	"status":    "status",
	"analysis":  "analysis",
	"species":   "species",
	"news":      "news",
	"goods":     "goods",
	"children":  "child",
	"people":    "person",
	"men":       "man",
	"women":     "woman",
	"mice":      "mouse",
	"data":      "data",
	"media":     "media",
	"addresses": "address",
	"aliases":   "alias",
}

// singularize turns the JSON key of an array into a name for its elements.
// Only common English endings are handled.
func singularize(plural string) string {
	lower := strings.ToLower(plural)

	if singular, ok := knownSingulars[lower]; ok {
		if plural != lower && singular != "" {
			// keep the caller's leading capital
			return strings.ToUpper(singular[:1]) + singular[1:]
		}
		return singular
	}

	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return plural[:len(plural)-3] + "y"
	case strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"), strings.HasSuffix(lower, "xes"):
		return plural[:len(plural)-2]
	case strings.HasSuffix(lower, "ss"), strings.HasSuffix(lower, "us"), strings.HasSuffix(lower, "is"):
		return plural
	case strings.HasSuffix(lower, "s") && len(lower) > 1:
		return plural[:len(plural)-1]
	}
	return plural
}
