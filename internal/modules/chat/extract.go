package chat

import (
	"regexp"
	"strings"
)

// locationPattern matches "LOCATION: City, Country" up to the end of the line.
var locationPattern = regexp.MustCompile(`(?i)LOCATION:\s*([^,]+),\s*([^\n]+)`)

// segmentCutset strips whitespace plus the brackets and emphasis the model
// tends to wrap around the marker ("**LOCATION:** [Paris, France]").
const segmentCutset = " \t\r\n*[]"

// ExtractLocations returns every "City, Country" marked in text, in order of
// appearance and with duplicates kept. Text without a marker yields nil.
func ExtractLocations(text string) []string {
	matches := locationPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		city := strings.Trim(m[1], segmentCutset)
		country := strings.Trim(m[2], segmentCutset)
		if city == "" || country == "" {
			continue
		}
		out = append(out, city+", "+country)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
