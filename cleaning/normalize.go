package cleaning

import (
	"regexp"
	"strings"
)

// Dot leaders, underscores, bullets and ellipses used as visual filler.
var noiseRun = regexp.MustCompile(`[_'.·•●◦▪▫⋅∙…]{3,}`)

// Normalize replaces runs of three or more filler glyphs with a space,
// collapses whitespace and trims the result. Normalize(Normalize(s)) equals
// Normalize(s) for every s.
func Normalize(s string) string {
	s = noiseRun.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
