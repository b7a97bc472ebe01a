package cleaning

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Internal protocol stamps such as "*CD257150518000*".
var protocolCode = regexp.MustCompile(`(\*|^)\s*cd\d{6,}\s*(\*|$)`)

// BoilerplateFilter recognizes institutional, signature and address lines
// that carry no analytical value wherever they appear on a page.
//
// Short standalone bill identifiers ("PL 1234/2025") are not recognized: the
// rule they came from never matched anything and is pending a definition.
type BoilerplateFilter struct {
	banned []string
}

// NewBoilerplateFilter returns a filter for the given phrases. Phrases are
// case folded once here; empty phrases are ignored.
func NewBoilerplateFilter(banned []string) *BoilerplateFilter {
	f := &BoilerplateFilter{
		banned: make([]string, 0, len(banned)),
	}
	fold := cases.Fold()
	for _, b := range banned {
		if b = fold.String(strings.TrimSpace(b)); b != "" {
			f.banned = append(f.banned, b)
		}
	}
	return f
}

// IsBoilerplate reports whether the normalized line should be removed.
func (f *BoilerplateFilter) IsBoilerplate(line string) bool {
	if line == "" {
		return false
	}

	folded := cases.Fold().String(line)
	for _, b := range f.banned {
		if strings.Contains(folded, b) {
			return true
		}
	}

	return protocolCode.MatchString(folded)
}
