package cleaning

import (
	"regexp"
	"strings"
)

var pageNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,4}$`),
	regexp.MustCompile(`(?i)^p[áa]gina\s+\d{1,4}(\s+de\s+\d{1,4})?$`),
	regexp.MustCompile(`^\d{1,4}\s*/\s*\d{1,4}$`),
}

// IsPageNumber reports whether line is a pagination artifact such as "3",
// "Página 3 de 10" or "3/25".
func IsPageNumber(line string) bool {
	t := strings.TrimSpace(line)
	for _, re := range pageNumberPatterns {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}
