package cleaning

import (
	"regexp"
	"strings"
	"unicode"
)

var annexTitle = regexp.MustCompile(`^ANEXO(\s+([IVXLCDM0-9]+|ÚNICO))?(\s*[-–—:].*)?$`)

const (
	maxAnnexTitleWords = 10
	minUppercaseRatio  = 0.90
)

// AnnexBoundary is the page index where the annex section starts.
type AnnexBoundary struct {
	Page  int
	Found bool
}

// NoAnnex is the boundary of a document without an annex.
var NoAnnex = AnnexBoundary{}

// IsAnnexTitle reports whether the normalized line looks like the title of
// an annex: "ANEXO", "ANEXO II", "ANEXO ÚNICO - TABELA" and so on. Titles are
// short, do not end with a period and are mostly uppercase. When strict is
// set the line must be entirely uppercase.
func IsAnnexTitle(line string, strict bool) bool {
	s := strings.TrimSpace(line)

	if !annexTitle.MatchString(s) {
		return false
	}

	if strings.HasSuffix(s, ".") || len(strings.Fields(s)) > maxAnnexTitleWords {
		return false
	}

	var letters, upper int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters > 0 && float64(upper)/float64(letters) < minUppercaseRatio {
		return false
	}

	if strict && s != strings.ToUpper(s) {
		return false
	}

	return true
}

// FindAnnexStart returns the page where the annex begins. A page is a
// candidate when one of its annex titles starts within topFrac of the page
// height. Only the last candidate is considered and only if it lies in the
// second half of the document, so that mentions of "ANEXO" in the body of
// the bill do not truncate it.
func FindAnnexStart(pages [][]Line, heights []float64, topFrac float64, strict bool) AnnexBoundary {
	last := -1
	for i, lines := range pages {
		height := heightAt(heights, i)
		if height <= 0 {
			continue
		}
		limit := height * topFrac
		for _, aLine := range lines {
			if aLine.Top() <= limit && IsAnnexTitle(aLine.Text, strict) {
				last = i
				break
			}
		}
	}

	if last < 0 || last < len(pages)/2 {
		return NoAnnex
	}

	return AnnexBoundary{Page: last, Found: true}
}
