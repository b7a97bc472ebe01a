package cleaning

// RepeatedLines holds the running headers and footers of a document.
type RepeatedLines struct {
	Headers map[string]struct{}
	Footers map[string]struct{}
}

// IsHeader reports whether text is a detected running header.
func (r RepeatedLines) IsHeader(text string) bool {
	_, ok := r.Headers[text]
	return ok
}

// IsFooter reports whether text is a detected running footer.
func (r RepeatedLines) IsFooter(text string) bool {
	_, ok := r.Footers[text]
	return ok
}

// zones are the header and footer cutoffs of a page.
type zones struct {
	top, bottom float64
	valid       bool
}

func pageZones(height, topFrac, bottomFrac float64) zones {
	if height <= 0 {
		return zones{}
	}
	return zones{
		top:    height * topFrac,
		bottom: height * (1 - bottomFrac),
		valid:  true,
	}
}

func (z zones) inTop(y float64) bool {
	return z.valid && y <= z.top
}

func (z zones) inBottom(y float64) bool {
	return z.valid && y >= z.bottom
}

// DetectHeadersFooters finds lines that sit in the top (or bottom) zone of
// at least threshold*len(pages) pages. Each page counts a given text once.
// Page numbers never become headers since they change from page to page;
// they are not excluded from footers, where the page number rule in the
// filter stage takes care of them anyway.
func DetectHeadersFooters(pages [][]Line, heights []float64, topFrac, bottomFrac, threshold float64) RepeatedLines {
	var (
		topCount    = map[string]int{}
		bottomCount = map[string]int{}
	)

	for i, lines := range pages {
		z := pageZones(heightAt(heights, i), topFrac, bottomFrac)
		if !z.valid {
			continue
		}

		var (
			top    = map[string]struct{}{}
			bottom = map[string]struct{}{}
		)
		for _, aLine := range lines {
			if z.inTop(aLine.Top()) && !IsPageNumber(aLine.Text) {
				top[aLine.Text] = struct{}{}
			}
			if z.inBottom(aLine.Top()) {
				bottom[aLine.Text] = struct{}{}
			}
		}

		for text := range top {
			topCount[text]++
		}
		for text := range bottom {
			bottomCount[text]++
		}
	}

	minPages := threshold * float64(len(pages))

	return RepeatedLines{
		Headers: repeated(topCount, minPages),
		Footers: repeated(bottomCount, minPages),
	}
}

func repeated(counts map[string]int, minPages float64) map[string]struct{} {
	set := make(map[string]struct{})
	for text, count := range counts {
		if float64(count) >= minPages {
			set[text] = struct{}{}
		}
	}
	return set
}

func heightAt(heights []float64, i int) float64 {
	if i < len(heights) {
		return heights[i]
	}
	return 0
}
