package cleaning

import (
	"strings"
)

// Rect is the bounding box of a text block.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// TextBlock is a positioned piece of raw text, possibly spanning several lines.
type TextBlock struct {
	Rect Rect   `json:"rect"`
	Text string `json:"text"`
}

// Page is a single page of a document. Height must be positive for the page
// to take part in zone based classification.
type Page struct {
	Height float64     `json:"height"`
	Blocks []TextBlock `json:"blocks"`
}

// Document is an ordered sequence of pages.
type Document struct {
	Pages []Page `json:"pages"`
}

// Line is a normalized line of text along with the box of its source block.
type Line struct {
	Rect Rect
	Text string
}

// Top returns the top coordinate of the line's box.
func (l Line) Top() float64 {
	return l.Rect.Y0
}

// PageLines splits every block of the page into normalized lines, keeping
// each line's source box. Lines that normalize to nothing are dropped.
func PageLines(page Page) []Line {
	lines := make([]Line, 0, len(page.Blocks))
	for _, block := range page.Blocks {
		for _, raw := range splitLines(block.Text) {
			text := Normalize(raw)
			if text == "" {
				continue
			}
			lines = append(lines, Line{Rect: block.Rect, Text: text})
		}
	}
	return lines
}

func documentLines(doc Document) [][]Line {
	pages := make([][]Line, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		pages = append(pages, PageLines(page))
	}
	return pages
}

func pageHeights(doc Document) []float64 {
	heights := make([]float64, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		heights = append(heights, page.Height)
	}
	return heights
}

// splitLines breaks s on the same boundaries as a universal newline splitter.
// Empty lines are dropped.
func splitLines(s string) []string {
	return strings.FieldsFunc(s, isLineBoundary)
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
