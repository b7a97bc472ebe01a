package cleaning

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrNoText is returned when nothing is left of a document after cleaning.
var ErrNoText = errors.New("no extractable text")

// Discovery holds the document-wide decisions made before any line is dropped.
type Discovery struct {
	Repeated RepeatedLines
	Annex    AnnexBoundary
}

// Cleaner runs the two-stage cleaning heuristic. It is safe for concurrent
// use by multiple goroutines.
type Cleaner struct {
	cfg         Config
	boilerplate *BoilerplateFilter
	logger      *zap.Logger
}

type Option func(*Cleaner)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

// NewCleaner validates cfg and returns a cleaner bound to a copy of it.
func NewCleaner(cfg Config, options ...Option) (*Cleaner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.BannedSubstrings = append([]string(nil), cfg.BannedSubstrings...)

	c := &Cleaner{
		cfg:         cfg,
		boilerplate: NewBoilerplateFilter(cfg.BannedSubstrings),
		logger:      zap.NewNop(),
	}

	for _, o := range options {
		o(c)
	}

	return c, nil
}

// Config returns the configuration the cleaner was built with.
func (c *Cleaner) Config() Config {
	cfg := c.cfg
	cfg.BannedSubstrings = append([]string(nil), c.cfg.BannedSubstrings...)
	return cfg
}

// Discover inspects the whole document and returns its running headers and
// footers and, when annex removal is enabled, where the annex starts.
func (c *Cleaner) Discover(doc Document) Discovery {
	return c.discover(documentLines(doc), pageHeights(doc))
}

func (c *Cleaner) discover(pages [][]Line, heights []float64) Discovery {
	d := Discovery{
		Repeated: DetectHeadersFooters(pages, heights, c.cfg.TopFrac, c.cfg.BottomFrac, c.cfg.RepeatThreshold),
		Annex:    NoAnnex,
	}
	if c.cfg.RemoveFromAnnex {
		d.Annex = FindAnnexStart(pages, heights, c.cfg.AnnexTopFrac, c.cfg.AnnexStrictUppercase)
	}
	return d
}

// FilterPage drops boilerplate, running headers and footers and page numbers
// from the lines of a single page and joins what is left with spaces.
func (c *Cleaner) FilterPage(lines []Line, height float64, d Discovery) string {
	z := pageZones(height, c.cfg.TopFrac, c.cfg.BottomFrac)

	keep := make([]string, 0, len(lines))
	for _, aLine := range lines {
		var (
			y      = aLine.Top()
			top    = z.inTop(y)
			bottom = z.inBottom(y)
		)
		switch {
		case c.boilerplate.IsBoilerplate(aLine.Text):
			continue
		case top && d.Repeated.IsHeader(aLine.Text):
			continue
		case bottom && d.Repeated.IsFooter(aLine.Text):
			continue
		case (top || bottom) && IsPageNumber(aLine.Text):
			continue
		}
		keep = append(keep, aLine.Text)
	}

	return strings.TrimSpace(strings.Join(keep, " "))
}

// Clean returns the cleaned text of the document, one line per surviving
// page. It returns ErrNoText when nothing survives, including for a
// document without pages.
func (c *Cleaner) Clean(doc Document) (string, error) {
	var (
		pages   = documentLines(doc)
		heights = pageHeights(doc)
		d       = c.discover(pages, heights)
	)

	c.logger.Debug("discovered document structure",
		zap.Int("pages", len(pages)),
		zap.Int("headers", len(d.Repeated.Headers)),
		zap.Int("footers", len(d.Repeated.Footers)),
	)
	if d.Annex.Found {
		c.logger.Debug("annex detected, truncating", zap.Int("page", d.Annex.Page+1))
	}

	cleaned := make([]string, 0, len(pages))
	for i, lines := range pages {
		if d.Annex.Found && i >= d.Annex.Page {
			break
		}
		if text := c.FilterPage(lines, heights[i], d); text != "" {
			cleaned = append(cleaned, text)
		}
	}

	text := strings.TrimSpace(strings.Join(cleaned, "\n"))
	if text == "" {
		return "", ErrNoText
	}

	return text, nil
}
