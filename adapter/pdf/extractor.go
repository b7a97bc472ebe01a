package pdf

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/postscript/type1/names"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/dict"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"

	"github.com/camaradados/proptext/cleaning"
)

const (
	// A4 portrait, used when a page has no usable MediaBox.
	fallbackPageHeight = 842

	// Glyphs whose baselines are closer than this share a line.
	baselineTolerance = 2.0
)

// Decode reads a PDF and returns its pages as positioned text lines, one
// TextBlock per baseline, in top to bottom order. Coordinates are measured
// from the top of the page. Malformed fonts that make the PDF library
// panic are reported as errors.
func Decode(data io.ReadSeeker) (_ cleaning.Document, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("decode pdf: %v", p)
		}
	}()

	r, err := pdf.NewReader(data, nil)
	if err != nil {
		return cleaning.Document{}, fmt.Errorf("open pdf: %w", err)
	}

	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return cleaning.Document{}, fmt.Errorf("count pages: %w", err)
	}

	var (
		fontCache = newFonts(r)
		builder   *pageBuilder
	)

	contents := reader.New(r, nil)
	contents.TextEvent = func(op reader.TextEvent, arg float64) {
		switch op {
		case reader.TextEventSpace:
			if arg > 0.3*fontCache.spaceWidthOf(contents.TextFont) {
				builder.space()
			}
		case reader.TextEventNL, reader.TextEventMove:
			builder.space()
		}
	}
	contents.Character = func(c cid.CID, text string) error {
		if text == "" {
			text = fontCache.textOf(contents.TextFont, c)
		}

		x, y := contents.GetTextPositionDevice()
		builder.add(x, y, text)
		return nil
	}

	doc := cleaning.Document{Pages: make([]cleaning.Page, 0, numPages)}
	for i := 0; i < numPages; i++ {
		_, pageDict, err := pagetree.GetPage(r, i)
		if err != nil {
			return cleaning.Document{}, fmt.Errorf("get page %d: %w", i+1, err)
		}

		bottom, top := verticalBounds(r, pageDict)
		builder = newPageBuilder(bottom, top)

		if err := contents.ParsePage(pageDict, matrix.Identity); err != nil {
			return cleaning.Document{}, fmt.Errorf("parse page %d: %w", i+1, err)
		}

		doc.Pages = append(doc.Pages, builder.page())
	}

	return doc, nil
}

// verticalBounds returns the lower and upper y coordinates of the page's
// MediaBox.
func verticalBounds(r pdf.Getter, pageDict pdf.Dict) (float64, float64) {
	box, err := pdf.GetArray(r, pageDict["MediaBox"])
	if err != nil || len(box) != 4 {
		return 0, fallbackPageHeight
	}

	coords := make([]float64, 0, 4)
	for _, obj := range box {
		v, err := number(r, obj)
		if err != nil {
			return 0, fallbackPageHeight
		}
		coords = append(coords, v)
	}

	bottom, top := min(coords[1], coords[3]), max(coords[1], coords[3])
	if top-bottom <= 0 {
		return 0, fallbackPageHeight
	}
	return bottom, top
}

func number(r pdf.Getter, obj pdf.Object) (float64, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return 0, err
	}

	switch v := obj.(type) {
	case pdf.Integer:
		return float64(v), nil
	case pdf.Real:
		return float64(v), nil
	}
	return 0, errors.New("not a number")
}

type baseline struct {
	y      float64
	x0, x1 float64
	text   strings.Builder
}

// pageBuilder collects glyphs of one page and groups them by baseline.
type pageBuilder struct {
	bottom, top  float64
	lines        []*baseline
	current      *baseline
	pendingSpace bool
}

func newPageBuilder(bottom, top float64) *pageBuilder {
	return &pageBuilder{bottom: bottom, top: top}
}

func (b *pageBuilder) space() {
	b.pendingSpace = true
}

func (b *pageBuilder) add(x, y float64, text string) {
	if text == "" {
		return
	}

	line := b.lineAt(y)
	if line.text.Len() == 0 {
		line.x0, line.x1 = x, x
	} else if b.pendingSpace || line != b.current {
		if !strings.HasSuffix(line.text.String(), " ") {
			line.text.WriteByte(' ')
		}
	}

	line.text.WriteString(text)
	line.x0 = min(line.x0, x)
	line.x1 = max(line.x1, x)

	b.current = line
	b.pendingSpace = false
}

func (b *pageBuilder) lineAt(y float64) *baseline {
	if b.current != nil && math.Abs(b.current.y-y) <= baselineTolerance {
		return b.current
	}
	for _, l := range b.lines {
		if math.Abs(l.y-y) <= baselineTolerance {
			return l
		}
	}

	l := &baseline{y: y}
	b.lines = append(b.lines, l)
	return l
}

func (b *pageBuilder) page() cleaning.Page {
	lines := slices.Clone(b.lines)
	slices.SortStableFunc(lines, func(a, c *baseline) int {
		return cmp.Compare(c.y, a.y)
	})

	p := cleaning.Page{
		Height: b.top - b.bottom,
		Blocks: make([]cleaning.TextBlock, 0, len(lines)),
	}
	for _, l := range lines {
		text := strings.TrimSpace(l.text.String())
		if text == "" {
			continue
		}

		y0 := b.top - l.y
		p.Blocks = append(p.Blocks, cleaning.TextBlock{
			Rect: cleaning.Rect{X0: l.x0, Y0: y0, X1: l.x1, Y1: y0},
			Text: text,
		})
	}

	return p
}

// fonts caches, per embedded font, the space width guess and the text of
// glyphs the font's own mapping leaves empty.
type fonts struct {
	r          pdf.Getter
	spaceWidth map[font.Embedded]float64
	glyphText  map[font.Embedded]map[cid.CID]string
}

func newFonts(r pdf.Getter) *fonts {
	return &fonts{
		r:          r,
		spaceWidth: make(map[font.Embedded]float64),
		glyphText:  make(map[font.Embedded]map[cid.CID]string),
	}
}

// spaceWidthOf returns the estimated width of a space, in glyph space units.
func (f *fonts) spaceWidthOf(F font.Embedded) float64 {
	if w, ok := f.spaceWidth[F]; ok {
		return w
	}

	var w float64
	if fromFile, ok := F.(font.FromFile); !ok {
		w = defaultSpaceWidth
	} else if d := fromFile.GetDict(); d != nil {
		w = estimateSpaceWidth(d)
	}

	f.spaceWidth[F] = w
	return w
}

// textOf recovers the text of a glyph from the names in an embedded
// TrueType font.
func (f *fonts) textOf(F font.Embedded, c cid.CID) string {
	m, ok := f.glyphText[F]
	if !ok {
		m = f.loadGlyphText(F)
		f.glyphText[F] = m
	}
	return m[c]
}

func (f *fonts) loadGlyphText(F font.Embedded) map[cid.CID]string {
	fromFile, ok := F.(font.FromFile)
	if !ok {
		return nil
	}
	d := fromFile.GetDict()
	if d == nil {
		return nil
	}

	info, ok := d.FontInfo().(*dict.FontInfoGlyfEmbedded)
	if !ok || info.CIDToGID == nil {
		return nil
	}

	body, err := pdf.GetStreamReader(f.r, info.Ref)
	if err != nil {
		return nil
	}
	program, err := sfnt.Read(body)
	if err != nil {
		return nil
	}
	outlines, ok := program.Outlines.(*glyf.Outlines)
	if !ok {
		return nil
	}

	return glyphNameText(outlines.Names, info.CIDToGID, info.PostScriptName)
}

// glyphNameText maps every CID whose glyph has a name to the text of that
// name. GIDs outside of glyphNames are ignored.
func glyphNameText(glyphNames []string, cidToGID []glyph.ID, postScriptName string) map[cid.CID]string {
	m := make(map[cid.CID]string)
	for c, gid := range cidToGID {
		if int(gid) >= len(glyphNames) {
			continue
		}
		if name := glyphNames[gid]; name != "" {
			m[cid.CID(c)] = names.ToUnicode(name, postScriptName)
		}
	}
	return m
}

const (
	defaultSpaceWidth = 280
	minSpaceWidth     = 200
	maxSpaceWidth     = 1000
)

// spaceWidthFit predicts the width of a space from the width of another
// glyph of the same font.
type spaceWidthFit struct {
	intercept, slope float64
}

func (f spaceWidthFit) predict(width float64) float64 {
	return f.intercept + f.slope*width
}

// Fitted on a corpus of fonts that do define a space.
var spaceWidthFits = map[string]spaceWidthFit{
	" ": {0, 1},
	"\u00a0": {0, 1},
	")": {-43.01937, 1.0268},
	"/": {-10.99708, 0.9623335},
	"•": {-24.2725, 0.9956384},
	"−": {-439.6255, 1.238626},
	"∗": {91.30598, 0.7265824},
	"1": {-130.7855, 0.9746186},
	"a": {-131.2164, 0.9740258},
	"A": {72.40703, 0.4928694},
	"e": {-136.5258, 0.9895894},
	"E": {-28.76257, 0.6957778},
	"i": {51.62929, 0.8973944},
	"ε": {-56.25771, 0.9947787},
	"Ω": {-132.9966, 1.002173},
	"中": {-356.8609, 1.215483},
}

// estimateSpaceWidth takes the median of the predictions of every known
// glyph in the font, corrects its bias and clamps it.
func estimateSpaceWidth(d font.Dict) float64 {
	guesses := []float64{defaultSpaceWidth}
	for _, info := range d.Characters() {
		if fit, ok := spaceWidthFits[info.Text]; ok && info.Width > 0 {
			guesses = append(guesses, fit.predict(info.Width))
		}
	}

	guess := 1.366239*median(guesses) - 139.183703
	return min(max(guess, minSpaceWidth), maxSpaceWidth)
}

func median(values []float64) float64 {
	slices.Sort(values)
	n := len(values)
	if n%2 == 0 {
		return (values[n/2-1] + values[n/2]) / 2
	}
	return values[n/2]
}
