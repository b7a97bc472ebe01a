package cleaning

const testPageHeight = 800.0

func block(y float64, text string) TextBlock {
	return TextBlock{
		Rect: Rect{X0: 50, Y0: y, X1: 550, Y1: y + 12},
		Text: text,
	}
}

func page(blocks ...TextBlock) Page {
	return Page{Height: testPageHeight, Blocks: blocks}
}

func linesOf(doc Document) ([][]Line, []float64) {
	return documentLines(doc), pageHeights(doc)
}
