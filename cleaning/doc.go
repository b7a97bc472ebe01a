// Package cleaning strips institutional noise from legislative documents.
//
// A document is cleaned in two stages. Discover inspects every page of the
// document to find running headers and footers and, optionally, the page
// where an annex starts. FilterPage then drops boilerplate, repeated lines
// and page numbers from a single page using only those document-wide
// decisions. Clean runs both stages and joins the surviving text.
//
// Coordinates follow the usual text extraction convention: Y grows downward
// from the top edge of the page.
package cleaning
