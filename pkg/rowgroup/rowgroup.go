// Package rowgroup materializes one article's HTML table into the plain
// row/link/paragraph structure the extractor consumes. After construction
// the extractor never touches the HTML tree.
package rowgroup

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Link is one anchor element: its visible text and href target.
type Link struct {
	Text string
	Href string
}

// Row is one <tr>: the text of its first cell plus every anchor inside
// the row, in document order.
type Row struct {
	CellText string
	Links    []Link
}

// RowGroup is the parsed table representing one article's multi-row block.
// Paragraphs holds the <p> texts of the trailing cell of the last row, in
// document order.
type RowGroup struct {
	Rows       []Row
	Paragraphs []string
}

// FromSelection builds a RowGroup from a goquery selection pointing at one
// article's <table>.
func FromSelection(table *goquery.Selection) (*RowGroup, error) {
	rg := &RowGroup{}

	trs := table.Find("tr")
	if trs.Length() == 0 {
		return nil, fmt.Errorf("row-group has no rows")
	}

	trs.Each(func(_ int, tr *goquery.Selection) {
		row := Row{
			CellText: tr.Find("td").First().Text(),
		}
		tr.Find("a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			row.Links = append(row.Links, Link{Text: a.Text(), Href: href})
		})
		rg.Rows = append(rg.Rows, row)
	})

	// Paragraphs live in the trailing cell of the last row. Some listings
	// skip the <td> wrapper, so fall back to the row itself.
	lastRow := trs.Last()
	cell := lastRow.Find("td").Last()
	if cell.Length() == 0 {
		cell = lastRow
	}
	cell.Find("p").Each(func(_ int, p *goquery.Selection) {
		rg.Paragraphs = append(rg.Paragraphs, p.Text())
	})

	return rg, nil
}

// FirstParagraph returns the first paragraph of the trailing cell.
func (rg *RowGroup) FirstParagraph() (string, bool) {
	if len(rg.Paragraphs) == 0 {
		return "", false
	}
	return rg.Paragraphs[0], true
}

// LastParagraph returns the last paragraph of the trailing cell.
func (rg *RowGroup) LastParagraph() (string, bool) {
	if len(rg.Paragraphs) == 0 {
		return "", false
	}
	return rg.Paragraphs[len(rg.Paragraphs)-1], true
}
