package rowgroup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const articleTable = `
<html><body>
<table>
  <tr><td>
    <a href="/doc/hg-123.pdf">HOTARARE</a>
    <a href="/doc/hg-123.pdf">privind aprobarea acordului</a>
  </td></tr>
  <tr><td>Nota de fundamentare <a href="/doc/nf-123.pdf">descarca</a></td></tr>
  <tr><td>
    <p>Propunerile pot fi transmise timp de 10 zile de la publicare.</p>
    <p>Contact: office@mae.ro. Data publicarii 15 ianuarie 2020</p>
  </td></tr>
</table>
</body></html>`

func selectTable(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture HTML: %v", err)
	}
	return doc.Find("table").First()
}

func TestFromSelection(t *testing.T) {
	rg, err := FromSelection(selectTable(t, articleTable))
	if err != nil {
		t.Fatalf("FromSelection() error = %v", err)
	}

	if len(rg.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rg.Rows))
	}

	row0 := rg.Rows[0]
	if len(row0.Links) != 2 {
		t.Fatalf("row 0 has %d links, want 2", len(row0.Links))
	}
	if row0.Links[0].Text != "HOTARARE" {
		t.Errorf("row 0 link 0 text = %q", row0.Links[0].Text)
	}
	if row0.Links[0].Href != "/doc/hg-123.pdf" {
		t.Errorf("row 0 link 0 href = %q", row0.Links[0].Href)
	}

	row1 := rg.Rows[1]
	if !strings.Contains(row1.CellText, "Nota de fundamentare") {
		t.Errorf("row 1 cell text = %q", row1.CellText)
	}
	if len(row1.Links) != 1 || row1.Links[0].Href != "/doc/nf-123.pdf" {
		t.Errorf("row 1 links = %+v", row1.Links)
	}

	if len(rg.Paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(rg.Paragraphs))
	}
	first, ok := rg.FirstParagraph()
	if !ok || !strings.Contains(first, "timp de 10 zile") {
		t.Errorf("FirstParagraph() = %q, %v", first, ok)
	}
	last, ok := rg.LastParagraph()
	if !ok || !strings.Contains(last, "15 ianuarie 2020") {
		t.Errorf("LastParagraph() = %q, %v", last, ok)
	}
}

func TestFromSelection_EmptyTable(t *testing.T) {
	if _, err := FromSelection(selectTable(t, "<html><body><table></table></body></html>")); err == nil {
		t.Error("expected error for table with no rows")
	}
}

func TestFromSelection_NoParagraphs(t *testing.T) {
	html := `<html><body><table><tr><td><a href="/d.pdf">HOTARARE</a></td></tr></table></body></html>`
	rg, err := FromSelection(selectTable(t, html))
	if err != nil {
		t.Fatalf("FromSelection() error = %v", err)
	}
	if len(rg.Paragraphs) != 0 {
		t.Errorf("got %d paragraphs, want 0", len(rg.Paragraphs))
	}
	if _, ok := rg.FirstParagraph(); ok {
		t.Error("FirstParagraph() should report no paragraph")
	}
	if _, ok := rg.LastParagraph(); ok {
		t.Error("LastParagraph() should report no paragraph")
	}
}
