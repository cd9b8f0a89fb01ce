// Package extractor turns one row-group into an Article record. The
// pipeline is best-effort: every step that fails to match leaves its field
// unset and logs a diagnostic, except document linking, where a missing
// anchor is a structural violation and aborts the row-group.
package extractor

import (
	"crypto/md5"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/civictech-ro/mae-scraper/models"
	"github.com/civictech-ro/mae-scraper/pkg/rowgroup"
)

// annexSuffix marks a document type label as belonging to a document entry.
const annexSuffix = " - ANEXA"

var (
	dateRe     = regexp.MustCompile(`(\d+)\s([a-zA-Z]*)\s(\d{4})`)
	deltaRe    = regexp.MustCompile(`timp\sde\s([0-9]+)\szile`)
	spaceRunRe = regexp.MustCompile(` +`)

	contactFields = []string{"email", "tel", "fax", "addr"}
	contactRe     = map[string]*regexp.Regexp{
		"email": regexp.MustCompile(`\s(([a-zA-Z0-9._]|\.)*?@[a-zA-Z]*?\.[a-zA-Z]*?)(?:\s|\.|,)`),
		"tel":   regexp.MustCompile(`(?:tel|telefon)\s?:?\s*((\d+(?:\s|-|\.)?)+)(,|\s|\.)?`),
		"fax":   regexp.MustCompile(`fax\s?:?\s*((\d+(?:\s|-|\.)?)+)(,|\s|\.)?`),
		"addr":  regexp.MustCompile(`adresa poştală\s?a?\s*(.*?\scod(:|\s)?\d+)`),
	}
)

// Extractor builds Article records from row-groups using a configured
// type table, month table and base URL. Safe for concurrent use: it holds
// no per-extraction state.
type Extractor struct {
	cfg *models.Config
	log *slog.Logger
}

func New(cfg *models.Config, log *slog.Logger) *Extractor {
	return &Extractor{cfg: cfg, log: log}
}

// Extract runs the field extractors in dependency order and assembles the
// record. The returned Article may be incomplete; callers gate on IsValid.
func (e *Extractor) Extract(rg *rowgroup.RowGroup) (*models.Article, error) {
	if len(rg.Rows) == 0 {
		return nil, fmt.Errorf("empty row-group")
	}

	articleType := e.classifyType(rg)
	title := e.buildTitle(rg, articleType)
	contact := e.parseContact(rg)

	documents, err := e.linkDocuments(rg, articleType)
	if err != nil {
		return nil, err
	}

	publishedAt := e.resolvePublishedAt(rg)
	feedbackDays := e.resolveFeedbackDays(rg, publishedAt)
	identifier := e.generateIdentifier(articleType, title)

	return &models.Article{
		Identifier:   identifier,
		ArticleType:  articleType,
		Title:        title,
		Documents:    documents,
		PublishedAt:  publishedAt,
		FeedbackDays: feedbackDays,
		Contact:      contact,
	}, nil
}

// classifyType maps the raw label of the row-group's first link to a
// normalized type code. A label the table does not know gets one retry
// through the mis-encoding fix, then falls back to the OTHER code.
func (e *Extractor) classifyType(rg *rowgroup.RowGroup) string {
	label := sanitize(strings.TrimSpace(linkText(rg.Rows[0], 0)))

	if code, ok := e.cfg.Types[label]; ok {
		return code
	}
	if code, ok := e.cfg.Types[fixMisencodedDiacritics(label)]; ok {
		return code
	}

	e.log.Debug("unknown article type label, using fallback", "label", label)
	return e.cfg.Types[models.OtherTypeKey]
}

// buildTitle formats "{Type} {Description}" from the classified type and
// the second link's text, collapsing all whitespace runs.
func (e *Extractor) buildTitle(rg *rowgroup.RowGroup, articleType string) string {
	description := strings.TrimRight(linkText(rg.Rows[0], 1), "\n")

	title := capitalize(strings.ToLower(articleType)) + " " + description
	title = strings.ReplaceAll(title, "\n", " ")
	title = strings.ReplaceAll(title, "\t", " ")
	title = spaceRunRe.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// parseContact matches the four contact patterns independently against the
// last paragraph of the trailing cell. Entries are only stored for
// non-empty trimmed captures.
func (e *Extractor) parseContact(rg *rowgroup.RowGroup) map[string]string {
	paragraph, ok := rg.LastParagraph()
	if !ok {
		e.log.Debug("row-group has no contact paragraph")
		return nil
	}

	contact := make(map[string]string)
	for _, field := range contactFields {
		m := contactRe[field].FindStringSubmatch(paragraph)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			e.log.Debug("no contact match", "field", field)
			continue
		}
		contact[field] = strings.TrimSpace(m[1])
	}
	return contact
}

// linkDocuments builds the one or two document entries. Every row it reads
// is assumed to carry an anchor; a missing one is a structural violation
// and fails the whole row-group.
func (e *Extractor) linkDocuments(rg *rowgroup.RowGroup, articleType string) ([]models.Document, error) {
	row0 := rg.Rows[0]
	if len(row0.Links) == 0 {
		return nil, fmt.Errorf("document row 0 has no anchor")
	}

	primaryType := ""
	if articleType != "" {
		primaryType = articleType + annexSuffix
	}
	documents := []models.Document{
		{Type: primaryType, URL: e.cfg.BaseURL + row0.Links[0].Href},
	}

	if len(rg.Rows) >= 2 {
		row1 := rg.Rows[1]
		if len(row1.Links) == 0 {
			return nil, fmt.Errorf("document row 1 has no anchor")
		}
		documents = append(documents, models.Document{
			Type: sanitize(row1.CellText) + annexSuffix,
			URL:  e.cfg.BaseURL + row1.Links[0].Href,
		})
	}
	return documents, nil
}

// resolvePublishedAt parses the publication date out of the last paragraph
// of the trailing cell.
func (e *Extractor) resolvePublishedAt(rg *rowgroup.RowGroup) *time.Time {
	paragraph, ok := rg.LastParagraph()
	if !ok {
		return nil
	}
	m := dateRe.FindStringSubmatch(paragraph)
	if m == nil {
		return nil
	}
	return e.buildDateFromMatch(m)
}

// resolveFeedbackDays resolves the public-comment window from the first
// paragraph. An explicit deadline date wins; otherwise a relative
// "timp de N zile" phrase supplies the day count directly. Both branches
// are anchored to publishedAt, so nothing is resolved without it.
func (e *Extractor) resolveFeedbackDays(rg *rowgroup.RowGroup, publishedAt *time.Time) *int {
	paragraph, ok := rg.FirstParagraph()
	if !ok {
		return nil
	}
	if publishedAt == nil {
		e.log.Debug("skipping feedback window: published_at not resolved")
		return nil
	}

	if m := dateRe.FindStringSubmatch(paragraph); m != nil {
		deadline := e.buildDateFromMatch(m)
		if deadline == nil {
			return nil
		}
		days := int(deadline.Sub(*publishedAt) / (24 * time.Hour))
		if days < 0 {
			e.log.Warn("feedback deadline precedes publication date",
				"published_at", publishedAt.Format("2006-01-02"),
				"deadline", deadline.Format("2006-01-02"))
			return nil
		}
		return &days
	}

	if m := deltaRe.FindStringSubmatch(paragraph); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return &days
	}
	return nil
}

// generateIdentifier derives the stable content-hash identifier. Same
// (type, title) always yields the same identifier.
func (e *Extractor) generateIdentifier(articleType, title string) string {
	if articleType == "" || title == "" {
		e.log.Debug("cannot generate identifier", "article_type", articleType)
		return ""
	}
	return fmt.Sprintf("%s-%x", articleType, md5.Sum([]byte(title)))
}

// buildDateFromMatch turns a date-pattern match into a calendar date, or
// nil when the month name is not in the configured table.
func (e *Extractor) buildDateFromMatch(m []string) *time.Time {
	month, ok := e.cfg.Months[strings.TrimSpace(m[2])]
	if !ok {
		e.log.Warn("unable to resolve month name", "date_string", m[0])
		return nil
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

// sanitize removes newlines and zero-width spaces. Idempotent.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	return strings.ReplaceAll(s, "\u200b", "")
}

// fixMisencodedDiacritics repairs a known mis-encoding on the source site
// where the two-rune sequence "ŢĂ" (UTF-8 C5 A2 C4 82) arrives in place of
// plain "TA" in type labels. Narrow rule, not a transliterator.
func fixMisencodedDiacritics(s string) string {
	return strings.ReplaceAll(s, "ŢĂ", "TA")
}

// capitalize upper-cases the first rune only.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// linkText returns the text of the i-th link of a row, or "" when the row
// has fewer links.
func linkText(row rowgroup.Row, i int) string {
	if i >= len(row.Links) {
		return ""
	}
	return row.Links[i].Text
}
