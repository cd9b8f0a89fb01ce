// Package detector runs cheap page-level checks before extraction: the
// month table and contact patterns are Romanian-locale, so a listing page
// in any other language will quietly extract nothing. Detecting that up
// front turns a silent empty run into a diagnostic.
package detector

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// PageInfo holds detection results for one fetched listing page.
type PageInfo struct {
	// Language classification of the page text.
	Language           string
	LanguageConfidence float64
	IsRomanian         bool

	// Readability enrichment, recorded with the scrape run.
	Title         string
	Byline        string
	SiteName      string
	Excerpt       string
	PublishedTime string
}

type Detector struct {
	languages lingua.LanguageDetector
}

func New() *Detector {
	// Candidate set kept small: the source site publishes Romanian with
	// occasional English/French mirror pages.
	return &Detector{
		languages: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Romanian, lingua.English, lingua.French, lingua.Hungarian).
			Build(),
	}
}

// Analyze classifies the page language and pulls readability metadata.
// Never fails: a page readability cannot digest still gets a language
// classification from the raw HTML text.
func (d *Detector) Analyze(rawURL, html string) *PageInfo {
	info := &PageInfo{}

	text := html
	if parsedURL, err := url.Parse(rawURL); err == nil {
		parser := readability.NewParser()
		if article, err := parser.Parse(strings.NewReader(html), parsedURL); err == nil {
			info.Title = article.Title
			info.Byline = article.Byline
			info.SiteName = article.SiteName
			info.Excerpt = article.Excerpt
			if article.PublishedTime != nil {
				info.PublishedTime = article.PublishedTime.Format("2006-01-02")
			}
			if article.TextContent != "" {
				text = article.TextContent
			}
		}
	}

	if lang, ok := d.languages.DetectLanguageOf(text); ok {
		info.Language = lang.String()
		info.LanguageConfidence = d.languages.ComputeLanguageConfidence(text, lang)
		info.IsRomanian = lang == lingua.Romanian
	}

	return info
}
