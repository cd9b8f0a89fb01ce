// Package models defines the article record and runtime configuration.
package models

import "time"

// Document is one downloadable file attached to an article: the main
// published act, and optionally its annex.
type Document struct {
	Type string `yaml:"type" json:"type"`
	URL  string `yaml:"url" json:"url"`
}

// Article is one public-consultation entry as extracted from a listing
// page. Fields are best-effort: any of them may be missing when the source
// markup did not yield a match, and IsValid decides whether the record is
// worth keeping.
type Article struct {
	// Identifier is "{type}-{md5(title) hex}". Empty when either the type
	// or the title could not be extracted.
	Identifier string `yaml:"identifier,omitempty" json:"identifier,omitempty"`

	// ArticleType is the normalized category code (HG, OG, OUG, PROIECT,
	// OTHER, ...) from the configured type table.
	ArticleType string `yaml:"article_type,omitempty" json:"article_type,omitempty"`

	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// Documents holds one or two entries: the act itself and, when the
	// row-group has an annex row, the annex.
	Documents []Document `yaml:"documents,omitempty" json:"documents,omitempty"`

	// PublishedAt is the publication date parsed from the row text.
	// Nil when the date pattern did not match or the month name was
	// unrecognized.
	PublishedAt *time.Time `yaml:"published_at,omitempty" json:"published_at,omitempty"`

	// FeedbackDays is the number of days the public-comment window stays
	// open after PublishedAt. Nil when no deadline could be resolved.
	FeedbackDays *int `yaml:"feedback_days,omitempty" json:"feedback_days,omitempty"`

	// Contact maps "email"/"tel"/"fax"/"addr" to the extracted value.
	// Partial or empty when the contact paragraph matched nothing.
	Contact map[string]string `yaml:"contact,omitempty" json:"contact,omitempty"`
}

// IsValid reports whether every field named in mandatory is populated.
// It only inspects already-extracted state; it never triggers extraction.
func (a *Article) IsValid(mandatory []string) bool {
	for _, field := range mandatory {
		switch field {
		case "identifier":
			if a.Identifier == "" {
				return false
			}
		case "article_type":
			if a.ArticleType == "" {
				return false
			}
		case "title":
			if a.Title == "" {
				return false
			}
		case "documents":
			if len(a.Documents) == 0 {
				return false
			}
		case "published_at":
			if a.PublishedAt == nil {
				return false
			}
		case "feedback_days":
			if a.FeedbackDays == nil {
				return false
			}
		case "contact":
			if len(a.Contact) == 0 {
				return false
			}
		default:
			// Unknown mandatory field can never be satisfied.
			return false
		}
	}
	return true
}
