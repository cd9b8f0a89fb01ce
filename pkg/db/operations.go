package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/civictech-ro/mae-scraper/models"
)

const dateLayout = "2006-01-02"

// ScrapeRun summarizes the processing of one listing page.
type ScrapeRun struct {
	SourceURL          string
	PageTitle          string
	Language           string
	LanguageConfidence float64
	RowGroups          int
	ValidArticles      int
	InvalidArticles    int
	FailedRowGroups    int
}

// UpsertArticle inserts or refreshes an article keyed by its identifier,
// replacing its documents and contacts. Returns the article_id. Articles
// without an identifier cannot be stored.
func (db *DB) UpsertArticle(a *models.Article) (int64, error) {
	if a.Identifier == "" {
		return 0, fmt.Errorf("article has no identifier")
	}

	var publishedAt sql.NullString
	if a.PublishedAt != nil {
		publishedAt = sql.NullString{String: a.PublishedAt.Format(dateLayout), Valid: true}
	}
	var feedbackDays sql.NullInt64
	if a.FeedbackDays != nil {
		feedbackDays = sql.NullInt64{Int64: int64(*a.FeedbackDays), Valid: true}
	}

	// Check if the article already exists
	var articleID int64
	err := db.QueryRow("SELECT article_id FROM articles WHERE identifier = ?", a.Identifier).Scan(&articleID)
	switch {
	case err == nil:
		_, err = db.Exec(`
			UPDATE articles
			SET article_type = ?, title = ?, published_at = ?, feedback_days = ?, updated_at = CURRENT_TIMESTAMP
			WHERE article_id = ?
		`, a.ArticleType, a.Title, publishedAt, feedbackDays, articleID)
		if err != nil {
			return 0, fmt.Errorf("failed to update article: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		result, err := db.Exec(`
			INSERT INTO articles (identifier, article_type, title, published_at, feedback_days)
			VALUES (?, ?, ?, ?, ?)
		`, a.Identifier, a.ArticleType, a.Title, publishedAt, feedbackDays)
		if err != nil {
			return 0, fmt.Errorf("failed to insert article: %w", err)
		}
		articleID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get article ID: %w", err)
		}
	default:
		return 0, fmt.Errorf("failed to check existing article: %w", err)
	}

	// Replace child rows wholesale; re-scrapes carry the full set.
	if _, err := db.Exec("DELETE FROM documents WHERE article_id = ?", articleID); err != nil {
		return 0, fmt.Errorf("failed to clear documents: %w", err)
	}
	for i, doc := range a.Documents {
		_, err := db.Exec(`
			INSERT INTO documents (article_id, position, doc_type, url)
			VALUES (?, ?, ?, ?)
		`, articleID, i, doc.Type, doc.URL)
		if err != nil {
			return 0, fmt.Errorf("failed to insert document: %w", err)
		}
	}

	if _, err := db.Exec("DELETE FROM contacts WHERE article_id = ?", articleID); err != nil {
		return 0, fmt.Errorf("failed to clear contacts: %w", err)
	}
	for field, value := range a.Contact {
		_, err := db.Exec(`
			INSERT INTO contacts (article_id, field, value)
			VALUES (?, ?, ?)
		`, articleID, field, value)
		if err != nil {
			return 0, fmt.Errorf("failed to insert contact: %w", err)
		}
	}

	return articleID, nil
}

// ListArticles returns stored articles, newest publication first, with
// documents and contacts rehydrated. typeFilter narrows by article_type
// when non-empty; limit <= 0 means no limit.
func (db *DB) ListArticles(typeFilter string, limit int) ([]models.Article, error) {
	query := `
		SELECT article_id, identifier, article_type, title, published_at, feedback_days
		FROM articles
	`
	args := []any{}
	if typeFilter != "" {
		query += " WHERE article_type = ?"
		args = append(args, typeFilter)
	}
	query += " ORDER BY published_at DESC, article_id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	var ids []int64
	for rows.Next() {
		var (
			id           int64
			a            models.Article
			publishedAt  sql.NullString
			feedbackDays sql.NullInt64
		)
		if err := rows.Scan(&id, &a.Identifier, &a.ArticleType, &a.Title, &publishedAt, &feedbackDays); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		if publishedAt.Valid {
			if t, err := time.Parse(dateLayout, publishedAt.String); err == nil {
				a.PublishedAt = &t
			}
		}
		if feedbackDays.Valid {
			days := int(feedbackDays.Int64)
			a.FeedbackDays = &days
		}
		articles = append(articles, a)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	for i, id := range ids {
		if err := db.loadChildren(id, &articles[i]); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

func (db *DB) loadChildren(articleID int64, a *models.Article) error {
	docRows, err := db.Query(`
		SELECT doc_type, url FROM documents WHERE article_id = ? ORDER BY position
	`, articleID)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	defer docRows.Close()
	for docRows.Next() {
		var doc models.Document
		if err := docRows.Scan(&doc.Type, &doc.URL); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		a.Documents = append(a.Documents, doc)
	}
	if err := docRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate documents: %w", err)
	}

	contactRows, err := db.Query(`
		SELECT field, value FROM contacts WHERE article_id = ?
	`, articleID)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	defer contactRows.Close()
	for contactRows.Next() {
		var field, value string
		if err := contactRows.Scan(&field, &value); err != nil {
			return fmt.Errorf("failed to scan contact: %w", err)
		}
		if a.Contact == nil {
			a.Contact = make(map[string]string)
		}
		a.Contact[field] = value
	}
	return contactRows.Err()
}

// ListTitles returns every stored article title, for keyword stats.
func (db *DB) ListTitles() ([]string, error) {
	rows, err := db.Query("SELECT title FROM articles")
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// RecordRun stores the summary of one listing-page scrape.
func (db *DB) RecordRun(run ScrapeRun) error {
	_, err := db.Exec(`
		INSERT INTO scrape_runs (source_url, page_title, language, language_confidence,
			row_groups, valid_articles, invalid_articles, failed_row_groups)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.SourceURL, run.PageTitle, run.Language, run.LanguageConfidence,
		run.RowGroups, run.ValidArticles, run.InvalidArticles, run.FailedRowGroups)
	if err != nil {
		return fmt.Errorf("failed to record scrape run: %w", err)
	}
	return nil
}
