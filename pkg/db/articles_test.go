package db

import (
	"testing"
	"time"

	"github.com/civictech-ro/mae-scraper/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func testArticle() *models.Article {
	published := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	days := 10
	return &models.Article{
		Identifier:  "HG-0123456789abcdef0123456789abcdef",
		ArticleType: "HG",
		Title:       "Hg privind aprobarea acordului",
		Documents: []models.Document{
			{Type: "HG - ANEXA", URL: "https://www.mae.ro/doc/hg-123.pdf"},
			{Type: "Nota de fundamentare - ANEXA", URL: "https://www.mae.ro/doc/nf-123.pdf"},
		},
		PublishedAt:  &published,
		FeedbackDays: &days,
		Contact:      map[string]string{"email": "office@mae.ro", "tel": "021 319 2108"},
	}
}

func TestUpsertArticle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	a := testArticle()
	firstID, err := db.UpsertArticle(a)
	if err != nil {
		t.Fatalf("UpsertArticle() error = %v", err)
	}
	if firstID == 0 {
		t.Fatal("UpsertArticle() returned 0 ID")
	}

	// Upserting the same identifier must reuse the row.
	a.Title = "Hg privind aprobarea acordului (actualizat)"
	secondID, err := db.UpsertArticle(a)
	if err != nil {
		t.Fatalf("UpsertArticle() second call error = %v", err)
	}
	if secondID != firstID {
		t.Errorf("re-upsert got new ID %d, want %d", secondID, firstID)
	}

	articles, err := db.ListArticles("", 0)
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if articles[0].Title != a.Title {
		t.Errorf("stored title = %q, want updated title", articles[0].Title)
	}
}

func TestUpsertArticle_RequiresIdentifier(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	a := testArticle()
	a.Identifier = ""
	if _, err := db.UpsertArticle(a); err == nil {
		t.Error("expected error for missing identifier")
	}
}

func TestListArticles_Rehydration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.UpsertArticle(testArticle()); err != nil {
		t.Fatalf("UpsertArticle() error = %v", err)
	}

	articles, err := db.ListArticles("", 0)
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	a := articles[0]

	if len(a.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(a.Documents))
	}
	if a.Documents[0].Type != "HG - ANEXA" {
		t.Errorf("documents out of order: %+v", a.Documents)
	}
	if a.Contact["email"] != "office@mae.ro" || a.Contact["tel"] != "021 319 2108" {
		t.Errorf("contact = %v", a.Contact)
	}
	if a.PublishedAt == nil || a.PublishedAt.Format("2006-01-02") != "2020-01-15" {
		t.Errorf("published_at = %v", a.PublishedAt)
	}
	if a.FeedbackDays == nil || *a.FeedbackDays != 10 {
		t.Errorf("feedback_days = %v", a.FeedbackDays)
	}
}

func TestListArticles_FilterAndLimit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	hg := testArticle()
	og := testArticle()
	og.Identifier = "OG-fedcba9876543210fedcba9876543210"
	og.ArticleType = "OG"
	og.Title = "Og privind alt acord"

	for _, a := range []*models.Article{hg, og} {
		if _, err := db.UpsertArticle(a); err != nil {
			t.Fatalf("UpsertArticle() error = %v", err)
		}
	}

	filtered, err := db.ListArticles("OG", 0)
	if err != nil {
		t.Fatalf("ListArticles(OG) error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].ArticleType != "OG" {
		t.Errorf("filtered = %+v", filtered)
	}

	limited, err := db.ListArticles("", 1)
	if err != nil {
		t.Fatalf("ListArticles(limit) error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d articles, want 1", len(limited))
	}
}

func TestListTitles(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.UpsertArticle(testArticle()); err != nil {
		t.Fatalf("UpsertArticle() error = %v", err)
	}

	titles, err := db.ListTitles()
	if err != nil {
		t.Fatalf("ListTitles() error = %v", err)
	}
	if len(titles) != 1 || titles[0] != "Hg privind aprobarea acordului" {
		t.Errorf("titles = %v", titles)
	}
}

func TestRecordRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	run := ScrapeRun{
		SourceURL:          "https://www.mae.ro/node/2011",
		PageTitle:          "Transparenta decizionala",
		Language:           "Romanian",
		LanguageConfidence: 0.99,
		RowGroups:          12,
		ValidArticles:      10,
		InvalidArticles:    1,
		FailedRowGroups:    1,
	}
	if err := db.RecordRun(run); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM scrape_runs WHERE source_url = ?", run.SourceURL).Scan(&count); err != nil {
		t.Fatalf("failed to count runs: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d runs, want 1", count)
	}
}
