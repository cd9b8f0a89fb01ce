package scrape

import (
	"github.com/civictech-ro/mae-scraper/models"
	"github.com/civictech-ro/mae-scraper/pkg/db"
)

// Job defines one listing page for a worker to process.
type Job struct {
	URL string
}

// Result holds the outcome of one processed listing page.
type Result struct {
	URL      string
	Run      db.ScrapeRun
	Articles []*models.Article
	Error    error
}
