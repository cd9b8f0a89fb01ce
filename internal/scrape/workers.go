package scrape

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/civictech-ro/mae-scraper/models"
	"github.com/civictech-ro/mae-scraper/pkg/db"
	"github.com/civictech-ro/mae-scraper/pkg/detector"
	"github.com/civictech-ro/mae-scraper/pkg/extractor"
	"github.com/civictech-ro/mae-scraper/pkg/fetcher"
	"github.com/civictech-ro/mae-scraper/pkg/rowgroup"
)

// worker processes listing pages from the jobs channel: fetch, page-level
// detection, row-group extraction, validity gating.
func worker(ctx context.Context, id int, logger *slog.Logger, cfg *models.Config,
	f *fetcher.Fetcher, det *detector.Detector, ext *extractor.Extractor,
	wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()

	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		results <- processPage(ctx, id, logger, cfg, f, det, ext, job.URL)
	}
}

func processPage(ctx context.Context, id int, logger *slog.Logger, cfg *models.Config,
	f *fetcher.Fetcher, det *detector.Detector, ext *extractor.Extractor, url string) Result {
	result := Result{URL: url, Run: db.ScrapeRun{SourceURL: url}}

	body, err := f.GetHtmlBytes(ctx, url)
	if err != nil {
		logger.Error("Error fetching listing page", "worker_id", id, "url", url, "error", err)
		result.Error = err
		return result
	}

	info := det.Analyze(url, string(body))
	result.Run.PageTitle = info.Title
	result.Run.Language = info.Language
	result.Run.LanguageConfidence = info.LanguageConfidence
	if info.Language != "" && !info.IsRomanian {
		logger.Warn("Listing page does not look Romanian; extraction patterns are locale-bound",
			"worker_id", id, "url", url,
			"language", info.Language, "confidence", info.LanguageConfidence)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Error("Error parsing listing page", "worker_id", id, "url", url, "error", err)
		result.Error = err
		return result
	}

	doc.Find(cfg.RowGroupSelector).Each(func(i int, table *goquery.Selection) {
		result.Run.RowGroups++

		rg, err := rowgroup.FromSelection(table)
		if err != nil {
			logger.Error("Skipping malformed row-group", "worker_id", id, "url", url, "index", i, "error", err)
			result.Run.FailedRowGroups++
			return
		}

		article, err := ext.Extract(rg)
		if err != nil {
			// Hard failure: a structural assumption about the markup broke.
			logger.Error("Row-group extraction failed", "worker_id", id, "url", url, "index", i, "error", err)
			result.Run.FailedRowGroups++
			return
		}

		if !article.IsValid(cfg.MandatoryFields) {
			logger.Info("Discarding invalid article", "worker_id", id, "url", url,
				"index", i, "identifier", article.Identifier)
			result.Run.InvalidArticles++
			return
		}

		result.Run.ValidArticles++
		result.Articles = append(result.Articles, article)
	})

	logger.Info("Worker finished job", "worker_id", id, "url", url,
		"row_groups", result.Run.RowGroups, "valid", result.Run.ValidArticles,
		"invalid", result.Run.InvalidArticles, "failed", result.Run.FailedRowGroups)
	return result
}
