package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/civictech-ro/mae-scraper/models"
	"github.com/civictech-ro/mae-scraper/pkg/db"
	"github.com/civictech-ro/mae-scraper/pkg/detector"
	"github.com/civictech-ro/mae-scraper/pkg/extractor"
	"github.com/civictech-ro/mae-scraper/pkg/fetcher"
	"github.com/urfave/cli/v2"
)

// ScrapeAction fetches the configured listing pages, extracts articles and
// persists the valid ones. With --dry-run nothing is written; extracted
// articles go to stdout as JSON instead.
func ScrapeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if len(cfg.Sources) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no sources configured")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Add listing-page URLs under `sources:` in the config file.")
		os.Exit(1)
	}

	dryRun := c.Bool("dry-run")
	var database *db.DB
	if !dryRun {
		database, err = db.Open(cfg.DBPath)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(2)
		}
		defer database.Close()
	}

	results := run(c.Context, logger, cfg)

	var pagesFailed, stored int
	var runErr error
	for _, result := range results {
		if result.Error != nil {
			pagesFailed++
			runErr = fmt.Errorf("one or more listing pages failed")
			continue
		}
		if dryRun {
			for _, article := range result.Articles {
				jsonData, err := json.MarshalIndent(article, "", "  ")
				if err != nil {
					logger.Error("failed to marshal article", "identifier", article.Identifier, "error", err)
					continue
				}
				fmt.Println(string(jsonData))
			}
			continue
		}

		if err := database.RecordRun(result.Run); err != nil {
			logger.Warn("failed to record scrape run", "url", result.URL, "error", err)
		}
		for _, article := range result.Articles {
			if _, err := database.UpsertArticle(article); err != nil {
				logger.Error("failed to store article", "identifier", article.Identifier, "error", err)
				runErr = fmt.Errorf("one or more articles failed to store")
				continue
			}
			stored++
		}
	}

	logger.Info("Scrape finished",
		"pages", len(results), "pages_failed", pagesFailed,
		"articles_stored", stored, "dry_run", dryRun,
		"elapsed_seconds", time.Since(startTime).Seconds())
	return runErr
}

// run drives the worker pool over the configured sources.
func run(ctx context.Context, logger *slog.Logger, cfg *models.Config) []Result {
	f := fetcher.NewFetcher()
	det := detector.New()
	ext := extractor.New(cfg, logger)

	logger.Info("Starting scrape", "sources", len(cfg.Sources), "workers", cfg.WorkerCount)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(cfg.Sources))
	results := make(chan Result, len(cfg.Sources))

	for w := 1; w <= cfg.WorkerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, cfg, f, det, ext, &wg, jobs, results)
	}

	for _, url := range cfg.Sources {
		jobs <- Job{URL: url}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All scrape workers finished")

	allResults := make([]Result, 0, len(cfg.Sources))
	for result := range results {
		allResults = append(allResults, result)
	}
	return allResults
}
