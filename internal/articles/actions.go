// Package articles holds the CLI actions that read back the article store.
package articles

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/civictech-ro/mae-scraper/pkg/analytics"
	"github.com/civictech-ro/mae-scraper/pkg/db"
	"github.com/civictech-ro/mae-scraper/pkg/mapreduce"
	"github.com/civictech-ro/mae-scraper/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func openStore(c *cli.Context) (*db.DB, error) {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// ListAction prints stored articles, one line per article.
func ListAction(c *cli.Context) error {
	database, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	articles, err := database.ListArticles(c.String("type"), c.Int("limit"))
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		fmt.Println("No articles stored. Run `mae-scraper scrape` first.")
		return nil
	}

	for _, a := range articles {
		published := "----------"
		if a.PublishedAt != nil {
			published = a.PublishedAt.Format("2006-01-02")
		}
		window := "  -"
		if a.FeedbackDays != nil {
			window = fmt.Sprintf("%3dd", *a.FeedbackDays)
		}
		title := a.Title
		if len(title) > 100 {
			title = title[:97] + "..."
		}
		fmt.Printf("%-40s  %-8s  %s  %s  %s\n", a.Identifier, a.ArticleType, published, window, title)
	}
	fmt.Printf("\n%d article(s)\n", len(articles))
	return nil
}

// ExportAction dumps stored articles as JSON or YAML, to stdout or --out.
func ExportAction(c *cli.Context) error {
	database, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	articles, err := database.ListArticles(c.String("type"), c.Int("limit"))
	if err != nil {
		return err
	}

	var data []byte
	switch format := strings.ToLower(c.String("format")); format {
	case "json":
		data, err = json.MarshalIndent(articles, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(articles)
	default:
		return fmt.Errorf("unknown export format: %s (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal articles: %w", err)
	}

	if out := c.String("out"); out != "" {
		s := &storage.Storage{}
		if err := s.SaveFile(out, data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d article(s) to %s\n", len(articles), out)
		return nil
	}
	fmt.Print(string(data))
	return nil
}

// StatsAction aggregates word frequencies over stored titles and prints
// the top keywords.
func StatsAction(c *cli.Context) error {
	database, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	titles, err := database.ListTitles()
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		fmt.Println("No articles stored. Run `mae-scraper scrape` first.")
		return nil
	}

	a := &analytics.Analytics{}
	intermediate := make([]map[string]int, 0, len(titles))
	for _, title := range titles {
		intermediate = append(intermediate, mapreduce.Map(title, a))
	}
	counts := mapreduce.Reduce(intermediate)

	fmt.Printf("Top keywords across %d title(s):\n", len(titles))
	mapreduce.PrintTopKeywords(counts, c.Int("top"))
	return nil
}
