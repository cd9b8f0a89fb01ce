package main

import (
	"log"
	"os"

	"github.com/civictech-ro/mae-scraper/internal/articles"
	"github.com/civictech-ro/mae-scraper/internal/scrape"
	"github.com/civictech-ro/mae-scraper/pkg/db"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Value: db.DefaultDBName,
		Usage: "path to the article database",
	}

	app := &cli.App{
		Name:  "mae-scraper",
		Usage: "Extract public-consultation articles from mae.ro listing pages",
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "Fetch the configured listing pages and store valid articles",
				Action: scrape.ScrapeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Value:   "config.yaml",
						Usage:   "path to the YAML config file",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "override the configured worker count",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "print extracted articles as JSON instead of storing them",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List stored articles",
				Action: articles.ListAction,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{Name: "type", Usage: "filter by article type code"},
					&cli.IntFlag{Name: "limit", Usage: "maximum number of articles"},
				},
			},
			{
				Name:   "export",
				Usage:  "Export stored articles as JSON or YAML",
				Action: articles.ExportAction,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{Name: "type", Usage: "filter by article type code"},
					&cli.IntFlag{Name: "limit", Usage: "maximum number of articles"},
					&cli.StringFlag{Name: "format", Value: "json", Usage: "json or yaml"},
					&cli.StringFlag{Name: "out", Usage: "write to file instead of stdout"},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show the most frequent keywords across stored titles",
				Action: articles.StatsAction,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{Name: "top", Value: 25, Usage: "number of keywords to show"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
