// Command main renders the sitemap or RSS feed to stdout or a file without
// starting the HTTP server. Useful for static hosting and CI checks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"bioainexus/internal/config"
	"bioainexus/internal/database"
	"bioainexus/internal/repository"
	"bioainexus/internal/service"
)

func main() {
	output := flag.String("o", "", "Output file (defaults to stdout)")
	feed := flag.Bool("rss", false, "Render the RSS feed instead of the sitemap")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	posts, err := repository.NewPostRepository(db).ListPublishedSummaries(context.Background())
	if err != nil {
		log.Fatalf("Failed to load published posts: %v", err)
	}

	var body string
	if *feed {
		body, err = service.BuildRSSFeed(cfg.BaseURL, cfg.SiteName, cfg.SiteTagline, posts)
	} else {
		body, err = service.BuildSitemap(cfg.BaseURL, posts)
	}
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output == "" {
		fmt.Println(body)
		return
	}
	if err := os.WriteFile(*output, []byte(body), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	log.Printf("Wrote %d posts to %s", len(posts), *output)
}
