// Diagnostic tool for checking the health of stored podcast feeds.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run scripts/diagnose_feeds.go
//
// Fetches every feed URL in the podcasts table and reports reachability,
// parse status, item count, and latest publish date as JSON lines.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mmcdole/gofeed"
)

// FeedDiagnostic is the per-feed check result.
type FeedDiagnostic struct {
	TrackID        int64  `json:"track_id"`
	TrackName      string `json:"track_name"`
	FeedURL        string `json:"feed_url"`
	Status         string `json:"status"` // "OK", "NO_FEED_URL", "FETCH_ERROR", "PARSE_ERROR", "EMPTY"
	ItemCount      int    `json:"item_count"`
	LatestDate     string `json:"latest_date,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	rows, err := db.QueryContext(ctx, `SELECT track_id, track_name, feed_url FROM podcasts ORDER BY id`)
	if err != nil {
		log.Fatalf("query podcasts: %v", err)
	}
	defer rows.Close()

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 15 * time.Second}

	var total, healthy int
	enc := json.NewEncoder(os.Stdout)
	for rows.Next() {
		var d FeedDiagnostic
		if err := rows.Scan(&d.TrackID, &d.TrackName, &d.FeedURL); err != nil {
			log.Fatalf("scan row: %v", err)
		}
		total++

		diagnose(ctx, parser, &d)
		if d.Status == "OK" {
			healthy++
		}
		_ = enc.Encode(d)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("iterate rows: %v", err)
	}

	fmt.Fprintf(os.Stderr, "checked %d feeds, %d healthy\n", total, healthy)
}

func diagnose(ctx context.Context, parser *gofeed.Parser, d *FeedDiagnostic) {
	if d.FeedURL == "" {
		d.Status = "NO_FEED_URL"
		return
	}

	start := time.Now()
	feed, err := parser.ParseURLWithContext(d.FeedURL, ctx)
	d.ResponseTimeMs = time.Since(start).Milliseconds()
	if err != nil {
		d.Status = "FETCH_ERROR"
		d.ErrorMessage = err.Error()
		return
	}
	if feed == nil {
		d.Status = "PARSE_ERROR"
		return
	}

	d.ItemCount = len(feed.Items)
	if d.ItemCount == 0 {
		d.Status = "EMPTY"
		return
	}

	d.Status = "OK"
	for _, item := range feed.Items {
		if item.PublishedParsed != nil && item.PublishedParsed.Format(time.RFC3339) > d.LatestDate {
			d.LatestDate = item.PublishedParsed.Format(time.RFC3339)
		}
	}
}
