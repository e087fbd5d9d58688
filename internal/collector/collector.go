// Package collector polls registered sources and normalizes their
// feed entries into candidate stories.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"iactu/internal/metrics"
	"iactu/internal/model"
)

// FeedParser is the fetching contract, satisfied by *gofeed.Parser.
type FeedParser interface {
	ParseURLWithContext(feedURL string, ctx context.Context) (*gofeed.Feed, error)
}

// Bookkeeper records the outcome of every fetch attempt on the source.
type Bookkeeper interface {
	RecordFetchSuccess(ctx context.Context, id primitive.ObjectID) error
	RecordFetchError(ctx context.Context, id primitive.ObjectID, fetchErr error) error
}

type Collector struct {
	parser     FeedParser
	books      Bookkeeper
	maxEntries int
}

func New(parser FeedParser, books Bookkeeper, maxEntries int) *Collector {
	if maxEntries < 1 {
		maxEntries = 5
	}
	return &Collector{parser: parser, books: books, maxEntries: maxEntries}
}

// NewDefault builds a collector around a real gofeed parser.
func NewDefault(books Bookkeeper, maxEntries int) *Collector {
	return New(gofeed.NewParser(), books, maxEntries)
}

// CollectAll fetches every active feed source in order. A failing
// source contributes zero candidates and never aborts the batch; its
// error is recorded on the source record.
func (c *Collector) CollectAll(ctx context.Context, srcs []model.Source) []model.Candidate {
	var all []model.Candidate

	for _, src := range srcs {
		if src.Type != model.SourceTypeFeed {
			// scrape/api sources are registered but not collected yet
			continue
		}

		candidates, err := c.CollectSource(ctx, src)
		if err != nil {
			slog.Error("source fetch failed", "source", src.Name, "error", err)
			metrics.Global.IncrementSourcesFailed()
			if bErr := c.books.RecordFetchError(ctx, src.ID, err); bErr != nil {
				slog.Error("record fetch error failed", "source", src.Name, "error", bErr)
			}
			continue
		}

		if bErr := c.books.RecordFetchSuccess(ctx, src.ID); bErr != nil {
			slog.Error("record fetch success failed", "source", src.Name, "error", bErr)
		}
		metrics.Global.AddSourcesFetched(1)
		metrics.Global.AddCandidatesCollected(int64(len(candidates)))
		slog.Info("source collected", "source", src.Name, "candidates", len(candidates))
		all = append(all, candidates...)
	}

	return all
}

// CollectSource fetches one feed and maps up to maxEntries of its
// newest entries into candidates.
func (c *Collector) CollectSource(ctx context.Context, src model.Source) ([]model.Candidate, error) {
	feed, err := c.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.URL, err)
	}

	items := feed.Items
	if len(items) > c.maxEntries {
		items = items[:c.maxEntries]
	}

	candidates := make([]model.Candidate, 0, len(items))
	for _, item := range items {
		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		candidates = append(candidates, model.Candidate{
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Description: strings.TrimSpace(description),
			PublishedAt: published,
			Category:    src.Category,
			SourceName:  src.Name,
			ImageURL:    extractImage(item),
		})
	}

	return candidates, nil
}

// extractImage resolves the entry's image through the priority chain:
// explicit media attachment, then enclosure, then the first image tag
// inside the embedded HTML content.
func extractImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		if contents, ok := media["content"]; ok {
			for _, ext := range contents {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	for _, enclosure := range item.Enclosures {
		if enclosure != nil && enclosure.URL != "" {
			return enclosure.URL
		}
	}

	html := item.Content
	if html == "" {
		html = item.Description
	}
	if html != "" {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
			if src, ok := doc.Find("img").First().Attr("src"); ok && src != "" {
				return src
			}
		}
	}

	return ""
}
