// Package sources owns the registry of news origins: the built-in AI
// feed list, the optional YAML override, and idempotent seeding into
// the store at startup.
package sources

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"iactu/internal/model"
)

// defaults are the AI news feeds shipped with the binary, used when no
// sources file is configured.
var defaults = []model.Source{
	{Name: "MIT Technology Review AI", URL: "https://www.technologyreview.com/topic/artificial-intelligence/feed", Type: model.SourceTypeFeed, Category: "Recherche"},
	{Name: "OpenAI Blog", URL: "https://openai.com/blog/rss.xml", Type: model.SourceTypeFeed, Category: "Actualités"},
	{Name: "DeepMind Blog", URL: "https://deepmind.google/blog/rss.xml", Type: model.SourceTypeFeed, Category: "Recherche"},
	{Name: "AI News", URL: "https://www.artificialintelligence-news.com/feed/", Type: model.SourceTypeFeed, Category: "Actualités"},
	{Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/feed/", Type: model.SourceTypeFeed, Category: "Actualités"},
	{Name: "The Verge AI", URL: "https://www.theverge.com/ai-artificial-intelligence/rss/index.xml", Type: model.SourceTypeFeed, Category: "Actualités"},
	{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Type: model.SourceTypeFeed, Category: "Actualités"},
	{Name: "Towards Data Science", URL: "https://towardsdatascience.com/feed", Type: model.SourceTypeFeed, Category: "Machine Learning"},
}

// sourcesFile is the YAML config structure
// sources:
//   - name: ...
//     url: ...
//     type: feed
//     category: ...
type sourcesFile struct {
	Sources []sourceEntry `yaml:"sources"`
}

type sourceEntry struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Type     string `yaml:"type"`
	Category string `yaml:"category"`
}

// Load reads the source list from a YAML file, falling back to the
// built-in defaults when the file does not exist.
func Load(path string) ([]model.Source, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		slog.Info("sources file missing, using built-in defaults", "path", path)
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer f.Close()

	var cfg sourcesFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode sources file: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return defaults, nil
	}

	sources := make([]model.Source, 0, len(cfg.Sources))
	for _, e := range cfg.Sources {
		if e.Name == "" || e.URL == "" {
			return nil, fmt.Errorf("source entry missing name or url")
		}
		typ := e.Type
		if typ == "" {
			typ = model.SourceTypeFeed
		}
		category := e.Category
		if category == "" {
			category = model.CategoryFallback
		}
		sources = append(sources, model.Source{
			Name:     e.Name,
			URL:      e.URL,
			Type:     typ,
			Category: category,
		})
	}
	return sources, nil
}

// Upserter is the slice of the store seeding needs.
type Upserter interface {
	UpsertSource(ctx context.Context, source model.Source) error
}

// Seed registers every configured source, upserting by name.
func Seed(ctx context.Context, up Upserter, path string) error {
	list, err := Load(path)
	if err != nil {
		return err
	}

	for _, src := range list {
		if err := up.UpsertSource(ctx, src); err != nil {
			return err
		}
	}

	slog.Info("sources seeded", "count", len(list))
	return nil
}
