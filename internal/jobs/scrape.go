package jobs

import (
	"context"
	"fmt"
	"time"

	"iactu/internal/logger"
	"iactu/internal/metrics"
	"iactu/internal/model"
	"iactu/internal/ranker"
	"iactu/internal/sources"
)

// ScrapeResult summarizes one scrape run.
type ScrapeResult struct {
	Success       bool              `json:"success"`
	ArticlesCount int               `json:"articlesCount"`
	SelectedCount int               `json:"selectedCount"`
	Selected      []model.Candidate `json:"selected"`
}

// ScrapeJob refreshes the source registry and collects the current
// best candidates without generating anything. It is the cheap run
// that keeps source bookkeeping warm between generation windows.
type ScrapeJob struct {
	Store       SourceStore
	Collector   Collector
	ConfigPath  string
	SelectCount int
}

// Run seeds the registry, fetches every active source and ranks the
// survivors. Per-source failures are recorded by the collector and do
// not fail the run.
func (j *ScrapeJob) Run(ctx context.Context) (*ScrapeResult, error) {
	start := time.Now()
	logger.Info("scrape job started")

	if err := sources.Seed(ctx, j.Store, j.ConfigPath); err != nil {
		metrics.Global.SetError(err.Error())
		return &ScrapeResult{}, fmt.Errorf("seeding sources: %w", err)
	}

	srcs, err := j.Store.ActiveSources(ctx)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return &ScrapeResult{}, fmt.Errorf("loading active sources: %w", err)
	}

	candidates := j.Collector.CollectAll(ctx, srcs)
	selected := ranker.SelectBest(candidates, j.SelectCount)

	metrics.Global.RecordJobDuration(time.Since(start))
	metrics.Global.SetLastRun()
	logger.Info("scrape job finished",
		"candidates", len(candidates),
		"selected", len(selected),
		"duration", time.Since(start).String())

	return &ScrapeResult{
		Success:       true,
		ArticlesCount: len(candidates),
		SelectedCount: len(selected),
		Selected:      selected,
	}, nil
}
