package jobs

import (
	"context"
	"fmt"
	"time"

	"iactu/internal/logger"
	"iactu/internal/metrics"
	"iactu/internal/model"
	"iactu/internal/ranker"
)

// GenerateResult summarizes one generation run.
type GenerateResult struct {
	Success           bool     `json:"success"`
	CandidateCount    int      `json:"candidateCount"`
	ArticlesGenerated int      `json:"articlesGenerated"`
	Slugs             []string `json:"slugs"`
}

// GenerateJob is the main pipeline run: collect, rank, generate one
// article per selected candidate, persist, attach an image and
// publish.
type GenerateJob struct {
	Store     ArticleStore
	Sources   SourceStore
	Collector Collector
	Generator ArticleGenerator
	Images    ImageFinder
	Count     int
}

// Run executes the pipeline. A failed or skipped candidate does not
// stop the batch; a persistence failure does.
func (j *GenerateJob) Run(ctx context.Context) (*GenerateResult, error) {
	start := time.Now()
	logger.Info("generate job started", "count", j.Count)

	srcs, err := j.Sources.ActiveSources(ctx)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return &GenerateResult{}, fmt.Errorf("loading active sources: %w", err)
	}

	candidates := j.Collector.CollectAll(ctx, srcs)
	if len(candidates) == 0 {
		logger.Warn("generate job found no candidates")
		metrics.Global.SetLastRun()
		return &GenerateResult{Success: true}, nil
	}

	selected := ranker.SelectBest(candidates, j.Count)
	result := &GenerateResult{CandidateCount: len(candidates)}

	for _, candidate := range selected {
		article, err := j.Generator.GenerateArticle(ctx, candidate)
		if err != nil {
			logger.Error("article generation failed",
				"title", candidate.Title, "error", err)
			metrics.Global.IncrementGenerationFailures()
			continue
		}
		if article == nil {
			// Slug collision, already logged by the generator.
			continue
		}

		if err := j.Store.InsertArticle(ctx, article); err != nil {
			metrics.Global.SetError(err.Error())
			return result, fmt.Errorf("inserting article %q: %w", article.Slug, err)
		}
		metrics.Global.IncrementArticlesGenerated()

		image := j.Images.Find(ctx, article)
		if err := j.Store.SetFeaturedImage(ctx, article.ID, image); err != nil {
			metrics.Global.SetError(err.Error())
			return result, fmt.Errorf("setting featured image for %q: %w", article.Slug, err)
		}

		if err := j.Store.TransitionStatus(ctx, article.ID, model.StatusPublished); err != nil {
			metrics.Global.SetError(err.Error())
			return result, fmt.Errorf("publishing %q: %w", article.Slug, err)
		}
		metrics.Global.IncrementArticlesPublished()

		result.ArticlesGenerated++
		result.Slugs = append(result.Slugs, article.Slug)
		logger.Info("article published", "slug", article.Slug, "category", article.Category)
	}

	result.Success = true
	metrics.Global.RecordJobDuration(time.Since(start))
	metrics.Global.SetLastRun()
	logger.Info("generate job finished",
		"generated", result.ArticlesGenerated,
		"duration", time.Since(start).String())
	return result, nil
}
