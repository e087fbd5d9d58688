package jobs

import (
	"context"
	"fmt"
	"time"

	"iactu/internal/logger"
	"iactu/internal/metrics"
	"iactu/internal/model"
)

// PublishResult summarizes one social publishing run.
type PublishResult struct {
	Success        bool `json:"success"`
	ArticlesShared int  `json:"articlesShared"`
	PostsSent      int  `json:"postsSent"`
	PostsFailed    int  `json:"postsFailed"`
}

// PublishJob cross-posts published articles that still miss at least
// one platform. Social posting is best effort: a platform failure is
// recorded and the run carries on.
type PublishJob struct {
	Store     ArticleStore
	Publisher SocialPublisher
	BatchSize int
}

func (j *PublishJob) Run(ctx context.Context) (*PublishResult, error) {
	start := time.Now()
	logger.Info("publish job started", "batch", j.BatchSize)

	articles, err := j.Store.ArticlesToShare(ctx, j.BatchSize)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return &PublishResult{}, fmt.Errorf("loading articles to share: %w", err)
	}

	result := &PublishResult{}
	for i := range articles {
		article := &articles[i]
		shared := false
		for _, platform := range model.Platforms {
			if article.SocialShares.Shared(platform) {
				continue
			}
			res, err := j.Publisher.Publish(ctx, article, platform)
			if err != nil {
				logger.Error("social post failed",
					"slug", article.Slug, "platform", platform, "error", err)
				result.PostsFailed++
				continue
			}
			if res == nil {
				// Platform credentials not configured.
				continue
			}
			result.PostsSent++
			shared = true
		}
		if shared {
			result.ArticlesShared++
		}
	}

	result.Success = true
	metrics.Global.RecordJobDuration(time.Since(start))
	metrics.Global.SetLastRun()
	logger.Info("publish job finished",
		"articles", result.ArticlesShared,
		"posts", result.PostsSent,
		"failed", result.PostsFailed,
		"duration", time.Since(start).String())
	return result, nil
}
