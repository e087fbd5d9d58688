// Package jobs contains the discrete batch jobs the scheduler (or an
// operator, via the admin API) triggers: scrape, generate, and
// publish-social. Each run processes its candidates sequentially and
// reports counts plus a success flag; partial success is still
// success.
package jobs

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"iactu/internal/model"
	"iactu/internal/social"
)

// SourceStore is the registry slice the jobs read and seed.
type SourceStore interface {
	UpsertSource(ctx context.Context, source model.Source) error
	ActiveSources(ctx context.Context) ([]model.Source, error)
}

// ArticleStore is the persistence slice of the generate and social
// jobs.
type ArticleStore interface {
	InsertArticle(ctx context.Context, article *model.Article) error
	SetFeaturedImage(ctx context.Context, id primitive.ObjectID, image model.FeaturedImage) error
	TransitionStatus(ctx context.Context, id primitive.ObjectID, to string) error
	ArticlesToShare(ctx context.Context, limit int) ([]model.Article, error)
}

// Collector produces candidates from the active sources.
type Collector interface {
	CollectAll(ctx context.Context, srcs []model.Source) []model.Candidate
}

// ArticleGenerator runs the LLM pipeline for one candidate.
type ArticleGenerator interface {
	GenerateArticle(ctx context.Context, candidate model.Candidate) (*model.Article, error)
}

// ImageFinder enriches an article with a featured image.
type ImageFinder interface {
	Find(ctx context.Context, article *model.Article) model.FeaturedImage
}

// SocialPublisher posts one article to one platform.
type SocialPublisher interface {
	Publish(ctx context.Context, article *model.Article, platform string) (*social.Result, error)
}
