package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"iactu/internal/model"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("store: not found")

// listProjection excludes the full body from list responses.
var listProjection = bson.M{"content": 0}

// ListOptions narrows and pages article listings. Zero values mean
// "no filter"; Status defaults to published on the read path.
type ListOptions struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Status   string
}

// ListResult carries one page plus pagination totals.
type ListResult struct {
	Articles []model.Article
	Page     int
	Limit    int
	Total    int64
	Pages    int64
}

func (s *Store) articles() *mongo.Collection {
	return s.db.Collection(articlesCollection)
}

// InsertArticle persists a freshly assembled draft. The unique slug
// index makes a concurrent duplicate surface as an error here.
func (s *Store) InsertArticle(ctx context.Context, article *model.Article) error {
	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now

	res, err := s.articles().InsertOne(ctx, article)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		article.ID = id
	}
	return nil
}

// SlugExists checks for an article already claiming the slug. Not
// atomic with the subsequent insert; see the unique index fallback.
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := s.articles().CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count slug: %w", err)
	}
	return count > 0, nil
}

// TransitionStatus moves an article's status forward. Backward
// transitions are rejected by filtering on the expected predecessor
// states, so a stale caller simply matches nothing.
func (s *Store) TransitionStatus(ctx context.Context, id primitive.ObjectID, to string) error {
	var allowedFrom []string
	switch to {
	case model.StatusPublished:
		allowedFrom = []string{model.StatusDraft}
	case model.StatusArchived:
		allowedFrom = []string{model.StatusDraft, model.StatusPublished}
	default:
		return fmt.Errorf("invalid target status %q", to)
	}

	res, err := s.articles().UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": allowedFrom}},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("transition status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("article %s cannot move to %s: %w", id.Hex(), to, ErrNotFound)
	}
	return nil
}

// SetFeaturedImage stores the enrichment result on the article.
func (s *Store) SetFeaturedImage(ctx context.Context, id primitive.ObjectID, image model.FeaturedImage) error {
	_, err := s.articles().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"featuredImage": image, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("set featured image: %w", err)
	}
	return nil
}

// List returns a page of articles, newest first, optionally filtered
// by category or full-text search.
func (s *Store) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 12
	}
	if opts.Status == "" {
		opts.Status = model.StatusPublished
	}

	filter := bson.M{"status": opts.Status}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Search != "" {
		filter["$text"] = bson.M{"$search": opts.Search}
	}

	total, err := s.articles().CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	findOpts := options.Find().
		SetProjection(listProjection).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))
	if opts.Search != "" {
		findOpts.SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})
	} else {
		findOpts.SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	}

	cur, err := s.articles().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cur.Close(ctx)

	articles := []model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	pages := (total + int64(opts.Limit) - 1) / int64(opts.Limit)
	return &ListResult{
		Articles: articles,
		Page:     opts.Page,
		Limit:    opts.Limit,
		Total:    total,
		Pages:    pages,
	}, nil
}

// Featured returns the most viewed published articles.
func (s *Store) Featured(ctx context.Context, limit int) ([]model.Article, error) {
	cur, err := s.articles().Find(ctx,
		bson.M{"status": model.StatusPublished},
		options.Find().
			SetProjection(listProjection).
			SetSort(bson.D{{Key: "views", Value: -1}, {Key: "publishedAt", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("find featured: %w", err)
	}
	defer cur.Close(ctx)

	articles := []model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode featured: %w", err)
	}
	return articles, nil
}

// Latest returns the most recently published articles.
func (s *Store) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	cur, err := s.articles().Find(ctx,
		bson.M{"status": model.StatusPublished},
		options.Find().
			SetProjection(listProjection).
			SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("find latest: %w", err)
	}
	defer cur.Close(ctx)

	articles := []model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode latest: %w", err)
	}
	return articles, nil
}

// FindBySlug fetches one published article and increments its view
// counter in the same operation.
func (s *Store) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	err := s.articles().FindOneAndUpdate(ctx,
		bson.M{"slug": slug, "status": model.StatusPublished},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find by slug: %w", err)
	}
	return &article, nil
}

// Related returns published articles sharing a category, newest first.
func (s *Store) Related(ctx context.Context, category string, exclude primitive.ObjectID, limit int) ([]model.Article, error) {
	cur, err := s.articles().Find(ctx,
		bson.M{
			"status":   model.StatusPublished,
			"category": category,
			"_id":      bson.M{"$ne": exclude},
		},
		options.Find().
			SetProjection(listProjection).
			SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("find related: %w", err)
	}
	defer cur.Close(ctx)

	articles := []model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode related: %w", err)
	}
	return articles, nil
}

// IncrementLikes bumps the like counter and returns the new value.
func (s *Store) IncrementLikes(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var article model.Article
	err := s.articles().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment likes: %w", err)
	}
	return article.Likes, nil
}

// CategoryStat aggregates article counts and views per category.
type CategoryStat struct {
	Category   string `bson:"_id" json:"category"`
	Count      int64  `bson:"count" json:"count"`
	TotalViews int64  `bson:"totalViews" json:"totalViews"`
}

// CategoryStats aggregates published articles per category.
func (s *Store) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": model.StatusPublished}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$category",
			"count":      bson.M{"$sum": 1},
			"totalViews": bson.M{"$sum": "$views"},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cur, err := s.articles().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate category stats: %w", err)
	}
	defer cur.Close(ctx)

	stats := []CategoryStat{}
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("decode category stats: %w", err)
	}
	return stats, nil
}

// ArticlesToShare returns published articles still missing at least
// one platform share, newest first.
func (s *Store) ArticlesToShare(ctx context.Context, limit int) ([]model.Article, error) {
	cur, err := s.articles().Find(ctx,
		bson.M{
			"status": model.StatusPublished,
			"$or": []bson.M{
				{"socialShares.facebook": false},
				{"socialShares.twitter": false},
				{"socialShares.linkedin": false},
			},
		},
		options.Find().
			SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("find articles to share: %w", err)
	}
	defer cur.Close(ctx)

	articles := []model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode articles to share: %w", err)
	}
	return articles, nil
}

// MarkShared flips the per-platform share flag on the article.
func (s *Store) MarkShared(ctx context.Context, id primitive.ObjectID, platform string) error {
	switch platform {
	case model.PlatformFacebook, model.PlatformTwitter, model.PlatformLinkedIn:
	default:
		return fmt.Errorf("unknown platform %q", platform)
	}

	_, err := s.articles().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"socialShares." + platform: true, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("mark shared: %w", err)
	}
	return nil
}
