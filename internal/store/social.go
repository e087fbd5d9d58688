package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"iactu/internal/model"
)

func (s *Store) socialPosts() *mongo.Collection {
	return s.db.Collection(socialPostsCollection)
}

// InsertSocialPost records one publish attempt. Attempts are never
// updated afterwards; a failed one stays failed.
func (s *Store) InsertSocialPost(ctx context.Context, post *model.SocialPost) error {
	post.CreatedAt = time.Now()

	res, err := s.socialPosts().InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("insert social post: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = id
	}
	return nil
}
