package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"iactu/internal/model"
)

func (s *Store) sources() *mongo.Collection {
	return s.db.Collection(sourcesCollection)
}

// UpsertSource registers or refreshes a source by name. Seeding runs
// at every startup, so the operation is idempotent; the active flag
// and bookkeeping fields of an existing source are left alone.
func (s *Store) UpsertSource(ctx context.Context, source model.Source) error {
	now := time.Now()
	_, err := s.sources().UpdateOne(ctx,
		bson.M{"name": source.Name},
		bson.M{
			"$set": bson.M{
				"url":       source.URL,
				"type":      source.Type,
				"category":  source.Category,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{
				"name":       source.Name,
				"active":     true,
				"fetchCount": int64(0),
				"errorCount": int64(0),
				"createdAt":  now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert source %s: %w", source.Name, err)
	}
	return nil
}

// ActiveSources returns every source the collector should poll.
func (s *Store) ActiveSources(ctx context.Context) ([]model.Source, error) {
	cur, err := s.sources().Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("find active sources: %w", err)
	}
	defer cur.Close(ctx)

	sources := []model.Source{}
	if err := cur.All(ctx, &sources); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	return sources, nil
}

// RecordFetchSuccess updates fetch bookkeeping after a successful
// poll: timestamp, counter, and a reset error streak.
func (s *Store) RecordFetchSuccess(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.sources().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"lastFetchedAt": time.Now(),
			"errorCount":    int64(0),
			"updatedAt":     time.Now(),
		},
		"$inc":   bson.M{"fetchCount": int64(1)},
		"$unset": bson.M{"lastError": ""},
	})
	if err != nil {
		return fmt.Errorf("record fetch success: %w", err)
	}
	return nil
}

// RecordFetchError increments the error streak and stores the failure
// detail. The fetch timestamp is updated too: an attempt happened.
func (s *Store) RecordFetchError(ctx context.Context, id primitive.ObjectID, fetchErr error) error {
	_, err := s.sources().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"lastFetchedAt": time.Now(),
			"lastError": model.SourceError{
				Message:   fetchErr.Error(),
				Timestamp: time.Now(),
			},
			"updatedAt": time.Now(),
		},
		"$inc": bson.M{"errorCount": int64(1)},
	})
	if err != nil {
		return fmt.Errorf("record fetch error: %w", err)
	}
	return nil
}
