package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Source types. The collector only processes feed sources; the other
// types are registered for operators but skipped during collection.
const (
	SourceTypeFeed   = "feed"
	SourceTypeScrape = "scrape"
	SourceTypeAPI    = "api"
)

// SourceError records the last fetch failure of a source.
type SourceError struct {
	Message   string    `bson:"message" json:"message"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Source is a configured news origin polled by the collector.
// Name is unique; sources are upserted by name at startup and never
// hard-deleted by the pipeline (operators flip Active instead).
type Source struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	URL      string             `bson:"url" json:"url"`
	Type     string             `bson:"type" json:"type"`
	Category string             `bson:"category" json:"category"`
	Active   bool               `bson:"active" json:"active"`

	LastFetchedAt time.Time    `bson:"lastFetchedAt,omitempty" json:"lastFetchedAt,omitempty"`
	FetchCount    int64        `bson:"fetchCount" json:"fetchCount"`
	ErrorCount    int64        `bson:"errorCount" json:"errorCount"`
	LastError     *SourceError `bson:"lastError,omitempty" json:"lastError,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Candidate is a normalized, not-yet-generated news item extracted
// from a source. Ephemeral: produced by the collector, consumed by the
// ranker and the generator, never persisted.
type Candidate struct {
	Title       string
	Link        string
	Description string
	PublishedAt time.Time
	Category    string // category hint from the registry entry
	SourceName  string
	ImageURL    string
}

// HasImage reports whether the candidate carries a usable image URL.
func (c Candidate) HasImage() bool {
	return c.ImageURL != ""
}
