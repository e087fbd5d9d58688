package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Social platforms.
const (
	PlatformFacebook = "facebook"
	PlatformTwitter  = "twitter"
	PlatformLinkedIn = "linkedin"
)

// Platforms lists every platform the publisher attempts, in order.
var Platforms = []string{PlatformFacebook, PlatformTwitter, PlatformLinkedIn}

// Social post statuses. A failed attempt is terminal; a later job run
// may re-select the article while its share flag is still false.
const (
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// PostEngagement holds counters refreshed from the platform, if ever.
type PostEngagement struct {
	Likes    int64 `bson:"likes" json:"likes"`
	Shares   int64 `bson:"shares" json:"shares"`
	Comments int64 `bson:"comments" json:"comments"`
}

// SocialPost records one article x platform publish attempt.
type SocialPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ArticleID primitive.ObjectID `bson:"article" json:"article"`
	Platform  string             `bson:"platform" json:"platform"`
	PostID    string             `bson:"postId,omitempty" json:"postId,omitempty"`
	PostURL   string             `bson:"postUrl,omitempty" json:"postUrl,omitempty"`
	Content   string             `bson:"content" json:"content"`
	Status    string             `bson:"status" json:"status"`

	PublishedAt time.Time      `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Error       *SourceError   `bson:"error,omitempty" json:"error,omitempty"`
	Engagement  PostEngagement `bson:"engagement" json:"engagement"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
