package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article statuses. Transitions only move forward:
// draft -> published -> archived.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Categories is the fixed taxonomy. Order matters: the categorizer
// breaks score ties by evaluating categories in this order.
var Categories = []string{
	"Machine Learning",
	"Deep Learning",
	"NLP",
	"Computer Vision",
	"Robotique",
	"IA Générative",
	"Éthique IA",
	"Recherche",
	CategoryFallback,
}

// CategoryFallback is assigned when no category keyword matches.
const CategoryFallback = "Actualités"

// DefaultAuthor is the byline used for generated articles.
const DefaultAuthor = "IA Actualités"

// FeaturedImage describes the article's main visual.
type FeaturedImage struct {
	URL    string `bson:"url" json:"url"`
	Alt    string `bson:"alt" json:"alt"`
	Credit string `bson:"credit" json:"credit"`
}

// SocialShares tracks which platforms an article was posted to.
type SocialShares struct {
	Facebook bool `bson:"facebook" json:"facebook"`
	Twitter  bool `bson:"twitter" json:"twitter"`
	LinkedIn bool `bson:"linkedin" json:"linkedin"`
}

// Article is the pipeline's terminal artifact, persisted to MongoDB.
type Article struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Slug    string             `bson:"slug" json:"slug"`
	Content string             `bson:"content" json:"content"`
	Excerpt string             `bson:"excerpt" json:"excerpt"`

	Category string   `bson:"category" json:"category"`
	Tags     []string `bson:"tags" json:"tags"`
	Keywords []string `bson:"keywords" json:"keywords"`

	FeaturedImage *FeaturedImage `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`

	Author    string `bson:"author" json:"author"`
	ReadTime  int    `bson:"readTime" json:"readTime"` // minutes
	WordCount int    `bson:"wordCount" json:"wordCount"`

	// SEO
	MetaTitle       string `bson:"metaTitle" json:"metaTitle"`
	MetaDescription string `bson:"metaDescription" json:"metaDescription"`

	// Stats
	Views int64 `bson:"views" json:"views"`
	Likes int64 `bson:"likes" json:"likes"`

	Status      string    `bson:"status" json:"status"`
	PublishedAt time.Time `bson:"publishedAt" json:"publishedAt"`

	// Provenance
	SourceURL   string `bson:"sourceUrl,omitempty" json:"sourceUrl,omitempty"`
	SourceTitle string `bson:"sourceTitle,omitempty" json:"sourceTitle,omitempty"`

	SocialShares SocialShares `bson:"socialShares" json:"socialShares"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CanTransition reports whether a status change moves forward.
func CanTransition(from, to string) bool {
	rank := map[string]int{StatusDraft: 0, StatusPublished: 1, StatusArchived: 2}
	rf, okF := rank[from]
	rt, okT := rank[to]
	return okF && okT && rt > rf
}

// Shared reports whether the article was posted to the given platform.
func (s SocialShares) Shared(platform string) bool {
	switch platform {
	case PlatformFacebook:
		return s.Facebook
	case PlatformTwitter:
		return s.Twitter
	case PlatformLinkedIn:
		return s.LinkedIn
	}
	return false
}

// FullyShared reports whether every platform was covered.
func (s SocialShares) FullyShared() bool {
	return s.Facebook && s.Twitter && s.LinkedIn
}
