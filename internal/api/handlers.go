package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"iactu/internal/logger"
	"iactu/internal/store"
)

const relatedLimit = 3

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func (s *Server) handleListArticles(c *gin.Context) {
	result, err := s.store.List(c.Request.Context(), store.ListOptions{
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 12),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		logger.Error("listing articles failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": result.Articles,
		"pagination": gin.H{
			"page":  result.Page,
			"limit": result.Limit,
			"total": result.Total,
			"pages": result.Pages,
		},
	})
}

func (s *Server) handleFeatured(c *gin.Context) {
	articles, err := s.store.Featured(c.Request.Context(), intQuery(c, "limit", 5))
	if err != nil {
		logger.Error("listing featured articles failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list featured articles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (s *Server) handleLatest(c *gin.Context) {
	articles, err := s.store.Latest(c.Request.Context(), intQuery(c, "limit", 10))
	if err != nil {
		logger.Error("listing latest articles failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list latest articles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	result, err := s.store.List(c.Request.Context(), store.ListOptions{
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 12),
		Search: query,
	})
	if err != nil {
		logger.Error("searching articles failed", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": result.Articles,
		"query":    query,
		"pagination": gin.H{
			"page":  result.Page,
			"limit": result.Limit,
			"total": result.Total,
			"pages": result.Pages,
		},
	})
}

func (s *Server) handleCategory(c *gin.Context) {
	result, err := s.store.List(c.Request.Context(), store.ListOptions{
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 12),
		Category: c.Param("category"),
	})
	if err != nil {
		logger.Error("listing category failed", "category", c.Param("category"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": result.Articles,
		"category": c.Param("category"),
		"pagination": gin.H{
			"page":  result.Page,
			"limit": result.Limit,
			"total": result.Total,
			"pages": result.Pages,
		},
	})
}

func (s *Server) handleCategoryStats(c *gin.Context) {
	stats, err := s.store.CategoryStats(c.Request.Context())
	if err != nil {
		logger.Error("aggregating category stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": stats})
}

// handleArticleBySlug returns one article plus up to three related
// ones from the same category. Reading the article counts as a view.
func (s *Server) handleArticleBySlug(c *gin.Context) {
	article, err := s.store.FindBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	if err != nil {
		logger.Error("fetching article failed", "slug", c.Param("slug"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch article"})
		return
	}

	related, err := s.store.Related(c.Request.Context(), article.Category, article.ID, relatedLimit)
	if err != nil {
		logger.Error("fetching related articles failed", "slug", article.Slug, "error", err)
		related = nil
	}

	c.JSON(http.StatusOK, gin.H{"article": article, "related": related})
}

func (s *Server) handleLike(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	likes, err := s.store.IncrementLikes(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	if err != nil {
		logger.Error("incrementing likes failed", "id", id.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// handleRunJob triggers one of the batch jobs on demand and waits for
// it, so the response carries the run's result.
func (s *Server) handleRunJob(c *gin.Context) {
	ctx := c.Request.Context()

	switch c.Param("name") {
	case "scrape":
		result, err := s.scrape.Run(ctx)
		respondJob(c, result, err)
	case "generate":
		result, err := s.generate.Run(ctx)
		respondJob(c, result, err)
	case "publish":
		result, err := s.publish.Run(ctx)
		respondJob(c, result, err)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
	}
}

func respondJob(c *gin.Context, result interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "result": result})
		return
	}
	c.JSON(http.StatusOK, result)
}
