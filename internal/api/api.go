// Package api exposes the public REST surface: article reads, a few
// aggregate endpoints, health and metrics probes, and admin job
// triggers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iactu/internal/jobs"
	"iactu/internal/metrics"
	"iactu/internal/store"
)

// Server wires the store and the jobs onto a gin engine.
type Server struct {
	store    *store.Store
	scrape   *jobs.ScrapeJob
	generate *jobs.GenerateJob
	publish  *jobs.PublishJob
}

func NewServer(st *store.Store, scrape *jobs.ScrapeJob, generate *jobs.GenerateJob, publish *jobs.PublishJob) *Server {
	return &Server{store: st, scrape: scrape, generate: generate, publish: publish}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", s.handleMetrics)

	articles := r.Group("/api/articles")
	{
		articles.GET("", s.handleListArticles)
		articles.GET("/featured", s.handleFeatured)
		articles.GET("/latest", s.handleLatest)
		articles.GET("/search", s.handleSearch)
		articles.GET("/category/:category", s.handleCategory)
		articles.GET("/stats/categories", s.handleCategoryStats)
		articles.GET("/:slug", s.handleArticleBySlug)
		articles.POST("/:id/like", s.handleLike)
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/jobs/:name", s.handleRunJob)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "connected"
	code := http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		dbStatus = "disconnected"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Global.GetStats())
}
