package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iactu/internal/jobs"
	"iactu/internal/model"
)

type stubSources struct{}

func (stubSources) UpsertSource(ctx context.Context, source model.Source) error { return nil }
func (stubSources) ActiveSources(ctx context.Context) ([]model.Source, error)  { return nil, nil }

type stubCollector struct{}

func (stubCollector) CollectAll(ctx context.Context, srcs []model.Source) []model.Candidate {
	return []model.Candidate{{Title: "une actu"}}
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scrape := &jobs.ScrapeJob{
		Store:       stubSources{},
		Collector:   stubCollector{},
		ConfigPath:  filepath.Join(t.TempDir(), "absent.yaml"),
		SelectCount: 5,
	}
	return NewServer(nil, scrape, nil, nil).Router()
}

func TestRunJob_UnknownNameIs404(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/nope", nil)
	testRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunJob_ScrapeReturnsResult(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/scrape", nil)
	testRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result jobs.ScrapeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ArticlesCount)
}

func TestMetricsEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	testRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "articles_generated")
	assert.Contains(t, stats, "is_healthy")
}

func TestSearch_RequiresQuery(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles/search", nil)
	testRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLike_RejectsBadID(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/articles/not-an-id/like", nil)
	testRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
