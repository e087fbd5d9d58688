package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched     int64
	SourcesFailed      int64
	CandidatesCollected int64
	DuplicatesFiltered int64
	ArticlesGenerated  int64
	GenerationFailures int64
	ArticlesPublished  int64
	SocialPostsSent    int64
	SocialPostsFailed  int64

	// Timings
	LastJobDuration    time.Duration
	TotalJobDuration   time.Duration
	JobRuns            int64
	AverageJobDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddSourcesFetched(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFetched += n
}

func (m *Metrics) IncrementSourcesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFailed++
}

func (m *Metrics) AddCandidatesCollected(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesCollected += n
}

func (m *Metrics) AddDuplicatesFiltered(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += n
}

func (m *Metrics) IncrementArticlesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesGenerated++
}

func (m *Metrics) IncrementGenerationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationFailures++
}

func (m *Metrics) IncrementArticlesPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesPublished++
}

func (m *Metrics) IncrementSocialPostsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SocialPostsSent++
}

func (m *Metrics) IncrementSocialPostsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SocialPostsFailed++
}

func (m *Metrics) RecordJobDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastJobDuration = duration
	m.TotalJobDuration += duration
	m.JobRuns++

	if m.JobRuns > 0 {
		m.AverageJobDuration = m.TotalJobDuration / time.Duration(m.JobRuns)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"sources_fetched":         m.SourcesFetched,
		"sources_failed":          m.SourcesFailed,
		"candidates_collected":    m.CandidatesCollected,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"articles_generated":      m.ArticlesGenerated,
		"generation_failures":     m.GenerationFailures,
		"articles_published":      m.ArticlesPublished,
		"social_posts_sent":       m.SocialPostsSent,
		"social_posts_failed":     m.SocialPostsFailed,
		"last_job_duration_ms":    m.LastJobDuration.Milliseconds(),
		"average_job_duration_ms": m.AverageJobDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
