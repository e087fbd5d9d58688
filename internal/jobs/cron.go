package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"iactu/internal/logger"
)

// Scheduler wires the three jobs onto their cron expressions.
type Scheduler struct {
	cron     *cron.Cron
	scrape   *ScrapeJob
	generate *GenerateJob
	publish  *PublishJob
}

func NewScheduler(scrape *ScrapeJob, generate *GenerateJob, publish *PublishJob) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		scrape:   scrape,
		generate: generate,
		publish:  publish,
	}
}

// Schedule registers the three jobs. Expressions use the standard
// five-field cron syntax.
func (s *Scheduler) Schedule(scrapeExpr, generateExpr, publishExpr string) error {
	if _, err := s.cron.AddFunc(scrapeExpr, func() {
		if _, err := s.scrape.Run(context.Background()); err != nil {
			logger.Error("scheduled scrape failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling scrape job: %w", err)
	}

	if _, err := s.cron.AddFunc(generateExpr, func() {
		if _, err := s.generate.Run(context.Background()); err != nil {
			logger.Error("scheduled generation failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling generate job: %w", err)
	}

	if _, err := s.cron.AddFunc(publishExpr, func() {
		if _, err := s.publish.Run(context.Background()); err != nil {
			logger.Error("scheduled social publish failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling publish job: %w", err)
	}

	return nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("scheduler stopped")
}
