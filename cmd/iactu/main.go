package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"iactu/internal/api"
	"iactu/internal/collector"
	"iactu/internal/config"
	"iactu/internal/gemini"
	"iactu/internal/generator"
	"iactu/internal/images"
	"iactu/internal/jobs"
	"iactu/internal/logger"
	"iactu/internal/ratelimit"
	"iactu/internal/retry"
	"iactu/internal/social"
	"iactu/internal/sources"
	"iactu/internal/store"
)

func main() {
	if err := run(); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional in production, which provides variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Debug)
	gin.SetMode(cfg.GinMode)
	logger.Info("starting iactu", "port", cfg.Port, "model", cfg.GeminiModel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Error("closing store", "error", err)
		}
	}()

	if err := sources.Seed(ctx, st, cfg.SourcesConfigPath); err != nil {
		return err
	}

	llm, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer llm.Close()

	retryCfg := retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}

	coll := collector.NewDefault(st, cfg.EntriesPerSource)
	gen := generator.New(llm, st, ratelimit.PerMinute(cfg.GenerateRatePerMinute))
	imgs := images.New(cfg.RequestTimeout, cfg.PexelsAPIKey, cfg.UnsplashAccessKey, retryCfg)
	publisher := social.NewPublisher(social.Credentials{
		FacebookAccessToken: cfg.FacebookAccessToken,
		FacebookPageID:      cfg.FacebookPageID,
		TwitterBearerToken:  cfg.TwitterBearerToken,
		LinkedInAccessToken: cfg.LinkedInAccessToken,
	}, cfg.SiteURL, st, ratelimit.PerMinute(cfg.SocialRatePerMinute), cfg.RequestTimeout, retryCfg)

	scrapeJob := &jobs.ScrapeJob{
		Store:       st,
		Collector:   coll,
		ConfigPath:  cfg.SourcesConfigPath,
		SelectCount: cfg.ScrapeSelectCount,
	}
	generateJob := &jobs.GenerateJob{
		Store:     st,
		Sources:   st,
		Collector: coll,
		Generator: gen,
		Images:    imgs,
		Count:     cfg.GenerateCount,
	}
	publishJob := &jobs.PublishJob{
		Store:     st,
		Publisher: publisher,
		BatchSize: cfg.ShareBatchSize,
	}

	scheduler := jobs.NewScheduler(scrapeJob, generateJob, publishJob)
	if err := scheduler.Schedule(cfg.ScrapeCron, cfg.GenerateCron, cfg.PublishCron); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewServer(st, scrapeJob, generateJob, publishJob).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("http server listening", "addr", server.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
