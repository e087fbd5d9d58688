// Package config loads all runtime settings once, from the
// environment, into an explicit struct handed to each component.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP server
	Port    string
	GinMode string
	SiteURL string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// Pipeline settings
	SourcesConfigPath string
	EntriesPerSource  int // newest feed entries kept per source
	ScrapeSelectCount int // working set size reported by the scrape job
	GenerateCount     int // articles generated per generate job run
	ShareBatchSize    int // articles considered per social job run

	// Rate limiting (requests per minute, token bucket)
	GenerateRatePerMinute int
	SocialRatePerMinute   int

	// Cron expressions
	ScrapeCron   string
	GenerateCron string
	PublishCron  string

	// HTTP collaborators
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Image search
	PexelsAPIKey      string
	UnsplashAccessKey string

	// Social platforms (empty credential disables the platform)
	FacebookAccessToken string
	FacebookPageID      string
	TwitterBearerToken  string
	LinkedInAccessToken string

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Port:                  "8080",
		GinMode:               "debug",
		SiteURL:               "http://localhost:8080",
		MongoURI:              "mongodb://localhost:27017",
		MongoDatabase:         "iactu",
		GeminiModel:           "gemini-1.5-flash",
		SourcesConfigPath:     "configs/sources.yaml",
		EntriesPerSource:      5,
		ScrapeSelectCount:     5,
		GenerateCount:         3,
		ShareBatchSize:        3,
		GenerateRatePerMinute: 30,
		SocialRatePerMinute:   30,
		ScrapeCron:            "0 */6 * * *",
		GenerateCron:          "0 8,14,20 * * *",
		PublishCron:           "0 9,15,21 * * *",
		RequestTimeout:        30 * time.Second,
		RetryAttempts:         3,
		RetryDelay:            5 * time.Second,
	}

	// Load from environment
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.GinMode = getEnvOrDefault("GIN_MODE", cfg.GinMode)
	cfg.SiteURL = getEnvOrDefault("SITE_URL", cfg.SiteURL)
	cfg.MongoURI = getEnvOrDefault("MONGODB_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnvOrDefault("MONGODB_DATABASE", cfg.MongoDatabase)

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)

	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.EntriesPerSource = getEnvIntOrDefault("ENTRIES_PER_SOURCE", cfg.EntriesPerSource)
	cfg.ScrapeSelectCount = getEnvIntOrDefault("SCRAPE_SELECT_COUNT", cfg.ScrapeSelectCount)
	cfg.GenerateCount = getEnvIntOrDefault("GENERATE_COUNT", cfg.GenerateCount)
	cfg.ShareBatchSize = getEnvIntOrDefault("SHARE_BATCH_SIZE", cfg.ShareBatchSize)

	cfg.GenerateRatePerMinute = getEnvIntOrDefault("GENERATE_RATE_PER_MINUTE", cfg.GenerateRatePerMinute)
	cfg.SocialRatePerMinute = getEnvIntOrDefault("SOCIAL_RATE_PER_MINUTE", cfg.SocialRatePerMinute)

	cfg.ScrapeCron = getEnvOrDefault("SCRAPE_CRON", cfg.ScrapeCron)
	cfg.GenerateCron = getEnvOrDefault("GENERATE_CRON", cfg.GenerateCron)
	cfg.PublishCron = getEnvOrDefault("PUBLISH_CRON", cfg.PublishCron)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)
	if v := os.Getenv("RETRY_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryDelay = time.Duration(val) * time.Second
		}
	}

	cfg.PexelsAPIKey = os.Getenv("PEXELS_API_KEY")
	cfg.UnsplashAccessKey = os.Getenv("UNSPLASH_ACCESS_KEY")

	cfg.FacebookAccessToken = os.Getenv("FACEBOOK_ACCESS_TOKEN")
	cfg.FacebookPageID = os.Getenv("FACEBOOK_PAGE_ID")
	cfg.TwitterBearerToken = os.Getenv("TWITTER_BEARER_TOKEN")
	cfg.LinkedInAccessToken = os.Getenv("LINKEDIN_ACCESS_TOKEN")

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.GenerateCount < 1 {
		return fmt.Errorf("GENERATE_COUNT must be at least 1")
	}
	return nil
}
