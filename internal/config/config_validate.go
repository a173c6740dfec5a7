// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
	minJWTSecretLength   = 32
)

var (
	validLogLevels = map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	validLogFormats = map[string]bool{
		"json": true, "console": true,
	}
	validDrivers = map[string]bool{
		DriverDuckDB: true, DriverMongo: true,
	}
	validCacheBackends = map[string]bool{
		CacheMemory: true, CacheRedis: true, CacheBadger: true,
	}
)

// placeholderPatterns catch example values copied into a real deployment.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_",
	"EXAMPLE",
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateSecurity,
		c.validateLogging,
		c.validateArtifacts,
		c.validateRecommend,
		c.validateTMDB,
		c.validatePosterCache,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("DATABASE_DRIVER must be one of: duckdb, mongo")
	}
	switch c.Database.Driver {
	case DriverDuckDB:
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DATABASE_DRIVER=duckdb")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when DATABASE_DRIVER=mongo")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("MONGO_DATABASE is required when DATABASE_DRIVER=mongo")
		}
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if c.Security.MinPasswordLength < 1 {
		return fmt.Errorf("MIN_PASSWORD_LENGTH must be at least 1")
	}
	return c.validateRateLimits()
}

func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters for security", minJWTSecretLength)
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if strings.TrimSpace(c.Artifacts.ManifestPath) == "" {
		return fmt.Errorf("ARTIFACT_MANIFEST is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.Workers < 0 {
		return fmt.Errorf("RECOMMEND_WORKERS must not be negative")
	}
	if c.Recommend.HistorySeedSize < 1 {
		return fmt.Errorf("RECOMMEND_HISTORY_SEEDS must be at least 1")
	}
	if c.Recommend.EnrichConcurrency < 1 {
		return fmt.Errorf("RECOMMEND_ENRICH_WORKERS must be at least 1")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive")
	}
	if c.TMDB.PlaceholderURL == "" {
		return fmt.Errorf("DEFAULT_POSTER_URL must not be empty")
	}
	if c.TMDB.APIKey == "" {
		// Lookups are disabled and every poster resolves to the placeholder.
		return nil
	}
	if err := validateHTTPURL(c.TMDB.ImagesBaseURL, "TMDB_IMAGES_BASE_URL"); err != nil {
		return err
	}
	return validateHTTPURL(c.TMDB.ImageCDNBaseURL, "TMDB_IMAGE_CDN_BASE_URL")
}

func (c *Config) validatePosterCache() error {
	if !validCacheBackends[c.PosterCache.Backend] {
		return fmt.Errorf("POSTER_CACHE_BACKEND must be one of: memory, redis, badger")
	}
	switch c.PosterCache.Backend {
	case CacheMemory:
		if c.PosterCache.Capacity < 1 {
			return fmt.Errorf("POSTER_CACHE_CAPACITY must be at least 1")
		}
	case CacheRedis:
		if c.PosterCache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when POSTER_CACHE_BACKEND=redis")
		}
	case CacheBadger:
		if c.PosterCache.BadgerPath == "" {
			return fmt.Errorf("POSTER_CACHE_BADGER_PATH is required when POSTER_CACHE_BACKEND=badger")
		}
	}
	return nil
}

// validateHTTPURL accepts absolute http(s) URLs. Unlike server base URLs,
// TMDB endpoints carry a path prefix, so paths are allowed.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
