// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package config loads and validates ReelRank configuration.
//
// Configuration is layered with Koanf v2 (highest priority wins):
//
//  1. Environment variables (explicit allow-list, see envTransformFunc)
//  2. YAML config file (CONFIG_PATH, ./config.yaml or /etc/reelrank/config.yaml)
//  3. Built-in defaults (defaultConfig)
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	artifacts:
//	  manifest_path: /models/manifest.yaml
//	tmdb:
//	  api_key: your-tmdb-key
//	poster_cache:
//	  backend: redis
//	  redis_addr: redis:6379
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root configuration for the server.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Mongo       MongoConfig       `koanf:"mongo"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
	Artifacts   ArtifactsConfig   `koanf:"artifacts"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	TMDB        TMDBConfig        `koanf:"tmdb"`
	PosterCache PosterCacheConfig `koanf:"poster_cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// RequestTimeout bounds a single recommendation request end to end.
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Storage drivers for users and the interaction log.
const (
	DriverDuckDB = "duckdb"
	DriverMongo  = "mongo"
)

// DatabaseConfig selects and tunes the interaction log backend.
type DatabaseConfig struct {
	// Driver is "duckdb" (default, embedded) or "mongo".
	Driver    string `koanf:"driver"`
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// MongoConfig is used when Database.Driver is "mongo".
// Transactions require the server to run as a replica set.
type MongoConfig struct {
	URI            string        `koanf:"uri"`
	Database       string        `koanf:"database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// SecurityConfig holds authentication, CORS and rate limit settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	CookieName        string        `koanf:"cookie_name"`
	SecureCookies     bool          `koanf:"secure_cookies"`
	MinPasswordLength int           `koanf:"min_password_length"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config for file and env loading.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ArtifactsConfig locates the trained model artifacts.
type ArtifactsConfig struct {
	// ManifestPath points at manifest.yaml; artifact paths inside it are
	// resolved relative to the manifest's directory.
	ManifestPath string `koanf:"manifest_path"`
}

// RecommendConfig tunes the scoring engine. Blend weight and result size are
// part of the trained artifacts and are not configured here.
type RecommendConfig struct {
	// Workers is the parallelism of the collaborative scoring loop (1 = sequential).
	Workers int `koanf:"workers"`

	// Seed for the cold-start random fallback. 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	// HistorySeedSize is the number of recent interactions used as content seeds
	// for the initial list.
	HistorySeedSize int `koanf:"history_seed_size"`

	// EnrichConcurrency bounds concurrent poster lookups per response.
	EnrichConcurrency int `koanf:"enrich_concurrency"`
}

// TMDBConfig configures the best-effort poster lookup.
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	ImagesBaseURL     string        `koanf:"images_base_url"`
	ImageCDNBaseURL   string        `koanf:"image_cdn_base_url"`
	PlaceholderURL    string        `koanf:"placeholder_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// Poster cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheBadger = "badger"
)

// PosterCacheConfig selects where resolved poster URLs are cached.
type PosterCacheConfig struct {
	Backend       string        `koanf:"backend"`
	Capacity      int           `koanf:"capacity"`
	TTL           time.Duration `koanf:"ttl"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	KeyPrefix     string        `koanf:"key_prefix"`
	BadgerPath    string        `koanf:"badger_path"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
