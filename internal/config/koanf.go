// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelrank/config.yaml",
	"/etc/reelrank/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultPlaceholderPosterURL is returned whenever a poster cannot be resolved.
const DefaultPlaceholderPosterURL = "https://critics.io/img/movies/poster-placeholder.png"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:    DriverDuckDB,
			Path:      "/data/reelrank.duckdb",
			MaxMemory: "1GB",
		},
		Mongo: MongoConfig{
			Database:       "reelrank",
			ConnectTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			SessionTimeout:    24 * time.Hour,
			CookieName:        "reelrank_token",
			SecureCookies:     true,
			MinPasswordLength: 8,
			CORSOrigins:       []string{"http://localhost:3000"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Artifacts: ArtifactsConfig{
			ManifestPath: "/models/manifest.yaml",
		},
		Recommend: RecommendConfig{
			HistorySeedSize:   5,
			EnrichConcurrency: 4,
		},
		TMDB: TMDBConfig{
			ImagesBaseURL:     "https://api.themoviedb.org/3/movie/",
			ImageCDNBaseURL:   "https://image.tmdb.org/t/p/w500",
			PlaceholderURL:    DefaultPlaceholderPosterURL,
			Timeout:           3 * time.Second,
			RequestsPerSecond: 40,
			Burst:             10,
		},
		PosterCache: PosterCacheConfig{
			Backend:   CacheMemory,
			Capacity:  10000,
			TTL:       24 * time.Hour,
			RedisAddr: "localhost:6379",
			KeyPrefix: "reelrank:poster:",
		},
	}
}

// Load reads configuration from defaults, the optional YAML file and the
// environment, in that order, and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"http_host":                "server.host",
	"http_port":                "server.port",
	"request_timeout":          "server.request_timeout",
	"shutdown_timeout":         "server.shutdown_timeout",
	"database_driver":          "database.driver",
	"duckdb_path":              "database.path",
	"duckdb_max_memory":        "database.max_memory",
	"duckdb_threads":           "database.threads",
	"mongo_uri":                "mongo.uri",
	"mongo_database":           "mongo.database",
	"mongo_connect_timeout":    "mongo.connect_timeout",
	"jwt_secret":               "security.jwt_secret",
	"session_timeout":          "security.session_timeout",
	"session_cookie_name":      "security.cookie_name",
	"secure_cookies":           "security.secure_cookies",
	"min_password_length":      "security.min_password_length",
	"cors_origins":             "security.cors_origins",
	"rate_limit_requests":      "security.rate_limit_reqs",
	"rate_limit_window":        "security.rate_limit_window",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"log_level":                "logging.level",
	"log_format":               "logging.format",
	"log_caller":               "logging.caller",
	"artifact_manifest":        "artifacts.manifest_path",
	"recommend_workers":        "recommend.workers",
	"recommend_seed":           "recommend.seed",
	"recommend_history_seeds":  "recommend.history_seed_size",
	"recommend_enrich_workers": "recommend.enrich_concurrency",
	"tmdb_api_key":             "tmdb.api_key",
	"tmdb_images_base_url":     "tmdb.images_base_url",
	"tmdb_image_cdn_base_url":  "tmdb.image_cdn_base_url",
	"default_poster_url":       "tmdb.placeholder_url",
	"tmdb_timeout":             "tmdb.timeout",
	"tmdb_requests_per_second": "tmdb.requests_per_second",
	"tmdb_burst":               "tmdb.burst",
	"poster_cache_backend":     "poster_cache.backend",
	"poster_cache_capacity":    "poster_cache.capacity",
	"poster_cache_ttl":         "poster_cache.ttl",
	"redis_addr":               "poster_cache.redis_addr",
	"redis_password":           "poster_cache.redis_password",
	"redis_db":                 "poster_cache.redis_db",
	"poster_cache_key_prefix":  "poster_cache.key_prefix",
	"poster_cache_badger_path": "poster_cache.badger_path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - TMDB_API_KEY -> tmdb.api_key
//   - REDIS_ADDR -> poster_cache.redis_addr
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
