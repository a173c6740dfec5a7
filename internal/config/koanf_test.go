// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testJWTSecret = "k9Vq2mX7pL4sR8tW1zY6bN3cF5hJ0dGq"

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverDuckDB {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Recommend.HistorySeedSize != 5 {
		t.Errorf("Recommend.HistorySeedSize = %d, want 5", cfg.Recommend.HistorySeedSize)
	}
	if cfg.TMDB.Timeout != 3*time.Second {
		t.Errorf("TMDB.Timeout = %v, want 3s", cfg.TMDB.Timeout)
	}
	if cfg.TMDB.PlaceholderURL != DefaultPlaceholderPosterURL {
		t.Errorf("TMDB.PlaceholderURL = %q, want %q", cfg.TMDB.PlaceholderURL, DefaultPlaceholderPosterURL)
	}
	if cfg.PosterCache.Backend != CacheMemory {
		t.Errorf("PosterCache.Backend = %q, want memory", cfg.PosterCache.Backend)
	}
	if cfg.Security.JWTSecret != "" {
		t.Error("Security.JWTSecret should be empty by default")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"DATABASE_DRIVER", "database.driver"},
		{"MONGO_URI", "mongo.uri"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"ARTIFACT_MANIFEST", "artifacts.manifest_path"},
		{"RECOMMEND_SEED", "recommend.seed"},
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"TMDB_IMAGE_CDN_BASE_URL", "tmdb.image_cdn_base_url"},
		{"REDIS_ADDR", "poster_cache.redis_addr"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() with missing file = %q, want empty", got)
	}
}

func TestLoadEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RECOMMEND_SEED", "7")
	t.Setenv("TMDB_TIMEOUT", "2s")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.Seed != 7 {
		t.Errorf("Recommend.Seed = %d, want 7", cfg.Recommend.Seed)
	}
	if cfg.TMDB.Timeout != 2*time.Second {
		t.Errorf("TMDB.Timeout = %v, want 2s", cfg.TMDB.Timeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.test" {
		t.Errorf("Security.CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
}

func TestLoadConfigFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7000
artifacts:
  manifest_path: /srv/models/manifest.yaml
poster_cache:
  backend: redis
  redis_addr: cache:6379
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("REDIS_ADDR", "override:6380")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 from file", cfg.Server.Port)
	}
	if cfg.Artifacts.ManifestPath != "/srv/models/manifest.yaml" {
		t.Errorf("Artifacts.ManifestPath = %q", cfg.Artifacts.ManifestPath)
	}
	if cfg.PosterCache.Backend != CacheRedis {
		t.Errorf("PosterCache.Backend = %q, want redis", cfg.PosterCache.Backend)
	}
	if cfg.PosterCache.RedisAddr != "override:6380" {
		t.Errorf("PosterCache.RedisAddr = %q, want env override", cfg.PosterCache.RedisAddr)
	}
}

func TestLoadValidationFailure(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail with a short JWT secret")
	}
}
