// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelrank/internal/cache"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
)

var (
	// ErrNoImage means TMDB answered but listed no usable image.
	ErrNoImage = errors.New("tmdb: no image available")

	// ErrNotFound means TMDB has no movie with the requested id.
	ErrNotFound = errors.New("tmdb: movie not found")

	// ErrCircuitOpen means the request was rejected without calling TMDB.
	ErrCircuitOpen = errors.New("tmdb: circuit breaker open")
)

const maxResponseBytes = 4 << 20

type imageEntry struct {
	FilePath string `json:"file_path"`
}

type imagesResponse struct {
	Posters   []imageEntry `json:"posters"`
	Backdrops []imageEntry `json:"backdrops"`
	Logos     []imageEntry `json:"logos"`
}

// filePath returns the first entry of the first non-empty list, preferring
// posters, then backdrops, then logos.
func (r *imagesResponse) filePath() string {
	for _, list := range [][]imageEntry{r.Posters, r.Backdrops, r.Logos} {
		if len(list) > 0 {
			return list[0].FilePath
		}
	}
	return ""
}

// Client resolves poster URLs. It implements recommend.ImageResolver.
type Client struct {
	httpClient    *http.Client
	apiKey        string
	imagesBaseURL string
	cdnBaseURL    string
	placeholder   string

	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[string]
	cache   cache.Store
	logger  zerolog.Logger
}

// NewClient creates a client. A nil store disables caching.
//
//nolint:gocritic // TMDBConfig is read once at startup
func NewClient(cfg config.TMDBConfig, store cache.Store) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	placeholder := cfg.PlaceholderURL
	if placeholder == "" {
		placeholder = config.DefaultPlaceholderPosterURL
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 40
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		apiKey:        cfg.APIKey,
		imagesBaseURL: cfg.ImagesBaseURL,
		cdnBaseURL:    cfg.ImageCDNBaseURL,
		placeholder:   placeholder,
		limiter:       rate.NewLimiter(rate.Limit(rps), burst),
		cb:            newBreaker(),
		cache:         store,
		logger:        logging.WithComponent("tmdb"),
	}
}

// Placeholder returns the URL used whenever no poster can be resolved.
func (c *Client) Placeholder() string { return c.placeholder }

// ResolveImage returns the poster URL for a TMDB movie id, or the placeholder.
func (c *Client) ResolveImage(ctx context.Context, externalID *int64) string {
	if c.apiKey == "" || externalID == nil {
		metrics.PosterLookups.WithLabelValues("placeholder").Inc()
		return c.placeholder
	}
	key := strconv.FormatInt(*externalID, 10)

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			metrics.RecordCacheLookup("poster", c.cache.Backend(), true)
			metrics.PosterLookups.WithLabelValues("cached").Inc()
			return cached
		}
		metrics.RecordCacheLookup("poster", c.cache.Backend(), false)
	}

	imageURL, err := c.lookup(ctx, *externalID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoImage), errors.Is(err, ErrNotFound):
			metrics.PosterLookups.WithLabelValues("placeholder").Inc()
			c.logger.Debug().Int64("tmdb_id", *externalID).Err(err).Msg("No poster available")
		default:
			metrics.PosterLookups.WithLabelValues("error").Inc()
			c.logger.Warn().Int64("tmdb_id", *externalID).Err(err).Msg("Poster lookup failed")
		}
		return c.placeholder
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, imageURL)
	}
	metrics.PosterLookups.WithLabelValues("resolved").Inc()
	return imageURL
}

// lookup fetches the image list through the limiter and the circuit breaker.
func (c *Client) lookup(ctx context.Context, id int64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	filePath, err := c.cb.Execute(func() (string, error) {
		return c.fetchFilePath(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			return "", fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		if !errors.Is(err, ErrNoImage) && !errors.Is(err, ErrNotFound) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return "", err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return c.cdnBaseURL + filePath, nil
}

func (c *Client) fetchFilePath(ctx context.Context, id int64) (string, error) {
	endpoint := c.imagesBaseURL + strconv.FormatInt(id, 10) + "/images?api_key=" + url.QueryEscape(c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.PosterLookupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var images imagesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&images); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	filePath := images.filePath()
	if filePath == "" {
		return "", ErrNoImage
	}
	return filePath, nil
}
