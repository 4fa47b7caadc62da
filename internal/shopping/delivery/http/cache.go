package http

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/shopfront/pkg/logger"
)

// CacheConfig holds response cache configuration
type CacheConfig struct {
	TTL time.Duration

	// PathPrefix limits caching to routes under this prefix. Cart,
	// session and favorites reads must always observe the latest
	// mutation, so only the catalog routes are cacheable.
	PathPrefix string
}

// DefaultCacheConfig returns the default response cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        5 * time.Minute,
		PathPrefix: "/api/products",
	}
}

// ResponseCache is the slice of the redis client the middleware needs
type ResponseCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CacheMiddleware caches successful GET responses under the configured
// path prefix in Redis. A nil cache disables caching entirely, so the
// middleware is safe to install unconditionally.
func CacheMiddleware(cache ResponseCache, config CacheConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cache == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			if config.PathPrefix != "" && !strings.HasPrefix(r.URL.Path, config.PathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			cacheKey := cacheKeyFor(r)

			cached, err := cache.Get(ctx, cacheKey).Bytes()
			if err == nil && len(cached) > 0 {
				logger.Debug(ctx).
					Str("path", r.URL.Path).
					Str("cache_key", cacheKey).
					Msg("Cache hit")

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.Write(cached)
				return
			}

			rec := &recordingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			rec.Header().Set("X-Cache", "MISS")

			next.ServeHTTP(rec, r)

			if rec.statusCode == http.StatusOK && rec.body.Len() > 0 {
				if err := cache.Set(ctx, cacheKey, rec.body.Bytes(), config.TTL).Err(); err != nil {
					logger.Warn(ctx).
						Err(err).
						Str("cache_key", cacheKey).
						Msg("Failed to cache response")
				}
			}
		})
	}
}

// recordingResponseWriter tees the response body for caching
type recordingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (w *recordingResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *recordingResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func cacheKeyFor(r *http.Request) string {
	sum := sha256.Sum256([]byte(r.URL.RequestURI()))
	return fmt.Sprintf("shopfront:cache:%s", hex.EncodeToString(sum[:16]))
}
