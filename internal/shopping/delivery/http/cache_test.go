package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	httpDelivery "github.com/tair/shopfront/internal/shopping/delivery/http"
	"github.com/tair/shopfront/internal/shopping/usecase/query"
)

// fakeCache is an in-memory stand-in for the redis response cache
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value, ok := c.entries[key]; ok {
		return redis.NewStringResult(string(value), nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = append([]byte(nil), value.([]byte)...)
	return redis.NewStatusResult("OK", nil)
}

func (c *fakeCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func TestCacheServesRepeatedProductReads(t *testing.T) {
	router := newTestRouter(t)
	cache := newFakeCache()
	router.Use(httpDelivery.CacheMiddleware(cache, httpDelivery.DefaultCacheConfig()))

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusOK || !envelope.Success {
		t.Fatalf("first read: %d %+v", rec.Code, envelope)
	}
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("first read X-Cache = %q, want MISS", got)
	}
	firstBody := rec.Body.String()

	rec, _ = doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	if got := rec.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("second read X-Cache = %q, want HIT", got)
	}
	if rec.Body.String() != firstBody {
		t.Fatal("cache hit served a different body")
	}

	// Distinct query strings are distinct cache entries
	rec, _ = doJSON(t, router, http.MethodGet, "/api/products?search=red", "", nil)
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("filtered read X-Cache = %q, want MISS", got)
	}
	if cache.size() != 2 {
		t.Fatalf("cache holds %d entries, want 2", cache.size())
	}
}

func TestCacheNeverServesStaleCartReads(t *testing.T) {
	router := newTestRouter(t)
	cache := newFakeCache()
	router.Use(httpDelivery.CacheMiddleware(cache, httpDelivery.DefaultCacheConfig()))
	token := login(t, router)

	readCart := func() query.GetCartResult {
		t.Helper()
		rec, _ := doJSON(t, router, http.MethodGet, "/api/cart", "", nil)
		if got := rec.Header().Get("X-Cache"); got != "" {
			t.Fatalf("cart read X-Cache = %q, want uncached", got)
		}
		var cartEnvelope struct {
			Data query.GetCartResult `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &cartEnvelope); err != nil {
			t.Fatalf("decode cart: %v", err)
		}
		return cartEnvelope.Data
	}

	if before := readCart(); before.ItemCount != 0 {
		t.Fatalf("fresh cart = %+v, want empty", before)
	}

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/cart", token, map[string]int{
		"product_id": 1, "quantity": 2,
	})
	if rec.Code != http.StatusOK || !envelope.Success {
		t.Fatalf("add: %d %+v", rec.Code, envelope)
	}

	after := readCart()
	if after.Total != 20.0 || after.ItemCount != 2 {
		t.Fatalf("cart after add = %+v, want total 20 count 2", after)
	}

	// Session and favorites reads bypass the cache as well
	for _, path := range []string{"/api/session", "/api/favorites"} {
		rec, _ := doJSON(t, router, http.MethodGet, path, "", nil)
		if got := rec.Header().Get("X-Cache"); got != "" {
			t.Fatalf("%s X-Cache = %q, want uncached", path, got)
		}
	}
	if cache.size() != 0 {
		t.Fatalf("cache holds %d entries after non-catalog reads, want 0", cache.size())
	}
}
