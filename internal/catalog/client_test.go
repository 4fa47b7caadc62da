package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const listingBody = `{
	"products": [
		{
			"id": 7,
			"title": "Leather Wallet",
			"description": "Slim bifold wallet",
			"price": 24.99,
			"discountPercentage": 5.5,
			"rating": 4.1,
			"stock": 12,
			"brand": "Acme",
			"category": "accessories",
			"thumbnail": "https://cdn.example.com/wallet.jpg",
			"images": ["https://cdn.example.com/wallet-1.jpg"]
		},
		{
			"id": 8,
			"title": "Sold Out Lamp",
			"description": "Popular lamp",
			"price": 39.0,
			"rating": 4.8,
			"stock": 0,
			"category": "home",
			"thumbnail": "https://cdn.example.com/lamp.jpg",
			"images": []
		}
	],
	"total": 2, "skip": 0, "limit": 30
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, 2*time.Second)
}

func TestFetchProductsMapsAPIFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(listingBody))
	})

	products, err := c.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}

	wallet := products[0]
	if wallet.ID != 7 || wallet.Name != "Leather Wallet" {
		t.Errorf("id/name mapping wrong: %+v", wallet)
	}
	if wallet.ImageURL != "https://cdn.example.com/wallet.jpg" {
		t.Errorf("thumbnail not mapped to ImageURL: %q", wallet.ImageURL)
	}
	if wallet.Rating.Score != 4.1 {
		t.Errorf("rating score = %v, want 4.1", wallet.Rating.Score)
	}
	if wallet.Rating.Count != 0 {
		t.Errorf("rating count = %d, want fixed default 0", wallet.Rating.Count)
	}
	if !wallet.Available {
		t.Error("product with stock should be available")
	}
	if products[1].Available {
		t.Error("product with zero stock should be unavailable")
	}
}

func TestFetchProductsBadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	_, err := c.FetchProducts(context.Background())
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("err = %v, want ErrBadStatus", err)
	}
}

func TestFetchProductsDecodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": "not-a-list"`))
	})

	_, err := c.FetchProducts(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestFetchProductsTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()
	c := NewClient(ts.URL, time.Second)

	_, err := c.FetchProducts(context.Background())
	if err == nil {
		t.Fatal("expected transport error after server close")
	}
	if errors.Is(err, ErrBadStatus) || errors.Is(err, ErrDecode) {
		t.Fatalf("transport failure misclassified: %v", err)
	}
}

func TestFetchProductsByCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/category/home" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(listingBody))
	})

	// Display names are capitalized; the request must lowercase them
	if _, err := c.FetchProductsByCategory(context.Background(), "Home"); err != nil {
		t.Fatalf("FetchProductsByCategory: %v", err)
	}

	if _, err := c.FetchProductsByCategory(context.Background(), ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("empty category err = %v, want ErrInvalidRequest", err)
	}
}

func TestFetchCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/categories" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`["home","accessories"]`))
	})

	categories, err := c.FetchCategories(context.Background())
	if err != nil {
		t.Fatalf("FetchCategories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "home" {
		t.Fatalf("got %v", categories)
	}
}

func TestSampleProductsNeverEmpty(t *testing.T) {
	if len(SampleProducts()) == 0 {
		t.Fatal("sample catalog must not be empty")
	}
	if SampleCategories()[0] != CategoryAll {
		t.Fatalf("sample categories must start with %q", CategoryAll)
	}
}
