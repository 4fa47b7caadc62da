package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/shopfront/pkg/logger"
)

// Error kinds for catalog fetches. Transport failures from the underlying
// HTTP client are returned as-is, wrapped with context.
var (
	// ErrInvalidRequest means the request URL could not be built
	ErrInvalidRequest = errors.New("invalid catalog request")
	// ErrBadStatus means the server answered with a non-200 status
	ErrBadStatus = errors.New("unexpected catalog response status")
	// ErrDecode means the response body does not match the expected shape
	ErrDecode = errors.New("failed to decode catalog response")
)

// apiResponse is the wire shape of the product listing endpoints
type apiResponse struct {
	Products []apiProduct `json:"products"`
	Total    int          `json:"total"`
	Skip     int          `json:"skip"`
	Limit    int          `json:"limit"`
}

type apiProduct struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand,omitempty"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// Client fetches products from the remote catalog API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new catalog API client with a traced transport
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchProducts gets the full product listing
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	return c.fetchListing(ctx, c.baseURL+"/products")
}

// FetchProductsByCategory gets a server-side filtered product listing
func (c *Client) FetchProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: empty category", ErrInvalidRequest)
	}
	endpoint := c.baseURL + "/products/category/" + url.PathEscape(strings.ToLower(category))
	return c.fetchListing(ctx, endpoint)
}

// FetchCategories gets the flat list of category names
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, c.baseURL+"/products/categories")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var categories []string
	if err := json.NewDecoder(body).Decode(&categories); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return categories, nil
}

func (c *Client) fetchListing(ctx context.Context, endpoint string) ([]Product, error) {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp apiResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	products := make([]Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, p.toDomain())
	}

	logger.Debug(ctx).
		Str("endpoint", endpoint).
		Int("count", len(products)).
		Msg("Fetched catalog listing")

	return products, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	return resp.Body, nil
}

// toDomain converts an API product to the domain representation.
// The API carries no review count, so Count stays at its zero value.
func (p apiProduct) toDomain() Product {
	return Product{
		ID:          p.ID,
		Name:        p.Title,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.Thumbnail,
		Category:    p.Category,
		Rating:      Rating{Score: p.Rating},
		Available:   p.Stock > 0,
	}
}
