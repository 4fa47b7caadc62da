package query

import (
	"context"

	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/internal/shopping/store"
)

// ListProductsQuery represents the query for the filtered product view.
// Search and Category drive the store's filter state the way UI input
// would; leave them unset to read the current view unchanged.
type ListProductsQuery struct {
	Search     string
	Category   string
	SetFilters bool
}

// ListProductsResult carries the filtered view plus catalog metadata
type ListProductsResult struct {
	Products   []catalog.Product `json:"products"`
	Categories []string          `json:"categories"`
	Source     catalog.Source    `json:"source"`
	Message    string            `json:"message,omitempty"`
}

// ListProductsHandler handles the list products query
type ListProductsHandler struct {
	store *store.Store
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(s *store.Store) *ListProductsHandler {
	return &ListProductsHandler{store: s}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ListProductsResult {
	if q.SetFilters {
		category := q.Category
		if category == "" {
			category = catalog.CategoryAll
		}
		h.store.SetSearchText(q.Search)
		h.store.Flush()
		h.store.SetCategory(ctx, category)
	}

	source := catalog.SourceLocal
	if h.store.UsingRemoteData() {
		source = catalog.SourceRemote
	}

	return ListProductsResult{
		Products:   h.store.FilteredProducts(),
		Categories: h.store.Categories(),
		Source:     source,
		Message:    h.store.LastError(),
	}
}
