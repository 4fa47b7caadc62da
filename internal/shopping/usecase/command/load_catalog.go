package command

import (
	"context"

	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/internal/shopping/store"
)

// LoadCatalogHandler handles the catalog reload command
type LoadCatalogHandler struct {
	store *store.Store
}

// NewLoadCatalogHandler creates a new load catalog handler
func NewLoadCatalogHandler(s *store.Store) *LoadCatalogHandler {
	return &LoadCatalogHandler{store: s}
}

// Handle reloads the catalog and reports the source that ended up
// active. Fetch failures degrade to the sample set and are not errors.
func (h *LoadCatalogHandler) Handle(ctx context.Context) catalog.Source {
	return h.store.LoadCatalog(ctx)
}
