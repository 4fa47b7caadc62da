package query

import (
	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/internal/shopping/store"
)

// ListFavoritesHandler handles the list favorites query
type ListFavoritesHandler struct {
	store *store.Store
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(s *store.Store) *ListFavoritesHandler {
	return &ListFavoritesHandler{store: s}
}

// Handle returns the favorite products, most recently added first
func (h *ListFavoritesHandler) Handle() []catalog.Product {
	return h.store.Favorites()
}
