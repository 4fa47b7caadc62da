package query

import (
	"github.com/tair/shopfront/internal/shopping/store"
)

// GetCartResult carries the cart lines and the derived totals
type GetCartResult struct {
	Items     []store.CartLine `json:"items"`
	Total     float64          `json:"total"`
	ItemCount int              `json:"item_count"`
}

// GetCartHandler handles the get cart query
type GetCartHandler struct {
	store *store.Store
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(s *store.Store) *GetCartHandler {
	return &GetCartHandler{store: s}
}

// Handle returns the cart with totals recomputed on demand
func (h *GetCartHandler) Handle() GetCartResult {
	return GetCartResult{
		Items:     h.store.CartItems(),
		Total:     h.store.CartTotal(),
		ItemCount: h.store.CartItemCount(),
	}
}
