package command

import (
	"context"
	"fmt"

	"github.com/tair/shopfront/internal/shopping/store"
)

// ClearCartHandler handles the clear cart command
type ClearCartHandler struct {
	store *store.Store
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(s *store.Store) *ClearCartHandler {
	return &ClearCartHandler{store: s}
}

// Handle empties the cart and its persisted mirror
func (h *ClearCartHandler) Handle(ctx context.Context) error {
	if err := h.store.ClearCart(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
