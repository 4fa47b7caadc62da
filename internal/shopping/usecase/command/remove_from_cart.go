package command

import (
	"context"
	"fmt"

	"github.com/tair/shopfront/internal/shopping/store"
)

// RemoveFromCartCommand represents the command to remove a cart line
type RemoveFromCartCommand struct {
	ProductID int
}

// RemoveFromCartHandler handles the remove from cart command
type RemoveFromCartHandler struct {
	store *store.Store
}

// NewRemoveFromCartHandler creates a new remove from cart handler
func NewRemoveFromCartHandler(s *store.Store) *RemoveFromCartHandler {
	return &RemoveFromCartHandler{store: s}
}

// Handle executes the remove from cart command
func (h *RemoveFromCartHandler) Handle(ctx context.Context, cmd RemoveFromCartCommand) ([]store.CartLine, error) {
	if cmd.ProductID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	if err := h.store.RemoveFromCart(ctx, cmd.ProductID); err != nil {
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}

	return h.store.CartItems(), nil
}
