package command

import (
	"context"
	"fmt"

	"github.com/tair/shopfront/internal/shopping/store"
)

// UpdateQuantityCommand represents the command to set a cart line quantity.
// A quantity of zero or less removes the line.
type UpdateQuantityCommand struct {
	ProductID int
	Quantity  int
}

// UpdateQuantityHandler handles the update quantity command
type UpdateQuantityHandler struct {
	store *store.Store
}

// NewUpdateQuantityHandler creates a new update quantity handler
func NewUpdateQuantityHandler(s *store.Store) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{store: s}
}

// Handle executes the update quantity command
func (h *UpdateQuantityHandler) Handle(ctx context.Context, cmd UpdateQuantityCommand) ([]store.CartLine, error) {
	if cmd.ProductID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	if err := h.store.UpdateCartQuantity(ctx, cmd.ProductID, cmd.Quantity); err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return h.store.CartItems(), nil
}
