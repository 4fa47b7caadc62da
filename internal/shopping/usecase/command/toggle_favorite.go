package command

import (
	"context"
	"fmt"

	"github.com/tair/shopfront/internal/shopping/store"
)

// ToggleFavoriteCommand represents the command to flip favorite membership
type ToggleFavoriteCommand struct {
	ProductID int
}

// ToggleFavoriteHandler handles the toggle favorite command
type ToggleFavoriteHandler struct {
	store *store.Store
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(s *store.Store) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{store: s}
}

// Handle executes the toggle and reports the resulting membership
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (bool, error) {
	if cmd.ProductID <= 0 {
		return false, fmt.Errorf("invalid product id")
	}

	favorited, err := h.store.ToggleFavorite(ctx, cmd.ProductID)
	if err != nil {
		return favorited, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return favorited, nil
}
