package command

import (
	"context"
	"fmt"

	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/internal/shopping/store"
)

// AddToCartCommand represents the command to add a product to the cart
type AddToCartCommand struct {
	ProductID int
	Quantity  int
}

// AddToCartHandler handles the add to cart command
type AddToCartHandler struct {
	store *store.Store
}

// NewAddToCartHandler creates a new add to cart handler
func NewAddToCartHandler(s *store.Store) *AddToCartHandler {
	return &AddToCartHandler{store: s}
}

// Handle executes the add to cart command
func (h *AddToCartHandler) Handle(ctx context.Context, cmd AddToCartCommand) ([]store.CartLine, error) {
	if cmd.ProductID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	if cmd.Quantity == 0 {
		cmd.Quantity = 1
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	product, found := findProduct(h.store.Products(), cmd.ProductID)
	if !found {
		return nil, fmt.Errorf("product not found")
	}

	if err := h.store.AddToCart(ctx, product, cmd.Quantity); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	return h.store.CartItems(), nil
}

func findProduct(products []catalog.Product, productID int) (catalog.Product, bool) {
	for _, p := range products {
		if p.ID == productID {
			return p, true
		}
	}
	return catalog.Product{}, false
}
