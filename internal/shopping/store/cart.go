package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/internal/shopping/domain"
	"github.com/tair/shopfront/pkg/logger"
)

// AddToCart adds a product to the cart. An existing line for the same
// product id has its quantity incremented; the cart never holds two
// lines for one product. Quantities below one count as one.
func (s *Store) AddToCart(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	var line CartLine
	if idx := s.cartIndexLocked(product.ID); idx >= 0 {
		s.cart[idx].Quantity += quantity
		line = s.cart[idx]
	} else {
		line = CartLine{Product: product, Quantity: quantity, AddedAt: time.Now()}
		s.cart = append(s.cart, line)
	}
	err := s.deps.Cart.Upsert(ctx, cartRecord(line))
	s.mu.Unlock()

	s.publish(EventCart)

	if err != nil {
		logger.Error(ctx).Err(err).Int("product_id", product.ID).Msg("Failed to mirror cart item")
		return err
	}

	return nil
}

// RemoveFromCart deletes the cart line for a product id
func (s *Store) RemoveFromCart(ctx context.Context, productID int) error {
	s.mu.Lock()
	if idx := s.cartIndexLocked(productID); idx >= 0 {
		s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
	}
	err := s.deps.Cart.Remove(ctx, productID)
	s.mu.Unlock()

	s.publish(EventCart)

	if err != nil {
		logger.Error(ctx).Err(err).Int("product_id", productID).Msg("Failed to remove cart item")
		return err
	}

	return nil
}

// UpdateCartQuantity sets the quantity for a cart line. Zero or
// negative behaves as RemoveFromCart.
func (s *Store) UpdateCartQuantity(ctx context.Context, productID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}

	s.mu.Lock()
	idx := s.cartIndexLocked(productID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.cart[idx].Quantity = quantity
	err := s.deps.Cart.Upsert(ctx, cartRecord(s.cart[idx]))
	s.mu.Unlock()

	s.publish(EventCart)

	if err != nil {
		logger.Error(ctx).Err(err).Int("product_id", productID).Msg("Failed to mirror cart quantity")
		return err
	}

	return nil
}

// ClearCart empties the cart and deletes every persisted cart record
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	s.cart = nil
	err := s.deps.Cart.Clear(ctx)
	s.mu.Unlock()

	s.publish(EventCart)

	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to clear persisted cart")
		return err
	}

	return nil
}

// CartTotal sums price times quantity over the cart, computed fresh
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.cart {
		total += line.Subtotal()
	}
	return total
}

// CartItemCount sums the quantities over the cart, computed fresh
func (s *Store) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, line := range s.cart {
		count += line.Quantity
	}
	return count
}

// ToggleFavorite flips favorite membership for a product id and mirrors
// the change. It is its own inverse. Toggling on snapshots the current
// catalog data; the product must be present in the catalog to be added.
func (s *Store) ToggleFavorite(ctx context.Context, productID int) (favorited bool, err error) {
	s.mu.Lock()

	if idx := s.favoriteIndexLocked(productID); idx >= 0 {
		s.favorites = append(s.favorites[:idx], s.favorites[idx+1:]...)
		err = s.deps.Favorites.Remove(ctx, productID)
		s.mu.Unlock()

		s.publish(EventFavorites)

		if err != nil {
			logger.Error(ctx).Err(err).Int("product_id", productID).Msg("Failed to remove favorite")
		}
		return false, err
	}

	product, found := s.productLocked(productID)
	if !found {
		s.mu.Unlock()
		return false, fmt.Errorf("product %d not in catalog", productID)
	}

	s.favorites = append([]catalog.Product{product}, s.favorites...)
	err = s.deps.Favorites.Save(ctx, favoriteRecord(product))
	s.mu.Unlock()

	s.publish(EventFavorites)

	if err != nil {
		logger.Error(ctx).Err(err).Int("product_id", productID).Msg("Failed to save favorite")
	}
	return true, err
}

// IsFavorite reports favorite membership for a product id
func (s *Store) IsFavorite(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoriteIndexLocked(productID) >= 0
}

func (s *Store) cartIndexLocked(productID int) int {
	for i, line := range s.cart {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) favoriteIndexLocked(productID int) int {
	for i, p := range s.favorites {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) productLocked(productID int) (catalog.Product, bool) {
	for _, p := range s.products {
		if p.ID == productID {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func cartRecord(line CartLine) *domain.CartItem {
	return &domain.CartItem{
		ProductID:       line.Product.ID,
		ProductName:     line.Product.Name,
		ProductPrice:    line.Product.Price,
		ProductImageURL: line.Product.ImageURL,
		Quantity:        line.Quantity,
		AddedAt:         line.AddedAt,
	}
}

func favoriteRecord(p catalog.Product) *domain.Favorite {
	return &domain.Favorite{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		RatingScore: p.Rating.Score,
	}
}
