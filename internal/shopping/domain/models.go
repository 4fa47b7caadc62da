package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by point lookups when no record exists
var ErrNotFound = errors.New("record not found")

// Favorite is a persisted snapshot of a product the user saved.
// Membership is the existence of a row for the product id; the snapshot
// does not track later catalog edits.
type Favorite struct {
	ProductID   int       `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	RatingScore float64   `json:"rating_score"`
	AddedAt     time.Time `json:"added_at" gorm:"index"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// CartItem is a persisted (product, quantity) pair. At most one row per
// product id; quantity is always positive once stored.
type CartItem struct {
	ProductID       int       `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	ProductName     string    `json:"product_name" gorm:"not null"`
	ProductPrice    float64   `json:"product_price" gorm:"not null"`
	ProductImageURL string    `json:"product_image_url"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	AddedAt         time.Time `json:"added_at" gorm:"index"`
}

// TableName specifies the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// Preference is a persisted key/value pair; the session username lives here
type Preference struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value"`
}

// TableName specifies the table name
func (Preference) TableName() string {
	return "preferences"
}

// FavoriteRepository defines the contract for favorite persistence
type FavoriteRepository interface {
	// Save inserts a favorite, stamping a fresh AddedAt
	Save(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, productID int) error
	// FindAll returns favorites most-recently-added first
	FindAll(ctx context.Context) ([]Favorite, error)
	IsFavorite(ctx context.Context, productID int) (bool, error)
}

// CartRepository defines the contract for cart persistence
type CartRepository interface {
	// Upsert creates or updates the row keyed by ProductID
	Upsert(ctx context.Context, item *CartItem) error
	Remove(ctx context.Context, productID int) error
	// FindAll returns cart items most-recently-added first
	FindAll(ctx context.Context) ([]CartItem, error)
	// Clear deletes every cart row
	Clear(ctx context.Context) error
}

// PreferenceRepository defines the contract for preference persistence
type PreferenceRepository interface {
	// Set creates or updates the value for a key
	Set(ctx context.Context, key, value string) error
	// Get returns ErrNotFound when the key has never been set
	Get(ctx context.Context, key string) (string, error)
}
