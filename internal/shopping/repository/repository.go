package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/shopfront/internal/shopping/domain"
)

// AutoMigrate creates the tables for every persisted shopping entity.
// A migration failure is a startup-abort condition for callers.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Favorite{}, &domain.CartItem{}, &domain.Preference{}); err != nil {
		return fmt.Errorf("failed to migrate shopping tables: %w", err)
	}
	return nil
}

// GormFavoriteRepository persists favorites through gorm
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) Save(ctx context.Context, favorite *domain.Favorite) error {
	favorite.AddedAt = time.Now()
	// Toggling off deletes the row, so a re-save replaces any leftover
	// with a fresh timestamp.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(favorite).Error
}

func (r *GormFavoriteRepository) Remove(ctx context.Context, productID int) error {
	return r.db.WithContext(ctx).Delete(&domain.Favorite{}, "product_id = ?", productID).Error
}

func (r *GormFavoriteRepository) FindAll(ctx context.Context) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := r.db.WithContext(ctx).Order("added_at DESC").Find(&favorites).Error
	return favorites, err
}

func (r *GormFavoriteRepository) IsFavorite(ctx context.Context, productID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

// GormCartRepository persists cart items through gorm
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new cart repository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	var existing domain.CartItem
	err := r.db.WithContext(ctx).First(&existing, "product_id = ?", item.ProductID).Error

	switch {
	case err == nil:
		// Keep the original AddedAt so recency ordering reflects first add
		item.AddedAt = existing.AddedAt
		return r.db.WithContext(ctx).Save(item).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		item.AddedAt = time.Now()
		return r.db.WithContext(ctx).Create(item).Error
	default:
		return err
	}
}

func (r *GormCartRepository) Remove(ctx context.Context, productID int) error {
	return r.db.WithContext(ctx).Delete(&domain.CartItem{}, "product_id = ?", productID).Error
}

func (r *GormCartRepository) FindAll(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.WithContext(ctx).Order("added_at DESC").Find(&items).Error
	return items, err
}

func (r *GormCartRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.CartItem{}).Error
}

// GormPreferenceRepository persists preferences through gorm
type GormPreferenceRepository struct {
	db *gorm.DB
}

// NewGormPreferenceRepository creates a new preference repository
func NewGormPreferenceRepository(db *gorm.DB) *GormPreferenceRepository {
	return &GormPreferenceRepository{db: db}
}

func (r *GormPreferenceRepository) Set(ctx context.Context, key, value string) error {
	pref := domain.Preference{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&pref).Error
}

func (r *GormPreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	var pref domain.Preference
	err := r.db.WithContext(ctx).First(&pref, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return pref.Value, nil
}
