package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/shopfront/internal/shopping/domain"
)

var tracer = otel.Tracer("shopping-repository")

// TracedFavoriteRepository wraps a FavoriteRepository with tracing
type TracedFavoriteRepository struct {
	inner domain.FavoriteRepository
}

// NewTracedFavoriteRepository creates a favorite repository with tracing
func NewTracedFavoriteRepository(inner domain.FavoriteRepository) *TracedFavoriteRepository {
	return &TracedFavoriteRepository{inner: inner}
}

func (r *TracedFavoriteRepository) Save(ctx context.Context, favorite *domain.Favorite) error {
	ctx, span := tracer.Start(ctx, "repository.favorite.Save",
		trace.WithAttributes(
			attribute.Int("product.id", favorite.ProductID),
			attribute.String("product.name", favorite.Name),
		),
	)
	defer span.End()

	return record(span, r.inner.Save(ctx, favorite))
}

func (r *TracedFavoriteRepository) Remove(ctx context.Context, productID int) error {
	ctx, span := tracer.Start(ctx, "repository.favorite.Remove",
		trace.WithAttributes(attribute.Int("product.id", productID)),
	)
	defer span.End()

	return record(span, r.inner.Remove(ctx, productID))
}

func (r *TracedFavoriteRepository) FindAll(ctx context.Context) ([]domain.Favorite, error) {
	ctx, span := tracer.Start(ctx, "repository.favorite.FindAll")
	defer span.End()

	favorites, err := r.inner.FindAll(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("favorites.count", len(favorites)))
	}
	return favorites, record(span, err)
}

func (r *TracedFavoriteRepository) IsFavorite(ctx context.Context, productID int) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.favorite.IsFavorite",
		trace.WithAttributes(attribute.Int("product.id", productID)),
	)
	defer span.End()

	found, err := r.inner.IsFavorite(ctx, productID)
	return found, record(span, err)
}

// TracedCartRepository wraps a CartRepository with tracing
type TracedCartRepository struct {
	inner domain.CartRepository
}

// NewTracedCartRepository creates a cart repository with tracing
func NewTracedCartRepository(inner domain.CartRepository) *TracedCartRepository {
	return &TracedCartRepository{inner: inner}
}

func (r *TracedCartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	ctx, span := tracer.Start(ctx, "repository.cart.Upsert",
		trace.WithAttributes(
			attribute.Int("product.id", item.ProductID),
			attribute.Int("cart.quantity", item.Quantity),
		),
	)
	defer span.End()

	return record(span, r.inner.Upsert(ctx, item))
}

func (r *TracedCartRepository) Remove(ctx context.Context, productID int) error {
	ctx, span := tracer.Start(ctx, "repository.cart.Remove",
		trace.WithAttributes(attribute.Int("product.id", productID)),
	)
	defer span.End()

	return record(span, r.inner.Remove(ctx, productID))
}

func (r *TracedCartRepository) FindAll(ctx context.Context) ([]domain.CartItem, error) {
	ctx, span := tracer.Start(ctx, "repository.cart.FindAll")
	defer span.End()

	items, err := r.inner.FindAll(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("cart.count", len(items)))
	}
	return items, record(span, err)
}

func (r *TracedCartRepository) Clear(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "repository.cart.Clear")
	defer span.End()

	return record(span, r.inner.Clear(ctx))
}

func record(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
