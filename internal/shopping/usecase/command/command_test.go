package command_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/internal/shopping/repository"
	"github.com/tair/shopfront/internal/shopping/store"
	"github.com/tair/shopfront/internal/shopping/usecase/command"
	"github.com/tair/shopfront/pkg/database"
)

type staticCatalog struct {
	products []catalog.Product
}

func (c staticCatalog) FetchProducts(context.Context) ([]catalog.Product, error) {
	return c.products, nil
}

func (c staticCatalog) FetchProductsByCategory(_ context.Context, category string) ([]catalog.Product, error) {
	return c.products, nil
}

func (c staticCatalog) FetchCategories(context.Context) ([]string, error) {
	return []string{"shoes"}, nil
}

func newCommandStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver: database.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	client := staticCatalog{products: []catalog.Product{
		{ID: 1, Name: "Red Shoe", Price: 10.0, Category: "Shoes", Available: true},
	}}

	s := store.New(store.Deps{
		Catalog:     client,
		Favorites:   repository.NewGormFavoriteRepository(db),
		Cart:        repository.NewGormCartRepository(db),
		Preferences: repository.NewGormPreferenceRepository(db),
	})
	t.Cleanup(s.Close)
	s.LoadCatalog(context.Background())
	return s
}

func TestAddToCartValidation(t *testing.T) {
	ctx := context.Background()
	handler := command.NewAddToCartHandler(newCommandStore(t))

	tests := []struct {
		name    string
		cmd     command.AddToCartCommand
		wantErr bool
	}{
		{"invalid product id", command.AddToCartCommand{ProductID: 0, Quantity: 1}, true},
		{"negative product id", command.AddToCartCommand{ProductID: -3, Quantity: 1}, true},
		{"negative quantity", command.AddToCartCommand{ProductID: 1, Quantity: -1}, true},
		{"unknown product", command.AddToCartCommand{ProductID: 42, Quantity: 1}, true},
		{"known product", command.AddToCartCommand{ProductID: 1, Quantity: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := handler.Handle(ctx, tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Handle(%+v) error = %v, wantErr %v", tt.cmd, err, tt.wantErr)
			}
			if !tt.wantErr && len(items) == 0 {
				t.Fatal("successful add must return the cart lines")
			}
		})
	}
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	handler := command.NewAddToCartHandler(newCommandStore(t))

	items, err := handler.Handle(ctx, command.AddToCartCommand{ProductID: 1})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("items = %+v, want one line with quantity 1", items)
	}
}

func TestToggleFavoriteValidation(t *testing.T) {
	ctx := context.Background()
	s := newCommandStore(t)
	handler := command.NewToggleFavoriteHandler(s)

	if _, err := handler.Handle(ctx, command.ToggleFavoriteCommand{ProductID: 0}); err == nil {
		t.Fatal("want error for product id 0")
	}
	if _, err := handler.Handle(ctx, command.ToggleFavoriteCommand{ProductID: 42}); err == nil {
		t.Fatal("want error for unknown product")
	}

	favorited, err := handler.Handle(ctx, command.ToggleFavoriteCommand{ProductID: 1})
	if err != nil || !favorited {
		t.Fatalf("Handle = (%v, %v), want (true, nil)", favorited, err)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	ctx := context.Background()
	s := newCommandStore(t)
	handler := command.NewLoginHandler(s)

	if err := handler.Handle(ctx, command.LoginCommand{Username: "maria"}); err == nil {
		t.Fatal("want error when password is empty")
	}
	if err := handler.Handle(ctx, command.LoginCommand{Password: "secret"}); err == nil {
		t.Fatal("want error when username is empty")
	}
	if err := handler.Handle(ctx, command.LoginCommand{Username: "maria", Password: "secret"}); err != nil {
		t.Fatalf("valid login: %v", err)
	}
	if !s.IsLoggedIn() {
		t.Fatal("login did not set the session")
	}

	if err := command.NewLogoutHandler(s).Handle(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.IsLoggedIn() {
		t.Fatal("logout did not clear the session")
	}
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	ctx := context.Background()
	s := newCommandStore(t)

	if _, err := command.NewAddToCartHandler(s).Handle(ctx, command.AddToCartCommand{ProductID: 1, Quantity: 3}); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := command.NewUpdateQuantityHandler(s).Handle(ctx, command.UpdateQuantityCommand{ProductID: 1, Quantity: 0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %+v, want empty cart", items)
	}
}
