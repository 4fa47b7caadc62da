//go:build wireinject
// +build wireinject

package shopping

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/shopfront/internal/shopping/store"
	"github.com/tair/shopfront/pkg/auth"
)

// InitializeApp builds the store and HTTP handler with all dependencies
func InitializeApp(db *gorm.DB, client store.CatalogClient, tokens *auth.TokenMaker, reg prometheus.Registerer) (*App, error) {
	wire.Build(
		StoreSet,
		HandlerSet,
		ProvideApp,
	)
	return nil, nil
}
