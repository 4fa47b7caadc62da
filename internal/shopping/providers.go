package shopping

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tair/shopfront/internal/shopping/delivery/http"
	"github.com/tair/shopfront/internal/shopping/domain"
	"github.com/tair/shopfront/internal/shopping/repository"
	"github.com/tair/shopfront/internal/shopping/store"
)

// ProvideFavoriteRepository provides the traced favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewTracedFavoriteRepository(repository.NewGormFavoriteRepository(db))
}

// ProvideCartRepository provides the traced cart repository
func ProvideCartRepository(db *gorm.DB) domain.CartRepository {
	return repository.NewTracedCartRepository(repository.NewGormCartRepository(db))
}

// ProvidePreferenceRepository provides the preference repository
func ProvidePreferenceRepository(db *gorm.DB) domain.PreferenceRepository {
	return repository.NewGormPreferenceRepository(db)
}

// ProvideStore provides the shopping state store
func ProvideStore(
	client store.CatalogClient,
	favorites domain.FavoriteRepository,
	cart domain.CartRepository,
	preferences domain.PreferenceRepository,
) *store.Store {
	return store.New(store.Deps{
		Catalog:     client,
		Favorites:   favorites,
		Cart:        cart,
		Preferences: preferences,
	})
}

// ProvideCommandHandlers provides all command handlers
func ProvideCommandHandlers(s *store.Store) httpDelivery.CommandHandlers {
	return httpDelivery.NewCommandHandlers(s)
}

// ProvideQueryHandlers provides all query handlers
func ProvideQueryHandlers(s *store.Store) httpDelivery.QueryHandlers {
	return httpDelivery.NewQueryHandlers(s)
}

// App bundles the constructed store and its HTTP handler
type App struct {
	Store   *store.Store
	Handler *httpDelivery.ShoppingHandler
}

// ProvideApp provides the assembled application
func ProvideApp(s *store.Store, handler *httpDelivery.ShoppingHandler) *App {
	return &App{Store: s, Handler: handler}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
	ProvideCartRepository,
	ProvidePreferenceRepository,
)

var StoreSet = wire.NewSet(
	RepositorySet,
	ProvideStore,
)

var HandlerSet = wire.NewSet(
	ProvideCommandHandlers,
	ProvideQueryHandlers,
	httpDelivery.NewShoppingHandler,
)
