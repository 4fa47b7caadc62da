package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/internal/shopping/domain"
	"github.com/tair/shopfront/pkg/logger"
)

// PrefCurrentUser is the preference key holding the session username
const PrefCurrentUser = "currentUser"

// DefaultSearchDebounce coalesces rapid search edits before refiltering
const DefaultSearchDebounce = 300 * time.Millisecond

// CatalogClient is the remote catalog surface the store depends on
type CatalogClient interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
	FetchProductsByCategory(ctx context.Context, category string) ([]catalog.Product, error)
	FetchCategories(ctx context.Context) ([]string, error)
}

// CartLine is an in-memory cart entry: a product snapshot plus a quantity
type CartLine struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"added_at"`
}

// Subtotal returns price times quantity for this line
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Deps holds the injected collaborators for a Store
type Deps struct {
	Catalog     CatalogClient
	Favorites   domain.FavoriteRepository
	Cart        domain.CartRepository
	Preferences domain.PreferenceRepository

	// SearchDebounce overrides DefaultSearchDebounce when positive
	SearchDebounce time.Duration
}

// Store is the authoritative in-memory session and shopping state.
// Mutations update memory first, then mirror to the repositories; a
// mirror failure is logged and returned, but the in-memory change
// stands. All methods are safe for concurrent use: the debounce timer
// and catalog fetches complete on background goroutines.
type Store struct {
	deps     Deps
	debounce time.Duration

	mu               sync.Mutex
	products         []catalog.Product
	filtered         []catalog.Product
	favorites        []catalog.Product
	cart             []CartLine
	categories       []string
	searchText       string
	selectedCategory string
	currentUser      string
	loggedIn         bool
	loading          bool
	lastError        string
	source           catalog.Source
	searchTimer      *time.Timer

	// catalog replacement ordering: results apply only if no
	// later-issued request has already been applied
	issuedSeq  uint64
	appliedSeq uint64

	subs []func(Event)
}

// New creates a Store from its dependencies. The catalog starts empty;
// call LoadPersisted and LoadCatalog to populate it.
func New(deps Deps) *Store {
	debounce := deps.SearchDebounce
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}

	return &Store{
		deps:             deps,
		debounce:         debounce,
		categories:       []string{catalog.CategoryAll},
		selectedCategory: catalog.CategoryAll,
		source:           catalog.SourceLocal,
	}
}

// LoadPersisted rehydrates favorites, cart and session from the local
// store. Missing data is not an error; read failures are joined and
// returned after loading whatever could be read.
func (s *Store) LoadPersisted(ctx context.Context) error {
	var errs []error

	favorites, err := s.deps.Favorites.FindAll(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	items, err := s.deps.Cart.FindAll(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	user, err := s.deps.Preferences.Get(ctx, PrefCurrentUser)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		errs = append(errs, err)
	}

	s.mu.Lock()
	s.favorites = make([]catalog.Product, 0, len(favorites))
	for _, f := range favorites {
		s.favorites = append(s.favorites, favoriteProduct(f))
	}

	s.cart = make([]CartLine, 0, len(items))
	for _, item := range items {
		s.cart = append(s.cart, cartLine(item))
	}

	s.currentUser = user
	s.loggedIn = user != ""

	// A fresh process has no catalog yet; browsing must never start empty
	if len(s.products) == 0 {
		s.products = catalog.SampleProducts()
		s.categories = catalog.SampleCategories()
		s.source = catalog.SourceLocal
		s.applyFilterLocked()
	}
	s.mu.Unlock()

	s.publish(EventFavorites)
	s.publish(EventCart)
	s.publish(EventSession)
	s.publish(EventCatalog)

	if len(errs) > 0 {
		err := errors.Join(errs...)
		logger.Error(ctx).Err(err).Msg("Failed to rehydrate persisted state")
		return err
	}

	return nil
}

// Login succeeds iff both credentials are non-empty; it performs no
// real verification. The username is persisted as the session.
func (s *Store) Login(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	s.mu.Lock()
	s.currentUser = username
	s.loggedIn = true
	err := s.deps.Preferences.Set(ctx, PrefCurrentUser, username)
	s.mu.Unlock()

	s.publish(EventSession)

	if err != nil {
		logger.Error(ctx).Err(err).Str("username", username).Msg("Failed to persist session")
		return true, err
	}

	return true, nil
}

// Logout clears the session and persists an empty username
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.currentUser = ""
	s.loggedIn = false
	err := s.deps.Preferences.Set(ctx, PrefCurrentUser, "")
	s.mu.Unlock()

	s.publish(EventSession)

	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to persist logout")
		return err
	}

	return nil
}

// Products returns a copy of the full catalog
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProducts(s.products)
}

// FilteredProducts returns a copy of the current filtered view
func (s *Store) FilteredProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProducts(s.filtered)
}

// Favorites returns a copy of the favorite products, most recent first
func (s *Store) Favorites() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProducts(s.favorites)
}

// CartItems returns a copy of the cart lines
func (s *Store) CartItems() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]CartLine, len(s.cart))
	copy(lines, s.cart)
	return lines
}

// Categories returns a copy of the known category names, "All" first
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories := make([]string, len(s.categories))
	copy(categories, s.categories)
	return categories
}

// CurrentUser returns the session username, empty when logged out
func (s *Store) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

// IsLoggedIn reports whether a session is active
func (s *Store) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// UsingRemoteData reports whether the catalog came from the remote API
func (s *Store) UsingRemoteData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source == catalog.SourceRemote
}

// IsLoading reports whether a catalog fetch is in flight
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent user-facing failure message
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SearchText returns the current search filter text
func (s *Store) SearchText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchText
}

// SelectedCategory returns the current category filter
func (s *Store) SelectedCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCategory
}

func copyProducts(src []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(src))
	copy(out, src)
	return out
}

// favoriteProduct rebuilds a product from its persisted snapshot
func favoriteProduct(f domain.Favorite) catalog.Product {
	return catalog.Product{
		ID:          f.ProductID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		ImageURL:    f.ImageURL,
		Category:    f.Category,
		Rating:      catalog.Rating{Score: f.RatingScore},
		Available:   true,
	}
}

// cartLine rebuilds an in-memory line from its persisted snapshot.
// Only the fields the cart mirrors survive a restart.
func cartLine(item domain.CartItem) CartLine {
	return CartLine{
		Product: catalog.Product{
			ID:        item.ProductID,
			Name:      item.ProductName,
			Price:     item.ProductPrice,
			ImageURL:  item.ProductImageURL,
			Available: true,
		},
		Quantity: item.Quantity,
		AddedAt:  item.AddedAt,
	}
}
