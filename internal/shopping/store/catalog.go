package store

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/pkg/logger"
)

// userFacing messages shown when a remote fetch degrades to local data
const (
	msgCatalogUnavailable  = "Could not reach the product catalog; showing sample products"
	msgCategoryUnavailable = "Could not load products for this category"
)

// LoadCatalog fetches the remote catalog and replaces the product list.
// Any failure falls back to the built-in sample set; the list is never
// left empty. Results apply last-issued-wins: a slow response from an
// older call never overwrites a newer one. The applied source is
// returned; errors never propagate past this boundary.
func (s *Store) LoadCatalog(ctx context.Context) catalog.Source {
	s.mu.Lock()
	s.issuedSeq++
	seq := s.issuedSeq
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	products, err := s.deps.Catalog.FetchProducts(ctx)

	var categories []string
	if err == nil {
		names, catErr := s.deps.Catalog.FetchCategories(ctx)
		if catErr != nil {
			// Category list is cosmetic; keep whatever we had
			logger.Warn(ctx).Err(catErr).Msg("Failed to load categories")
		} else {
			categories = displayCategories(names)
		}
	}

	s.mu.Lock()
	s.loading = false
	if seq < s.appliedSeq {
		source := s.source
		s.mu.Unlock()
		return source
	}
	s.appliedSeq = seq

	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Catalog fetch failed, falling back to sample data")
		s.products = catalog.SampleProducts()
		s.categories = catalog.SampleCategories()
		s.source = catalog.SourceLocal
		s.lastError = msgCatalogUnavailable
	} else {
		s.products = products
		s.source = catalog.SourceRemote
		if categories != nil {
			s.categories = categories
		}
	}

	s.applyFilterLocked()
	source := s.source
	s.mu.Unlock()

	s.publish(EventCatalog)
	s.publish(EventFilter)

	return source
}

// SetCategory changes the category filter and refilters immediately,
// with no debounce. When the catalog is remote-sourced and a concrete
// category is selected, the server-side filtered listing is fetched;
// otherwise the in-memory list is refiltered.
func (s *Store) SetCategory(ctx context.Context, category string) {
	s.mu.Lock()
	s.selectedCategory = category
	needFetch := s.source == catalog.SourceRemote && !strings.EqualFold(category, catalog.CategoryAll)
	if !needFetch {
		s.applyFilterLocked()
		s.mu.Unlock()
		s.publish(EventFilter)
		return
	}

	s.issuedSeq++
	seq := s.issuedSeq
	s.loading = true
	s.mu.Unlock()

	products, err := s.deps.Catalog.FetchProductsByCategory(ctx, category)

	s.mu.Lock()
	s.loading = false
	if seq < s.appliedSeq {
		s.mu.Unlock()
		return
	}
	s.appliedSeq = seq

	if err != nil {
		logger.Warn(ctx).Err(err).Str("category", category).Msg("Category fetch failed")
		s.lastError = msgCategoryUnavailable
	} else {
		s.products = products
	}

	s.applyFilterLocked()
	s.mu.Unlock()

	s.publish(EventCatalog)
	s.publish(EventFilter)
}

// SetSearchText updates the search filter. The refilter is debounced so
// rapid edits coalesce; use Flush to force a pending refilter.
func (s *Store) SetSearchText(text string) {
	s.mu.Lock()
	s.searchText = text
	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	s.searchTimer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		s.applyFilterLocked()
		s.mu.Unlock()
		s.publish(EventFilter)
	})
	s.mu.Unlock()
}

// Flush applies a pending debounced refilter immediately
func (s *Store) Flush() {
	s.mu.Lock()
	if s.searchTimer == nil || !s.searchTimer.Stop() {
		s.mu.Unlock()
		return
	}
	s.searchTimer = nil
	s.applyFilterLocked()
	s.mu.Unlock()
	s.publish(EventFilter)
}

// Close stops any pending debounce timer
func (s *Store) Close() {
	s.mu.Lock()
	if s.searchTimer != nil {
		s.searchTimer.Stop()
		s.searchTimer = nil
	}
	s.mu.Unlock()
}

// applyFilterLocked recomputes the filtered view. Callers hold s.mu.
func (s *Store) applyFilterLocked() {
	search := strings.ToLower(strings.TrimSpace(s.searchText))

	filtered := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		if matchesSearch(p, search) && matchesCategory(p, s.selectedCategory) {
			filtered = append(filtered, p)
		}
	}
	s.filtered = filtered
}

func matchesSearch(p catalog.Product, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

func matchesCategory(p catalog.Product, category string) bool {
	if strings.EqualFold(category, catalog.CategoryAll) || category == "" {
		return true
	}
	return strings.EqualFold(p.Category, category)
}

// displayCategories capitalizes API category names and prepends "All"
func displayCategories(names []string) []string {
	categories := make([]string, 0, len(names)+1)
	categories = append(categories, catalog.CategoryAll)
	for _, name := range names {
		categories = append(categories, capitalize(name))
	}
	return categories
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
