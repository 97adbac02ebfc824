package listing

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// FeaturedLimit is how many products the landing page shows.
const FeaturedLimit = 8

var (
	ErrUnknownCategory = errors.New("unknown category")
	// ErrSuperseded is returned by a Load whose result was discarded because a
	// newer Load started before it finished.
	ErrSuperseded = errors.New("load superseded by a newer request")
)

// SortKey orders the displayed products.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// ParseSortKey maps a query value to a SortKey; anything unknown is SortNone.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	default:
		return SortNone
	}
}

// ParseCategory returns s when it is a known category and "" otherwise.
func ParseCategory(s string) string {
	if models.IsCategory(s) {
		return s
	}
	return ""
}

// Fetcher loads the product collection, optionally filtered by category.
type Fetcher interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
}

// Model holds the fetched products, the category filter and the sort key of
// one listing view.
type Model struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	products   []models.Product
	category   string
	sortKey    SortKey
	loading    bool
}

// New creates an empty listing model.
func New(fetcher Fetcher, logger *slog.Logger) *Model {
	return &Model{
		fetcher:  fetcher,
		logger:   logger,
		products: []models.Product{},
	}
}

// Load fetches products for category ("" for all). A Load started while an
// earlier one is in flight cancels it; only the newest result is applied.
// On failure the previous products are kept.
func (m *Model) Load(ctx context.Context, category string) error {
	if category != "" && !models.IsCategory(category) {
		return ErrUnknownCategory
	}

	m.mu.Lock()
	m.generation++
	gen := m.generation
	if m.cancel != nil {
		m.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.category = category
	m.loading = true
	m.mu.Unlock()

	products, err := m.fetcher.ListProducts(loadCtx, category)

	m.mu.Lock()
	defer m.mu.Unlock()
	cancel()

	if gen != m.generation {
		m.logger.Debug("discarding superseded product load", "category", category, "generation", gen)
		return ErrSuperseded
	}

	m.cancel = nil
	m.loading = false

	if err != nil {
		m.logger.Warn("failed to load products", "category", category, "error", err)
		return err
	}

	m.products = products
	return nil
}

// SetSort changes the sort key used by Displayed.
func (m *Model) SetSort(key SortKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sortKey = key
}

func (m *Model) isLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Model) Category() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.category
}

func (m *Model) SortKey() SortKey {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortKey
}

// loaded returns the fetched products in service order.
func (m *Model) loaded() []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.products)
}

// Displayed returns the products ordered by the current sort key.
func (m *Model) Displayed() []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Sort(m.products, m.sortKey)
}

// Empty reports whether loading finished with nothing to show.
func (m *Model) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.loading && len(m.products) == 0
}

// Sort returns a new slice ordered by price for the price keys and in input
// order for any other key. The input is never modified.
func Sort(products []models.Product, key SortKey) []models.Product {
	out := slices.Clone(products)
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return b.Price.Cmp(a.Price)
		})
	}
	if out == nil {
		out = []models.Product{}
	}
	return out
}

// Featured returns at most FeaturedLimit products in the order given.
func Featured(products []models.Product) []models.Product {
	if len(products) > FeaturedLimit {
		products = products[:FeaturedLimit]
	}
	return slices.Clone(products)
}
