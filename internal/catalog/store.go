package catalog

import (
	"github.com/jafarshop/storefront/internal/domain"
)

// Store holds the full normalized product set of one session.
// It is only ever replaced wholesale; callers must not mutate returned slices.
type Store struct {
	products []domain.Product
	byID     map[int64]int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{byID: map[int64]int{}}
}

// Replace swaps in a new catalog, ordered newest-first by created_at
func (s *Store) Replace(products []domain.Product) {
	next := make([]domain.Product, len(products))
	copy(next, products)
	sortNewestFirst(next)

	byID := make(map[int64]int, len(next))
	for i, p := range next {
		if _, seen := byID[p.ID]; !seen {
			byID[p.ID] = i
		}
	}
	s.products = next
	s.byID = byID
}

// Products returns the catalog in store order
func (s *Store) Products() []domain.Product {
	return s.products
}

// Len returns the number of products in the catalog
func (s *Store) Len() int {
	return len(s.products)
}

// Find looks a product up by id
func (s *Store) Find(id int64) (domain.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}
