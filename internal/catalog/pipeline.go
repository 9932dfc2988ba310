package catalog

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jafarshop/storefront/internal/domain"
)

// createdAtLayouts are the timestamp shapes the products backend has been seen to emit
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Apply filters and orders products by criteria. It returns a new slice and
// never mutates its input. Stages run in a fixed order: category, price,
// search, then a stable sort.
func Apply(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	result := make([]domain.Product, 0, len(products))

	query := strings.TrimSpace(criteria.SearchQuery)
	lower := cases.Lower(language.Und)
	if query != "" {
		query = lower.String(query)
	}

	for _, p := range products {
		if !domain.IsAllCategories(criteria.Category) && p.Category != criteria.Category {
			continue
		}
		if !criteria.PriceRange.Contains(p.Price) {
			continue
		}
		if query != "" &&
			!strings.Contains(lower.String(p.Name), query) &&
			!strings.Contains(lower.String(p.Description), query) {
			continue
		}
		result = append(result, p)
	}

	switch criteria.SortKey {
	case domain.SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	default:
		sortNewestFirst(result)
	}
	return result
}

// sortNewestFirst stably orders products by created_at descending.
// Records whose timestamp is empty or unparsable go after all dated records.
func sortNewestFirst(products []domain.Product) {
	type keyed struct {
		p  domain.Product
		t  time.Time
		ok bool
	}
	keys := make([]keyed, len(products))
	for i, p := range products {
		t, ok := parseCreatedAt(p.CreatedAt)
		keys[i] = keyed{p: p, t: t, ok: ok}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if !keys[i].ok {
			return false
		}
		if !keys[j].ok {
			return true
		}
		return keys[i].t.After(keys[j].t)
	})
	for i := range keys {
		products[i] = keys[i].p
	}
}

func parseCreatedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
