package domain

import "strings"

// CategoryAll is the category sentinel that disables category filtering
const CategoryAll = "all"

// IsAllCategories reports whether category selects every product.
// The sentinel is matched case-insensitively ("All" and "all"); empty also means all.
func IsAllCategories(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || strings.EqualFold(category, CategoryAll)
}

// SortKey selects the ordering applied after filtering
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// IsValid checks if the sort key is one of the supported orderings
func (s SortKey) IsValid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	default:
		return false
	}
}

// AdminEventType is the kind of admin catalog mutation
type AdminEventType string

const (
	EventProductCreated AdminEventType = "product_created"
	EventProductUpdated AdminEventType = "product_updated"
	EventProductDeleted AdminEventType = "product_deleted"
)

// IsValid checks if the event type is known
func (t AdminEventType) IsValid() bool {
	switch t {
	case EventProductCreated, EventProductUpdated, EventProductDeleted:
		return true
	default:
		return false
	}
}
