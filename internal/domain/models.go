package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jafarshop/storefront/pkg/errors"
)

// Product is the canonical catalog record produced by the normalizer
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
	CreatedAt   string  `json:"created_at"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
}

// Raw returns the product in the backend's loosely typed record shape
func (p Product) Raw() map[string]interface{} {
	return map[string]interface{}{
		"id":          float64(p.ID),
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"image_url":   p.ImageURL,
		"stock":       float64(p.Stock),
		"created_at":  p.CreatedAt,
		"size":        p.Size,
		"color":       p.Color,
	}
}

// PriceRange is an inclusive [Min, Max] price bound
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies inside the range, both ends inclusive
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterCriteria is the combined category/price/search/sort selection
type FilterCriteria struct {
	Category    string     `json:"category"`
	PriceRange  PriceRange `json:"price_range"`
	SearchQuery string     `json:"search"`
	SortKey     SortKey    `json:"sort"`
}

// Validate reports criteria a shopper should not be able to select: an
// unknown sort, a negative minimum or a minimum above the maximum
func (c FilterCriteria) Validate() error {
	fields := map[string]string{}
	if !c.SortKey.IsValid() {
		fields["sort"] = fmt.Sprintf("unknown sort %q", c.SortKey)
	}
	if c.PriceRange.Min < 0 {
		fields["min_price"] = "must be non-negative"
	}
	if c.PriceRange.Min > c.PriceRange.Max {
		fields["max_price"] = "must not be below min_price"
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "invalid criteria", Fields: fields}
	}
	return nil
}

// CriteriaPatch carries a partial criteria update. Nil fields are left unchanged.
type CriteriaPatch struct {
	Category    *string  `json:"category,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	SearchQuery *string  `json:"search,omitempty"`
	SortKey     *SortKey `json:"sort,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p CriteriaPatch) IsEmpty() bool {
	return p.Category == nil && p.MinPrice == nil && p.MaxPrice == nil &&
		p.SearchQuery == nil && p.SortKey == nil
}

// ApplyTo returns c with the patch's non-nil fields written over it
func (p CriteriaPatch) ApplyTo(c FilterCriteria) FilterCriteria {
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.MinPrice != nil {
		c.PriceRange.Min = *p.MinPrice
	}
	if p.MaxPrice != nil {
		c.PriceRange.Max = *p.MaxPrice
	}
	if p.SearchQuery != nil {
		c.SearchQuery = *p.SearchQuery
	}
	if p.SortKey != nil {
		c.SortKey = *p.SortKey
	}
	return c
}

// AdminEvent represents an audit event for an admin catalog mutation
type AdminEvent struct {
	ID        uuid.UUID              `json:"id"`
	EventType AdminEventType         `json:"event_type"`
	ProductID int64                  `json:"product_id"`
	Actor     string                 `json:"actor"`
	EventData map[string]interface{} `json:"event_data,omitempty"` // JSONB
	CreatedAt time.Time              `json:"created_at"`
}
