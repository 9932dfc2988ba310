package catalog

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/jafarshop/storefront/internal/domain"
)

const (
	// DefaultProductName replaces a missing or blank name
	DefaultProductName = "Unnamed product"
	// DefaultCategory replaces a missing or blank category
	DefaultCategory = "Uncategorized"
	// PlaceholderImageURL is used when a record has neither image_url nor image
	PlaceholderImageURL = "https://via.placeholder.com/400x600?text=No+Image"
)

// Normalize converts a raw backend record into a canonical Product.
// It never fails: every field falls back to a default when absent or mistyped.
// Numeric fields only accept JSON numbers; numeric-looking strings are ignored.
func Normalize(raw map[string]interface{}) domain.Product {
	p := domain.Product{
		ID:          integerOr(raw, "id", 0),
		Name:        nonBlankOr(raw, "name", DefaultProductName),
		Description: getStr(raw, "description"),
		Price:       numberOr(raw, "price", 0),
		Category:    nonBlankOr(raw, "category", DefaultCategory),
		ImageURL:    PlaceholderImageURL,
		Stock:       int(integerOr(raw, "stock", 0)),
		CreatedAt:   getStr(raw, "created_at"),
		Size:        getStr(raw, "size"),
		Color:       getStr(raw, "color"),
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	// image_url first, then the legacy image field
	for _, key := range []string{"image_url", "image"} {
		if u := getStr(raw, key); u != "" {
			p.ImageURL = u
			break
		}
	}
	return p
}

// NormalizeAll normalizes every record, keeping input order
func NormalizeAll(raws []map[string]interface{}) []domain.Product {
	out := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

func getStr(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func nonBlankOr(m map[string]interface{}, key, fallback string) string {
	if s := getStr(m, key); strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// integerOr truncates the numeric value at key. Values outside the int64
// range give fallback.
func integerOr(m map[string]interface{}, key string, fallback int64) int64 {
	f := numberOr(m, key, math.NaN())
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return fallback
	}
	return int64(f)
}

// numberOr returns the finite numeric value at key, or fallback
func numberOr(m map[string]interface{}, key string, fallback float64) float64 {
	var f float64
	switch v := m[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return fallback
		}
		f = n
	default:
		return fallback
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}
