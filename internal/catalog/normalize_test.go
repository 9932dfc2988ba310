package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FullRecord(t *testing.T) {
	raw := map[string]interface{}{
		"id":          float64(42),
		"name":        "Denim Jacket",
		"description": "Washed blue",
		"price":       float64(499000),
		"category":    "Jackets",
		"image_url":   "https://cdn.example.com/jacket.png",
		"image":       "https://cdn.example.com/legacy.png",
		"stock":       float64(7),
		"created_at":  "2026-01-25T10:00:00Z",
		"size":        "L",
		"color":       "blue",
	}

	p := Normalize(raw)

	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "Denim Jacket", p.Name)
	assert.Equal(t, "Washed blue", p.Description)
	assert.Equal(t, 499000.0, p.Price)
	assert.Equal(t, "Jackets", p.Category)
	assert.Equal(t, "https://cdn.example.com/jacket.png", p.ImageURL)
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, "2026-01-25T10:00:00Z", p.CreatedAt)
	assert.Equal(t, "L", p.Size)
	assert.Equal(t, "blue", p.Color)
}

func TestNormalize_Defaults(t *testing.T) {
	p := Normalize(map[string]interface{}{"id": float64(1)})

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, DefaultProductName, p.Name)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, PlaceholderImageURL, p.ImageURL)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, "", p.CreatedAt)
}

func TestNormalize_NilRecord(t *testing.T) {
	p := Normalize(nil)
	assert.Equal(t, DefaultProductName, p.Name)
	assert.Equal(t, PlaceholderImageURL, p.ImageURL)
}

func TestNormalize_NonNumericFieldsFallBack(t *testing.T) {
	p := Normalize(map[string]interface{}{
		"id":    "7",
		"price": "199.99",
		"stock": true,
		"name":  "   ",
	})

	assert.Equal(t, int64(0), p.ID)
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, DefaultProductName, p.Name)
}

func TestNormalize_NegativeNumbersClampToZero(t *testing.T) {
	p := Normalize(map[string]interface{}{"price": float64(-5), "stock": float64(-2)})
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 0, p.Stock)
}

func TestNormalize_ImageFallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want string
	}{
		{"image_url wins", map[string]interface{}{"image_url": "a", "image": "b"}, "a"},
		{"empty image_url falls through", map[string]interface{}{"image_url": "", "image": "b"}, "b"},
		{"legacy image only", map[string]interface{}{"image": "b"}, "b"},
		{"null image", map[string]interface{}{"image": nil}, PlaceholderImageURL},
		{"nothing", map[string]interface{}{}, PlaceholderImageURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw).ImageURL)
		})
	}
}

func TestNormalize_JSONNumber(t *testing.T) {
	p := Normalize(map[string]interface{}{"price": json.Number("12.5"), "id": json.Number("9")})
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, int64(9), p.ID)
}

func TestNormalize_Idempotent(t *testing.T) {
	raws := []map[string]interface{}{
		{},
		{"id": float64(3), "name": "Hoodie", "price": float64(10), "image": "x.png"},
		{"id": float64(4), "price": "bad", "category": nil, "created_at": "2026-01-01"},
	}
	for _, raw := range raws {
		once := Normalize(raw)
		twice := Normalize(once.Raw())
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_DecodedBackendPayload(t *testing.T) {
	body := `{"items":[{"id":1,"name":"Tee","price":150000,"category":"T-Shirts","image":"/images/tee.jpg","stock":null}]}`
	var resp struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	products := NormalizeAll(resp.Items)
	require.Len(t, products, 1)
	assert.Equal(t, "/images/tee.jpg", products[0].ImageURL)
	assert.Equal(t, 0, products[0].Stock)
	assert.Equal(t, 150000.0, products[0].Price)
}

func TestNormalize_OutOfRangeIntegersFallBack(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		id    int64
		stock int
	}{
		{"huge", 1e30, 0, 0},
		{"huge negative", -1e30, 0, 0},
		{"two to the 63", 9223372036854775808, 0, 0},
		{"in range", 12345.9, 12345, 12345},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(map[string]interface{}{"id": tt.value, "stock": tt.value})
			assert.Equal(t, tt.id, p.ID)
			assert.Equal(t, tt.stock, p.Stock)
		})
	}
}
