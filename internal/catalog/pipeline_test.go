package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storefront/internal/domain"
)

func allCriteria() domain.FilterCriteria {
	return DefaultCriteria(1000000)
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Basic Tee", Description: "cotton", Price: 150, Category: "T-Shirts", CreatedAt: "2026-01-05T00:00:00Z"},
		{ID: 2, Name: "Slim Jeans", Description: "Dark wash denim", Price: 400, Category: "Jeans", CreatedAt: "2026-01-04T00:00:00Z"},
		{ID: 3, Name: "Bomber", Description: "Warm jacket", Price: 900, Category: "Jackets", CreatedAt: "2026-01-03T00:00:00Z"},
		{ID: 4, Name: "Graphic Tee", Description: "Printed COTTON", Price: 150, Category: "T-Shirts", CreatedAt: "2026-01-02T00:00:00Z"},
		{ID: 5, Name: "Denim Jacket", Description: "", Price: 650, Category: "Jackets", CreatedAt: "2026-01-01T00:00:00Z"},
	}
}

func ids(products []domain.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply_EmptyInput(t *testing.T) {
	for _, in := range [][]domain.Product{nil, {}} {
		got := Apply(in, allCriteria())
		require.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestApply_AllCategoryKeepsEverything(t *testing.T) {
	got := Apply(sampleProducts(), allCriteria())
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(got))

	c := allCriteria()
	c.Category = "All"
	assert.Len(t, Apply(sampleProducts(), c), 5)
}

func TestApply_CategoryIsExactAndCaseSensitive(t *testing.T) {
	c := allCriteria()
	c.Category = "Jackets"
	assert.Equal(t, []int64{3, 5}, ids(Apply(sampleProducts(), c)))

	c.Category = "jackets"
	assert.Empty(t, Apply(sampleProducts(), c))
}

func TestApply_PriceRangeInclusive(t *testing.T) {
	c := allCriteria()
	c.PriceRange = domain.PriceRange{Min: 150, Max: 650}
	got := Apply(sampleProducts(), c)
	assert.Equal(t, []int64{1, 2, 4, 5}, ids(got))
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Price, 150.0)
		assert.LessOrEqual(t, p.Price, 650.0)
	}
}

func TestApply_SearchMatchesNameOrDescriptionIgnoringCase(t *testing.T) {
	c := allCriteria()
	c.SearchQuery = "  CoTTon "
	assert.Equal(t, []int64{1, 4}, ids(Apply(sampleProducts(), c)))

	c.SearchQuery = "denim"
	assert.Equal(t, []int64{2, 5}, ids(Apply(sampleProducts(), c)))

	c.SearchQuery = "   "
	assert.Len(t, Apply(sampleProducts(), c), 5)
}

func TestApply_SearchNoMatch(t *testing.T) {
	c := allCriteria()
	c.SearchQuery = "zzz-nothing"
	got := Apply(sampleProducts(), c)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_PriceAscIsStable(t *testing.T) {
	c := allCriteria()
	c.SortKey = domain.SortPriceAsc
	got := Apply(sampleProducts(), c)
	assert.Equal(t, []int64{1, 4, 2, 5, 3}, ids(got))
	for i := 0; i+1 < len(got); i++ {
		assert.LessOrEqual(t, got[i].Price, got[i+1].Price)
	}
}

func TestApply_PriceDescIsStable(t *testing.T) {
	c := allCriteria()
	c.SortKey = domain.SortPriceDesc
	assert.Equal(t, []int64{3, 5, 2, 1, 4}, ids(Apply(sampleProducts(), c)))
}

func TestApply_NewestOrdersByCreatedAtDescending(t *testing.T) {
	in := []domain.Product{
		{ID: 1, CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: 2, CreatedAt: ""},
		{ID: 3, CreatedAt: "2026-03-01T00:00:00Z"},
		{ID: 4, CreatedAt: "not a date"},
		{ID: 5, CreatedAt: "2026-02-01 08:30:00"},
	}
	got := Apply(in, allCriteria())
	assert.Equal(t, []int64{3, 5, 1, 2, 4}, ids(got))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := sampleProducts()
	before := append([]domain.Product(nil), in...)
	c := allCriteria()
	c.SortKey = domain.SortPriceDesc
	c.SearchQuery = "tee"

	_ = Apply(in, c)

	assert.Equal(t, before, in)
}

func TestApply_PipelineOrderAndPagination(t *testing.T) {
	var products []domain.Product
	for i := 1; i <= 20; i++ {
		category := "T-Shirts"
		if i%7 == 0 {
			category = "Jackets"
		}
		if i == 20 {
			category = "Jackets"
		}
		products = append(products, domain.Product{
			ID:        int64(i),
			Name:      fmt.Sprintf("Item %d", i),
			Price:     float64(i * 10),
			Category:  category,
			CreatedAt: fmt.Sprintf("2026-01-%02dT00:00:00Z", 21-i),
		})
	}
	c := allCriteria()
	c.Category = "Jackets"

	filtered := Apply(products, c)
	require.Len(t, filtered, 3)

	page := Paginate(filtered, 1, 8)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Items, 3)
}
