package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/backend"
	"github.com/jafarshop/storefront/internal/catalog"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
)

func main() {
	categoryFlag := flag.String("category", domain.CategoryAll, "Category to show (all for every category)")
	minFlag := flag.Float64("min", 0, "Minimum price (inclusive)")
	maxFlag := flag.Float64("max", -1, "Maximum price (inclusive); defaults to CATALOG_DEFAULT_MAX_PRICE")
	searchFlag := flag.String("search", "", "Search name and description")
	sortFlag := flag.String("sort", string(domain.SortNewest), "Sort: newest, price-asc, price-desc")
	pageFlag := flag.Int("page", 1, "Page number")
	jsonFlag := flag.Bool("json", false, "Print the page as JSON")
	flag.Parse()

	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	sortKey := domain.SortKey(*sortFlag)
	if !sortKey.IsValid() {
		fmt.Fprintf(os.Stderr, "Error: unknown sort %q (use newest, price-asc or price-desc)\n", *sortFlag)
		os.Exit(1)
	}

	criteria := catalog.DefaultCriteria(cfg.Catalog.DefaultMaxPrice)
	criteria.Category = *categoryFlag
	criteria.PriceRange.Min = *minFlag
	if *maxFlag >= 0 {
		criteria.PriceRange.Max = *maxFlag
	}
	criteria.SearchQuery = *searchFlag
	criteria.SortKey = sortKey

	logger := zap.NewNop()
	client := backend.NewClient(cfg.ProductsAPI.BaseURL, cfg.ProductsAPI.Token, cfg.ProductsAPI.FetchLimit, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raws, err := client.FetchProducts(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n%v\n", catalog.FetchFailedMessage, err)
		os.Exit(1)
	}

	store := catalog.NewStore()
	store.Replace(catalog.NormalizeAll(raws))
	filtered := catalog.Apply(store.Products(), criteria)
	page := catalog.Paginate(filtered, *pageFlag, cfg.Catalog.PageSize)

	if *jsonFlag {
		out, _ := json.MarshalIndent(map[string]interface{}{
			"items":        page.Items,
			"current_page": *pageFlag,
			"total_pages":  page.TotalPages,
			"total_items":  len(filtered),
			"pages":        catalog.PageWindow(*pageFlag, page.TotalPages),
		}, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("%d of %d products match (category=%s, price %.0f-%.0f, search=%q, sort=%s)\n\n",
		len(filtered), store.Len(), criteria.Category, criteria.PriceRange.Min, criteria.PriceRange.Max, criteria.SearchQuery, criteria.SortKey)

	if len(page.Items) == 0 {
		fmt.Println("No products on this page.")
	}
	for _, p := range page.Items {
		fmt.Printf("  %-6d %-40s %-16s %10.2f  stock %-4d %s\n", p.ID, truncate(p.Name, 40), p.Category, p.Price, p.Stock, p.CreatedAt)
	}

	tokens := catalog.PageWindow(*pageFlag, page.TotalPages)
	labels := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !t.Ellipsis && t.Page == *pageFlag {
			labels = append(labels, "["+t.String()+"]")
			continue
		}
		labels = append(labels, t.String())
	}
	fmt.Printf("\nPage %d of %d: %s\n", *pageFlag, page.TotalPages, strings.Join(labels, " "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
