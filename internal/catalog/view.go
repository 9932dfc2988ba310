package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
)

// FetchFailedMessage is shown to the shopper when the catalog could not be loaded
const FetchFailedMessage = "Failed to load products. Please check if backend is running."

// Fetcher supplies the raw product records of a full catalog refresh
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]map[string]interface{}, error)
}

// DefaultCriteria is the initial selection of a new session
func DefaultCriteria(maxPrice float64) domain.FilterCriteria {
	return domain.FilterCriteria{
		Category:   domain.CategoryAll,
		PriceRange: domain.PriceRange{Min: 0, Max: maxPrice},
		SortKey:    domain.SortNewest,
	}
}

// PageInfo describes the position of the visible slice
type PageInfo struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
}

// Snapshot is everything a page render needs from a view
type Snapshot struct {
	PageInfo
	Items       []domain.Product      `json:"items"`
	Pages       []PageToken           `json:"pages"`
	HasPrev     bool                  `json:"has_prev"`
	HasNext     bool                  `json:"has_next"`
	Criteria    domain.FilterCriteria `json:"criteria"`
	Error       string                `json:"error,omitempty"`
	Loaded      bool                  `json:"loaded"`
	RefreshedAt *time.Time            `json:"refreshed_at,omitempty"`
}

// View coordinates one session's catalog: it owns the store, the criteria
// and the current page, and keeps the derived filtered list and visible
// slice in step with them. All state transitions are serialised by mu.
type View struct {
	fetcher  Fetcher
	logger   *zap.Logger
	pageSize int

	mu          sync.Mutex
	store       *Store
	criteria    domain.FilterCriteria
	filtered    []domain.Product
	page        int
	visible     []domain.Product
	totalPages  int
	lastErr     string
	loaded      bool
	refreshedAt time.Time
}

// NewView creates an empty view. pageSize below 1 is treated as 1.
func NewView(fetcher Fetcher, pageSize int, criteria domain.FilterCriteria, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize < 1 {
		pageSize = 1
	}
	v := &View{
		fetcher:  fetcher,
		logger:   logger,
		pageSize: pageSize,
		store:    NewStore(),
		criteria: criteria,
	}
	v.recomputeLocked()
	return v
}

// Refresh fetches the catalog and replaces the store wholesale. The fetch
// runs without holding the lock; whichever refresh completes last wins.
// On failure the catalog becomes empty and a shopper-facing message is kept;
// the error is returned for logging only.
func (v *View) Refresh(ctx context.Context) error {
	var raws []map[string]interface{}
	var err error
	if v.fetcher != nil {
		raws, err = v.fetcher.FetchProducts(ctx)
	}
	products := NormalizeAll(raws)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Warn("Catalog refresh failed, serving empty catalog", zap.Error(err))
		v.store.Replace(nil)
		v.lastErr = FetchFailedMessage
	} else {
		v.store.Replace(products)
		v.lastErr = ""
	}
	v.loaded = true
	v.refreshedAt = time.Now()
	v.recomputeLocked()
	return err
}

// EnsureLoaded refreshes the view if it has never been populated
func (v *View) EnsureLoaded(ctx context.Context) error {
	v.mu.Lock()
	loaded := v.loaded
	v.mu.Unlock()
	if loaded {
		return nil
	}
	return v.Refresh(ctx)
}

// SetCriteria merges patch into the criteria. A change re-runs the
// pipeline and resets the page to 1; an identical result changes nothing.
func (v *View) SetCriteria(patch domain.CriteriaPatch) domain.FilterCriteria {
	c, _ := v.ApplyCriteria(patch, nil)
	return c
}

// ApplyCriteria is SetCriteria with a check on the merged criteria. The
// merge and the check happen under the view lock; when check fails the
// criteria and page are left as they were and the error is returned.
func (v *View) ApplyCriteria(patch domain.CriteriaPatch, check func(domain.FilterCriteria) error) (domain.FilterCriteria, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := patch.ApplyTo(v.criteria)
	if check != nil {
		if err := check(next); err != nil {
			return v.criteria, err
		}
	}
	if next == v.criteria {
		return v.criteria, nil
	}
	v.criteria = next
	v.recomputeLocked()
	return v.criteria, nil
}

// SetPage moves to page n. n below 1 selects page 1; n past the last page
// is kept and shows an empty slice.
func (v *View) SetPage(n int) PageInfo {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 {
		n = 1
	}
	v.page = n
	v.repaginateLocked()
	return v.pageInfoLocked()
}

// NextPage advances one page unless already on the last page
func (v *View) NextPage() PageInfo {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = NextPage(v.page, v.totalPages)
	v.repaginateLocked()
	return v.pageInfoLocked()
}

// PrevPage goes back one page unless already on the first page
func (v *View) PrevPage() PageInfo {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = PrevPage(v.page)
	v.repaginateLocked()
	return v.pageInfoLocked()
}

// VisibleSlice returns the current page's products
func (v *View) VisibleSlice() []domain.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.Product, len(v.visible))
	copy(out, v.visible)
	return out
}

// PageInfo returns the current page position
func (v *View) PageInfo() PageInfo {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageInfoLocked()
}

// Criteria returns the active criteria
func (v *View) Criteria() domain.FilterCriteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// Product looks a product up in the session catalog
func (v *View) Product(id int64) (domain.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Find(id)
}

// CatalogSize returns the number of products in the store
func (v *View) CatalogSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Len()
}

// Snapshot captures the view for rendering
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := make([]domain.Product, len(v.visible))
	copy(items, v.visible)
	s := Snapshot{
		PageInfo: v.pageInfoLocked(),
		Items:    items,
		Pages:    PageWindow(v.page, v.totalPages),
		HasPrev:  v.page > 1,
		HasNext:  v.page < v.totalPages,
		Criteria: v.criteria,
		Error:    v.lastErr,
		Loaded:   v.loaded,
	}
	if !v.refreshedAt.IsZero() {
		t := v.refreshedAt
		s.RefreshedAt = &t
	}
	return s
}

// recomputeLocked re-runs the pipeline and resets to page 1
func (v *View) recomputeLocked() {
	v.filtered = Apply(v.store.Products(), v.criteria)
	v.page = 1
	v.repaginateLocked()
}

func (v *View) repaginateLocked() {
	page := Paginate(v.filtered, v.page, v.pageSize)
	v.visible = page.Items
	v.totalPages = page.TotalPages
}

func (v *View) pageInfoLocked() PageInfo {
	return PageInfo{
		CurrentPage: v.page,
		TotalPages:  v.totalPages,
		PageSize:    v.pageSize,
		TotalItems:  len(v.filtered),
	}
}
