package catalog

import (
	"encoding/json"
	"fmt"
)

// maxVisiblePages is the window size below which every page number is shown
const maxVisiblePages = 7

// Page is one page of a paginated sequence
type Page[T any] struct {
	Items      []T
	TotalPages int
}

// TotalPages returns ceil(count/pageSize), but never less than 1
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns the 1-indexed page of items. A page outside
// [1, TotalPages] yields an empty slice, never a panic.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(len(items), pageSize)
	if page < 1 || page > total {
		return Page[T]{Items: []T{}, TotalPages: total}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{Items: out, TotalPages: total}
}

// PageToken is one entry of the pagination control: a page number or an ellipsis
type PageToken struct {
	Page     int
	Ellipsis bool
}

// Ellipsis marks a gap in the page window
var Ellipsis = PageToken{Ellipsis: true}

func pageNum(n int) PageToken { return PageToken{Page: n} }

func (t PageToken) String() string {
	if t.Ellipsis {
		return "…"
	}
	return fmt.Sprintf("%d", t.Page)
}

// MarshalJSON renders a page as its number and an ellipsis as "ellipsis"
func (t PageToken) MarshalJSON() ([]byte, error) {
	if t.Ellipsis {
		return json.Marshal("ellipsis")
	}
	return json.Marshal(t.Page)
}

// UnmarshalJSON accepts the forms produced by MarshalJSON
func (t *PageToken) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != "ellipsis" {
			return fmt.Errorf("invalid page token %q", s)
		}
		*t = Ellipsis
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = pageNum(n)
	return nil
}

// PageWindow selects which page buttons to display for the current page.
// Up to seven pages are all shown; beyond that the first and last pages are
// always present and ellipses stand in for the skipped ranges.
func PageWindow(current, total int) []PageToken {
	if total < 1 {
		total = 1
	}
	pages := make([]PageToken, 0, maxVisiblePages)
	if total <= maxVisiblePages {
		for i := 1; i <= total; i++ {
			pages = append(pages, pageNum(i))
		}
		return pages
	}

	pages = append(pages, pageNum(1))
	switch {
	case current <= 3:
		for i := 2; i <= 5; i++ {
			pages = append(pages, pageNum(i))
		}
		pages = append(pages, Ellipsis, pageNum(total))
	case current >= total-2:
		pages = append(pages, Ellipsis)
		for i := total - 4; i <= total; i++ {
			pages = append(pages, pageNum(i))
		}
	default:
		pages = append(pages, Ellipsis)
		for i := current - 1; i <= current+1; i++ {
			pages = append(pages, pageNum(i))
		}
		pages = append(pages, Ellipsis, pageNum(total))
	}
	return pages
}

// PrevPage steps back one page; it is a no-op on the first page
func PrevPage(current int) int {
	if current <= 1 {
		return 1
	}
	return current - 1
}

// NextPage steps forward one page; it is a no-op on (or past) the last page
func NextPage(current, total int) int {
	if current >= total {
		return current
	}
	return current + 1
}
