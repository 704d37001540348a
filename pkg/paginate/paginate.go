// Package paginate splits ordered records into fixed-size pages and computes
// page navigation. Everything here is pure data; renderers decide presentation.
package paginate

import "fmt"

const (
	// DefaultPageSize is the number of records per report page.
	DefaultPageSize = 100
	// Window is how many page numbers are shown on each side of the current page.
	Window = 2
)

// NumPages returns ceil(n/size). A non-positive size uses DefaultPageSize.
func NumPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Split returns contiguous pages of items in their original order. Every page
// but the last holds exactly size items. Pages share items' backing array.
func Split[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := make([][]T, 0, NumPages(len(items), size))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}

// Nav is the navigation state for one page. Page numbers are 1-based.
type Nav struct {
	Page  int
	Total int

	HasFirst bool
	HasPrev  bool
	HasNext  bool
	HasLast  bool

	WindowStart    int
	WindowEnd      int
	EllipsisBefore bool // window does not reach page 1
	EllipsisAfter  bool // window does not reach the last page
}

// NewNav computes navigation for page out of total pages. page is clamped
// to [1, total].
func NewNav(page, total int) Nav {
	if total < 1 {
		total = 1
	}
	page = max(1, min(page, total))

	n := Nav{
		Page:        page,
		Total:       total,
		HasFirst:    page > 1,
		HasPrev:     page > 1,
		HasNext:     page < total,
		HasLast:     page < total,
		WindowStart: max(1, page-Window),
		WindowEnd:   min(total, page+Window),
	}
	n.EllipsisBefore = n.WindowStart > 1
	n.EllipsisAfter = n.WindowEnd < total
	return n
}

// Pages returns the page numbers in the window, in order.
func (n Nav) Pages() []int {
	pages := make([]int, 0, n.WindowEnd-n.WindowStart+1)
	for p := n.WindowStart; p <= n.WindowEnd; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Prev returns the previous page number, or the current page on page 1.
func (n Nav) Prev() int { return max(1, n.Page-1) }

// Next returns the next page number, or the current page on the last page.
func (n Nav) Next() int { return min(n.Total, n.Page+1) }

// PageFileName returns the file name for page n of a report with base name base.
func PageFileName(base string, n int) string {
	return fmt.Sprintf("%s_page_%d.html", base, n)
}
