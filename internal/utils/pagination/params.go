package pagination

import "strings"

// SortDirection is the direction of a sorted listing.
type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

const (
	defaultSize = 20
	maxSize     = 200
)

// Page holds index-based pagination and sorting parameters for list queries.
type Page struct {
	PageIndex     int
	Size          int
	SortColumn    string
	SortDirection SortDirection
}

// Normalized returns a copy of p with size bounds applied and the sort
// direction canonicalized to ASC/DESC.
func (p Page) Normalized() Page {
	if p.PageIndex < 0 {
		p.PageIndex = 0
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	if strings.EqualFold(string(p.SortDirection), string(Descending)) {
		p.SortDirection = Descending
	} else {
		p.SortDirection = Ascending
	}
	return p
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	n := p.Normalized()
	return n.PageIndex * n.Size
}

// Limit returns the row limit for the page.
func (p Page) Limit() int {
	return p.Normalized().Size
}

// SortColumnOrDefault returns the sort column, falling back to def when the
// requested column is not in the allowed set. Guards against SQL injection via
// sort parameters.
func (p Page) SortColumnOrDefault(def string, allowed ...string) string {
	for _, col := range allowed {
		if strings.EqualFold(p.SortColumn, col) {
			return col
		}
	}
	return def
}

// Slice applies page bounds to an in-memory slice. Used where filters are
// evaluated in the application layer rather than pushed into the store.
func Slice[T any](items []T, p Page) []T {
	n := p.Normalized()
	start := n.PageIndex * n.Size
	if start >= len(items) {
		return []T{}
	}
	end := start + n.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
