package browse

import "math"

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Page returns the 1-indexed page slice of items.
func Page[T any](items []T, page, perPage int) []T {
	p := NewPagination(page, perPage, len(items))
	start := (p.Page - 1) * p.PerPage
	if start >= len(items) {
		return nil
	}
	end := min(start+p.PerPage, len(items))
	return items[start:end]
}
