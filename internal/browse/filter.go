// Package browse provides the shared list view-model: client-side free-text
// filtering over explicit per-entity string projections, page slicing and
// change notification for aggregating parents.
package browse

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Searchable declares which string projections of an entity the free-text
// filter matches against.
type Searchable interface {
	SearchFields() []string
}

// Filter returns the items having at least one search field containing the
// query, case-insensitively. An empty query returns the input unchanged.
func Filter[T Searchable](items []T, query string) []T {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	pattern := search.New(language.Und, search.IgnoreCase, search.IgnoreDiacritics).CompileString(query)

	var out []T
	for _, item := range items {
		for _, field := range item.SearchFields() {
			if start, _ := pattern.IndexString(field); start >= 0 {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
