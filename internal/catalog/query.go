// Package catalog implements the list page's derived-state pipeline: a pure
// transformation from the full item list to a filtered, searched, sorted view.
// The source slice is never mutated; every call recomputes from scratch.
package catalog

import (
	"sort"
	"strings"

	"itemsvault/internal/domain"
)

// Sort keys accepted by Apply.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortNameAsc  = "nameAsc"
	SortNameDesc = "nameDesc"
)

// Apply filters items by exact type (empty or "All" means no filter), then by
// case-insensitive substring match of query against name or description, then
// sorts by sortKey. Unknown sort keys leave the filtered order untouched.
func Apply(items []domain.Item, typeFilter, query, sortKey string) []domain.Item {
	out := make([]domain.Item, 0, len(items))

	query = strings.ToLower(strings.TrimSpace(query))
	for _, it := range items {
		if typeFilter != "" && typeFilter != "All" && it.Type != typeFilter {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(it.Name), query) &&
			!strings.Contains(strings.ToLower(it.Description), query) {
			continue
		}
		out = append(out, it)
	}

	switch sortKey {
	case SortNewest:
		// Timestamps are RFC 3339 text, so byte order is time order.
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		})
	}

	return out
}
