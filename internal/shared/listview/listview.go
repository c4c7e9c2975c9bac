// Package listview derives the read-only page of a collection shown by a
// list screen. Everything here is a pure function of its inputs and is
// recomputed on every call.
package listview

import (
	"strings"
)

// DefaultPageSize is the number of rows per page on every list screen.
const DefaultPageSize = 5

// DefaultWindow is the number of numbered page buttons shown at once.
const DefaultWindow = 3

// TabAll disables the status tab filter.
const TabAll = "ALL"

// Fields returns the searchable text of an item.
type Fields[T any] func(T) []string

// Filter keeps items where any field contains term, ignoring case. The term
// is used as typed: only an empty term keeps everything, and a term of
// spaces matches fields that contain one.
func Filter[T any](items []T, term string, fields Fields[T]) []T {
	needle := strings.ToLower(term)
	if needle == "" || fields == nil {
		return append([]T(nil), items...)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// FilterTab keeps items whose status equals tab exactly. TabAll and the
// empty tab keep everything.
func FilterTab[T any](items []T, tab string, status func(T) string) []T {
	if tab == "" || tab == TabAll || status == nil {
		return append([]T(nil), items...)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if status(it) == tab {
			out = append(out, it)
		}
	}
	return out
}

// TabCounts counts items per tab. TabAll counts everything. Counts are
// meant to be taken on the collection before any search term is applied.
func TabCounts[T any](items []T, tabs []string, status func(T) string) map[string]int {
	counts := make(map[string]int, len(tabs))
	for _, tab := range tabs {
		counts[tab] = 0
	}
	for _, it := range items {
		if _, ok := counts[TabAll]; ok {
			counts[TabAll]++
		}
		if status == nil {
			continue
		}
		if s := status(it); s != TabAll {
			if _, ok := counts[s]; ok {
				counts[s]++
			}
		}
	}
	return counts
}

// TotalPages returns ceil(count/size), or 0 when there is nothing to show.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Page is one slice of a filtered list.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Empty reports whether the filtered list has no rows, in which case the
// list shows its empty-state placeholder instead of a table.
func (p Page[T]) Empty() bool {
	return p.Total == 0
}

// Paginate returns the 1-based page of items. Pages outside
// [1, TotalPages] yield no rows; navigation never wraps.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	pages := TotalPages(total, size)
	out := Page[T]{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
	start := (page - 1) * size
	if start >= total {
		out.Items = []T{}
		return out
	}
	end := start + size
	if end > total {
		end = total
	}
	out.Items = append([]T(nil), items[start:end]...)
	return out
}

// Window returns the numbered page buttons around current: the first page
// anchors to [1..width], the last page to the final width pages, and any
// interior page is centred on itself.
func Window(current, totalPages, width int) []int {
	if totalPages <= 0 || width <= 0 {
		return nil
	}
	if width > totalPages {
		width = totalPages
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}
	start := current - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > totalPages {
		start = totalPages - width + 1
	}
	out := make([]int, width)
	for i := range out {
		out[i] = start + i
	}
	return out
}
