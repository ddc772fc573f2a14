// Package page holds the paginated discovery view and the slicing helpers behind it.
package page

import "github.com/nexa-app/nexa/internal/domain/content"

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Entry is an item placed in a page together with its distance from the caller.
type Entry struct {
	Item       content.Item
	DistanceKm float64
}

// Page is one window of an already-sorted sequence. Number is 1-indexed and
// TotalCount is the size of the sorted sequence before paging.
type Page struct {
	Items      []Entry
	TotalCount int
	Number     int
	Size       int
}

// Slice returns the window that skips (number-1)*size elements and takes size.
// Out-of-range windows return an empty, non-nil slice.
func Slice[T any](all []T, number, size int) []T {
	if number < 1 || size < 1 {
		return []T{}
	}
	if len(all) == 0 || number-1 > (len(all)-1)/size {
		return []T{}
	}
	start := (number - 1) * size
	end := min(start+size, len(all))
	return all[start:end]
}

// Cap truncates s to at most n elements.
func Cap[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// New builds a page over sorted.
func New(sorted []Entry, number, size int) Page {
	return Page{
		Items:      Slice(sorted, number, size),
		TotalCount: len(sorted),
		Number:     number,
		Size:       size,
	}
}
