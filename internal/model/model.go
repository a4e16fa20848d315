// Package model declares the rows owned by the store and exposed over HTTP.
package model

import "math"

// PageSize is the fixed page length of both list endpoints.
const PageSize = 20

// PageOffset returns the row offset of the page at 0-based index.
// ok is false when the index is negative or the offset does not fit in an
// int; such a page is past the end of any table and is always empty.
func PageOffset(index int) (offset int, ok bool) {
	if index < 0 || index > math.MaxInt/PageSize {
		return 0, false
	}
	return index * PageSize, true
}
