// Package pagination windows list responses with skip/limit query params.
// List endpoints still answer with a plain JSON array.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// MaxLimit caps a single window. A zero Limit means "everything".
const MaxLimit = 1000

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromContext extracts pagination parameters from the echo context. Both
// skip and offset name the window start.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("skip"))
	if offset <= 0 {
		offset, _ = strconv.Atoi(c.QueryParam("offset"))
	}
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Bounded reports whether the window restricts the result at all.
func (p Params) Bounded() bool {
	return p.Limit > 0 || p.Offset > 0
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Limit > 0 && p.Offset+p.Limit < total
}

// Page returns the window of items described by p. The result is never nil.
func Page[T any](items []T, p Params) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	out := make([]T, end-p.Offset)
	copy(out, items[p.Offset:end])
	return out
}
