package store

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PageSize is the number of records per list page.
const PageSize = 6

// Page is one page of a paginated list.
type Page[T any] struct {
	Items    []T
	Number   int // 1-based
	NumPages int
	Total    int64
	PerPage  int
}

func (p Page[T]) HasPrevious() bool   { return p.Number > 1 }
func (p Page[T]) HasNext() bool       { return p.Number < p.NumPages }
func (p Page[T]) PreviousNumber() int { return p.Number - 1 }
func (p Page[T]) NextNumber() int     { return p.Number + 1 }

// Pages lists every page number, for pagination links.
func (p Page[T]) Pages() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// ParsePage reads a page query parameter. Anything that is not a number is page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// numPages returns the page count for total rows; an empty list still has one page.
func numPages(total int64, perPage int) int {
	if total <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(perPage)))
}

// clampPage moves requested into [1, pages].
func clampPage(requested, pages int) int {
	if requested < 1 {
		return 1
	}
	if requested > pages {
		return pages
	}
	return requested
}

// paginate counts q, clamps the requested page and loads its rows with the
// given associations preloaded.
func paginate[T any](q *gorm.DB, requested int, preload ...string) (Page[T], error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}
	pages := numPages(total, PageSize)
	number := clampPage(requested, pages)
	items := make([]T, 0, PageSize)
	find := q.Session(&gorm.Session{})
	for _, assoc := range preload {
		find = find.Preload(assoc)
	}
	err := find.
		Order("id ASC").
		Limit(PageSize).
		Offset((number - 1) * PageSize).
		Find(&items).Error
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Number: number, NumPages: pages, Total: total, PerPage: PageSize}, nil
}
