// Package pagination implements offset/limit paging over a filtered,
// ordered query.
package pagination

import (
	"context"
	"fmt"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is the requested page window
type Params struct {
	Page    int `json:"page" form:"page"`
	PerPage int `json:"per_page" form:"per_page"`
}

// Validate checks page >= 1 and per_page in (0, MaxPerPage]
func (p Params) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", p.Page)
	}
	if p.PerPage <= 0 || p.PerPage > MaxPerPage {
		return fmt.Errorf("per_page must be in (0, %d], got %d", MaxPerPage, p.PerPage)
	}
	return nil
}

// Offset returns the number of rows skipped before this page
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Query is a filtered, ordered result set that can be counted and sliced
// independently. Implementations must not share mutable state between calls.
type Query[T any] interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

// Page is the page descriptor returned by Paginate
type Page[T any] struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	Pages       int  `json:"pages"`
	Total       int  `json:"total"`
	Items       []T  `json:"items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// Paginate counts the query, fetches the requested window and describes it.
// A page past the end yields no items but still reports total and pages.
func Paginate[T any](ctx context.Context, p Params, q Query[T]) (*Page[T], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	items, err := q.Fetch(ctx, p.Offset(), p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", p.Page, err)
	}
	if items == nil {
		items = []T{}
	}

	pages := TotalPages(total, p.PerPage)
	return &Page[T]{
		Page:        p.Page,
		PerPage:     p.PerPage,
		Pages:       pages,
		Total:       total,
		Items:       items,
		HasPrevious: p.Page > 1,
		HasNext:     p.Page < pages,
	}, nil
}

// TotalPages is ceil(total/perPage), 0 when total is 0
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Map converts the items of a page, keeping the descriptor
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := &Page[U]{
		Page:        p.Page,
		PerPage:     p.PerPage,
		Pages:       p.Pages,
		Total:       p.Total,
		Items:       make([]U, 0, len(p.Items)),
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
	for _, item := range p.Items {
		out.Items = append(out.Items, fn(item))
	}
	return out
}

// SliceQuery is a Query over an in-memory slice
type SliceQuery[T any] []T

// Count implements Query
func (s SliceQuery[T]) Count(ctx context.Context) (int, error) {
	return len(s), nil
}

// Fetch implements Query
func (s SliceQuery[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	if offset >= len(s) {
		return []T{}, nil
	}
	end := offset + limit
	if end > len(s) {
		end = len(s)
	}
	out := make([]T, end-offset)
	copy(out, s[offset:end])
	return out, nil
}
