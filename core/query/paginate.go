package query

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mnee-network/explorer/core/types"
)

// Page is a bounded slice of a list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate returns items[(page-1)*size : page*size] clamped to the bounds of
// items. A page past the end yields an empty slice. page is 1-based.
func Paginate[T any](items []T, page, size int) (Page[T], error) {
	defer observe("paginate", time.Now())

	if err := checkPage(page, size); err != nil {
		return Page[T]{}, err
	}
	total := len(items)
	res := Page[T]{
		Items:      []T{},
		Page:       page,
		PerPage:    size,
		Total:      total,
		TotalPages: totalPages(total, size),
	}
	start := (page - 1) * size
	if start >= total {
		return res, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	res.Items = items[start:end]
	return res, nil
}

func checkPage(page, size int) error {
	if size <= 0 {
		return errors.Wrapf(types.ErrInvalidArgument, "page size must be positive: %d", size)
	}
	if page < 1 {
		return errors.Wrapf(types.ErrInvalidArgument, "page must be at least 1: %d", page)
	}
	return nil
}

func totalPages(total, size int) int {
	return (total + size - 1) / size
}

// Pagination is the pagination state of a list view.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

// DefaultPerPage is the page size of a fresh list view.
const DefaultPerPage = 25

// NewPagination returns the first page of total items.
func NewPagination(perPage, total int) (Pagination, error) {
	if err := checkPage(1, perPage); err != nil {
		return Pagination{}, err
	}
	return Pagination{Page: 1, PerPage: perPage, Total: total}, nil
}

// TotalPages returns ceil(Total / PerPage).
func (p Pagination) TotalPages() int {
	if p.PerPage <= 0 {
		return 0
	}
	return totalPages(p.Total, p.PerPage)
}

// Set changes page and page size. A page beyond the last one is kept and
// shows an empty page. Only a page size change clamps the page into
// [1, max(1, TotalPages)].
func (p Pagination) Set(page, perPage int) (Pagination, error) {
	if err := checkPage(page, perPage); err != nil {
		return p, err
	}
	resized := perPage != p.PerPage
	p.Page, p.PerPage = page, perPage
	if resized {
		return p.clamp(), nil
	}
	return p, nil
}

// WithTotal changes the item count and clamps the page.
func (p Pagination) WithTotal(total int) Pagination {
	p.Total = total
	return p.clamp()
}

// Reset moves back to the first page.
func (p Pagination) Reset() Pagination {
	p.Page = 1
	return p
}

func (p Pagination) clamp() Pagination {
	last := p.TotalPages()
	if last < 1 {
		last = 1
	}
	if p.Page > last {
		p.Page = last
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}
