package types

import "math"

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// PageRequest is the shared paging input of every list endpoint.
type PageRequest struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Normalize clamps the request: page numbers below 1 become 1, page sizes
// outside [1, MaxPageSize] fall back to DefaultPageSize.
func (p PageRequest) Normalize() PageRequest {
	if p.PageNumber < 1 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

func (p PageRequest) Limit() uint64 {
	return uint64(p.PageSize)
}

// Offset is the number of rows to skip. It saturates at math.MaxInt64, the
// largest OFFSET Postgres accepts, so far pages come back empty.
func (p PageRequest) Offset() uint64 {
	if p.PageNumber < 1 || p.PageSize < 1 {
		return 0
	}
	skipped := uint64(p.PageNumber - 1)
	size := uint64(p.PageSize)
	if skipped > math.MaxInt64/size {
		return math.MaxInt64
	}
	return skipped * size
}

// PagedResult is the paging envelope returned by list endpoints.
type PagedResult[T any] struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

func NewPagedResult[T any](page PageRequest, items []T, total int64) PagedResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return PagedResult[T]{
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalPages: TotalPages(total, page.PageSize),
		TotalCount: total,
		Items:      items,
	}
}

func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
