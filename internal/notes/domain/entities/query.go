package entities

import "math"

// Sort fields accepted by the list endpoint.
const (
	SortByUpdatedAt = "updatedAt"
	SortByCreatedAt = "createdAt"
	SortByTitle     = "title"
)

// Sort directions accepted by the list endpoint.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListQuery describes one request against the notes list: full-text search,
// tag filter, sort and pagination. Filters combine with logical AND.
type ListQuery struct {
	Search string
	Tag    string
	Page   int
	Limit  int
	Sort   string
	Order  string
}

// Normalize clamps pagination values and falls back to the default sort for
// unknown sort or order values, so an invalid query can never reach storage.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	switch q.Sort {
	case SortByUpdatedAt, SortByCreatedAt, SortByTitle:
	default:
		q.Sort = SortByUpdatedAt
	}
	switch q.Order {
	case OrderAsc, OrderDesc:
	default:
		q.Order = OrderDesc
	}
	return q
}

// Offset returns the number of rows to skip for the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination describes the position of one page within the full result set.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalNotes  int  `json:"totalNotes"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// NewPagination computes pagination metadata for a page of the given size.
// With zero matching notes TotalPages is 0 and the page is empty.
func NewPagination(page, limit, total int) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalNotes:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
