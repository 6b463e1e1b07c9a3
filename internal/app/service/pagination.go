package service

// Pagination is the envelope returned beside every paginated list
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPagination derives the envelope from a page, a page size, and the
// total row count. Page and perPage are clamped to sane minimums.
func NewPagination(page, perPage int, totalItems int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))

	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Offset converts the page/perPage pair into a row offset
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}
