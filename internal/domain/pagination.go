package domain

// PaginationParams selects one page of a newest-first listing.
// Page is 1-based; the HTTP layer clamps both fields before they reach a repository.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset is the number of rows skipped before the page starts.
func (p PaginationParams) Offset() int {
	return max(p.Page-1, 0) * p.PageSize
}

// Limit is the maximum number of rows on the page.
func (p PaginationParams) Limit() int {
	return p.PageSize
}
