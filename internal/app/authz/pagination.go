package authz

// Pagination is the metadata returned alongside every list page. Pages is
// ceil(Total/Limit); a page beyond the last yields an empty item list while
// the metadata keeps reflecting true totals.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// NormalizePage clamps caller-supplied paging to sane values: anything below
// one falls back to the defaults rather than erroring.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func NewPagination(page, limit, total int) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
