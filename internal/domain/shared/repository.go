package shared

// Filter carries the list-query options shared by every repository:
// pagination, sorting and a free-text search term. Filters holds
// column-equality constraints keyed by column name.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns the first page of twenty rows, newest first.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Offset converts page/page-size into a row offset, clamping negative
// values from out-of-range pages to zero.
func (f Filter) Offset() int {
	offset := (f.Page - 1) * f.PageSize
	if offset < 0 {
		return 0
	}
	return offset
}

// Limit returns the page size, falling back to twenty when unset.
func (f Filter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	return f.PageSize
}
