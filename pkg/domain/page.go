package domain

// Page is one page of a filtered collection. It is a view and is never
// persisted.
type Page[T any] struct {
	Data         []T `json:"data"`
	TotalRecords int `json:"totalRecords"`
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
}

// EmptyPage returns a page with no rows that echoes the requested paging.
func EmptyPage[T any](page, pageSize int) Page[T] {
	return Page[T]{Data: []T{}, CurrentPage: page, PageSize: pageSize}
}

// Window returns the [start, end) bounds of page within n items using
// skip/take semantics: pages below 1 start at zero and a non-positive
// pageSize yields an empty window. Pages past the end yield [n, n) for any
// page and pageSize, without overflowing.
func Window(n, page, pageSize int) (start, end int) {
	if pageSize <= 0 || n <= 0 {
		return 0, 0
	}
	if page > 1 {
		if page-1 > n/pageSize {
			return n, n
		}
		start = (page - 1) * pageSize
	}
	end = start + min(pageSize, n-start)
	return start, end
}

// Paginate slices items to the requested page. The result never aliases a
// nil slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	start, end := Window(len(items), page, pageSize)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
