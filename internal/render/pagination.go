package render

// Pagination is the view model of the page controls: a window of page
// numbers around the current page plus optional previous/next buttons.
type Pagination struct {
	Current int
	Pages   []int
	HasPrev bool
	HasNext bool
}

// NewPagination renders a ±2 window around current. With a single page
// there is nothing to paginate and the result is empty.
func NewPagination(current, total int) Pagination {
	if total <= 1 {
		return Pagination{Current: current}
	}

	lo := current - 2
	if lo < 1 {
		lo = 1
	}
	hi := current + 2
	if hi > total {
		hi = total
	}

	pages := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		pages = append(pages, i)
	}

	return Pagination{
		Current: current,
		Pages:   pages,
		HasPrev: current > 1,
		HasNext: current < total,
	}
}
