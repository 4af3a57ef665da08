// Package pagination computes the bounded page-number window rendered by
// list controls: the current page plus its neighbors, with the first and
// last page pinned behind ellipsis markers when the window does not reach
// them.
package pagination

const (
	// PageRange is how many neighbor pages are shown on each side of the
	// current page.
	PageRange = 2
)

// Marker is one entry of a page window: either a concrete page number or
// an ellipsis gap.
type Marker struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Clamp forces page into [1, totalPages]. A totalPages below 1 clamps to 1.
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		return 1
	}

	if page > totalPages {
		return totalPages
	}

	return page
}

// Window returns the ordered page markers around currentPage. The window
// spans [currentPage-PageRange, currentPage+PageRange] clamped into
// [1, totalPages]; page 1 and totalPages are always present, separated by
// an ellipsis marker only when the gap to the window is wider than one
// page. totalPages <= 1 yields exactly [1].
func Window(currentPage, totalPages int) []Marker {
	if totalPages < 1 {
		totalPages = 1
	}

	currentPage = Clamp(currentPage, totalPages)

	startPage := max(1, currentPage-PageRange)
	endPage := min(totalPages, currentPage+PageRange)

	markers := []Marker{}

	if startPage > 1 {
		markers = append(markers, Marker{Page: 1})

		if startPage > 2 {
			markers = append(markers, Marker{Ellipsis: true})
		}
	}

	for page := startPage; page <= endPage; page++ {
		markers = append(markers, Marker{Page: page})
	}

	if endPage < totalPages {
		if endPage < totalPages-1 {
			markers = append(markers, Marker{Ellipsis: true})
		}

		markers = append(markers, Marker{Page: totalPages})
	}

	return markers
}
