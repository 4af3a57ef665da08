package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/shared/pagination"
)

func pages(markers []pagination.Marker) []int {
	res := []int{}
	for _, m := range markers {
		if !m.Ellipsis {
			res = append(res, m.Page)
		}
	}

	return res
}

func ellipses(markers []pagination.Marker) int {
	count := 0
	for _, m := range markers {
		if m.Ellipsis {
			count++
		}
	}

	return count
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		expected   int
	}{
		{name: "below range clamps to 1", page: 0, totalPages: 5, expected: 1},
		{name: "negative clamps to 1", page: -3, totalPages: 5, expected: 1},
		{name: "above range clamps to total", page: 9, totalPages: 5, expected: 5},
		{name: "in range unchanged", page: 3, totalPages: 5, expected: 3},
		{name: "zero total pages clamps to 1", page: 4, totalPages: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pagination.Clamp(tt.page, tt.totalPages))
		})
	}
}

func TestWindow_SinglePage(t *testing.T) {
	for _, totalPages := range []int{-1, 0, 1} {
		markers := pagination.Window(1, totalPages)

		assert.Equal(t, []int{1}, pages(markers))
		assert.Zero(t, ellipses(markers))
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name          string
		currentPage   int
		totalPages    int
		expectedPages []int
		wantEllipses  int
	}{
		{
			name:          "middle of a long range",
			currentPage:   5,
			totalPages:    9,
			expectedPages: []int{1, 3, 4, 5, 6, 7, 9},
			wantEllipses:  2,
		},
		{
			name:          "start of range has no leading ellipsis",
			currentPage:   1,
			totalPages:    9,
			expectedPages: []int{1, 2, 3, 9},
			wantEllipses:  1,
		},
		{
			name:          "end of range has no trailing ellipsis",
			currentPage:   9,
			totalPages:    9,
			expectedPages: []int{1, 7, 8, 9},
			wantEllipses:  1,
		},
		{
			name:          "gap of one page shows the page itself, not an ellipsis",
			currentPage:   4,
			totalPages:    7,
			expectedPages: []int{1, 2, 3, 4, 5, 6, 7},
			wantEllipses:  0,
		},
		{
			name:          "small range is fully enumerated",
			currentPage:   2,
			totalPages:    3,
			expectedPages: []int{1, 2, 3},
			wantEllipses:  0,
		},
		{
			name:          "out of range current page is clamped before windowing",
			currentPage:   42,
			totalPages:    9,
			expectedPages: []int{1, 7, 8, 9},
			wantEllipses:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markers := pagination.Window(tt.currentPage, tt.totalPages)

			assert.Equal(t, tt.expectedPages, pages(markers))
			assert.Equal(t, tt.wantEllipses, ellipses(markers))
		})
	}
}

func TestWindow_MonotonicAndUnique(t *testing.T) {
	for totalPages := 1; totalPages <= 20; totalPages++ {
		for currentPage := -2; currentPage <= totalPages+2; currentPage++ {
			nums := pages(pagination.Window(currentPage, totalPages))

			for i := 1; i < len(nums); i++ {
				assert.Greater(t, nums[i], nums[i-1],
					"window must be strictly increasing for current=%d total=%d", currentPage, totalPages)
			}

			for _, n := range nums {
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, totalPages)
			}
		}
	}
}
