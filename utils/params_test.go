package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		url               string
		page, limit, skip int64
	}{
		{"/api/floorplans", 1, 10, 0},
		{"/api/floorplans?page=3&limit=20", 3, 20, 40},
		{"/api/floorplans?page=0&limit=-5", 1, 10, 0},
		{"/api/floorplans?limit=9999", 1, 100, 0},
		{"/api/floorplans?page=abc", 1, 10, 0},
	}

	for _, tc := range tests {
		r := httptest.NewRequest("GET", tc.url, nil)
		page, limit, skip := ParsePagination(r, 10, 100)
		if page != tc.page || limit != tc.limit || skip != tc.skip {
			t.Errorf("%s: got (%d, %d, %d), want (%d, %d, %d)",
				tc.url, page, limit, skip, tc.page, tc.limit, tc.skip)
		}
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, limit, want int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tc := range tests {
		if got := PageCount(tc.total, tc.limit); got != tc.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
