package utils

import (
	"net/http"
	"strconv"
)

// ParsePagination reads page/limit query parameters and returns (page, limit,
// skip) with sane bounds applied.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (page, limit, skip int64) {
	q := r.URL.Query()

	page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit, (page - 1) * limit
}

// PageCount is ceil(total/limit).
func PageCount(total, limit int64) int64 {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
