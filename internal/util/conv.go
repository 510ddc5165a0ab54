package util

import (
	"strconv"
)

// ParsePositiveInt returns def when s is empty, malformed or not positive.
func ParsePositiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// ParsePage reads page/limit query values, clamping limit to max.
func ParsePage(pageStr, limitStr string, max int) (page, limit int) {
	page = ParsePositiveInt(pageStr, 1)
	limit = ParsePositiveInt(limitStr, 20)
	if limit > max {
		limit = max
	}
	return page, limit
}
