package controller

import (
	"math"
	"net/http"
	"strconv"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type pageSpec struct {
	Page  int
	Skip  int
	Limit int
}

// parsePageSpec reads page and limit ("count" is accepted as an alias) from
// the query string. Pages are 1-based; the skip offset is derived from them.
func parsePageSpec(r *http.Request) (pageSpec, error) {
	qs := r.URL.Query()

	limit := defaultLimit
	v := qs.Get("limit")
	if v == "" {
		v = qs.Get("count")
	}
	if v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return pageSpec{}, errInvalidLimit
		}
		limit = int(math.Min(float64(n), maxLimit))
	}

	page := 1
	if v := qs.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return pageSpec{}, errInvalidPage
		}
		page = n
	}

	return pageSpec{Page: page, Skip: (page - 1) * limit, Limit: limit}, nil
}

var (
	errInvalidLimit = &parseError{msg: "invalid limit"}
	errInvalidPage  = &parseError{msg: "invalid page"}
)

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }
