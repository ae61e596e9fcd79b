package transport

import (
	"net/http"
	"strconv"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type pageSpec struct {
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type pagination struct {
	pageSpec
	Count int `json:"count"`
}

func parsePageSpec(r *http.Request) (pageSpec, error) {
	qs := r.URL.Query()
	spec := pageSpec{Limit: defaultLimit}

	if v := qs.Get("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return pageSpec{}, errInvalidLimit
		}
		spec.Limit = min(n, maxLimit)
	}

	if v := qs.Get("offset"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return pageSpec{}, errInvalidOffset
		}
		spec.Offset = n
	}

	return spec, nil
}

var (
	errInvalidLimit  = &parseError{msg: "invalid limit"}
	errInvalidOffset = &parseError{msg: "invalid offset"}
)

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }
