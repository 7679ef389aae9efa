package http

import (
	"net/http"
	"strconv"
)

// queryString returns the query parameter or nil when absent.
func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt parses an optional integer parameter. ok is false on a malformed value.
func queryInt(r *http.Request, key string) (v *int, ok bool) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// queryFloat parses an optional float parameter. ok is false on a malformed value.
func queryFloat(r *http.Request, key string) (v *float64, ok bool) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}
