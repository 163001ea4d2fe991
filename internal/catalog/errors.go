package catalog

import (
	"errors"
	"net/http"
)

// Domain errors for catalog lookups.
var (
	ErrNotFound = errors.New("catalog record not found")
)

// MapHTTPStatus maps catalog domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
