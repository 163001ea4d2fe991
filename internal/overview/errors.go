package overview

import (
	"errors"
	"net/http"
)

// Domain errors for overview assembly.
var (
	ErrNotFound = errors.New("product overview not found")
)

// MapHTTPStatus maps overview domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
