package predictions

import (
	"errors"
	"net/http"
)

// Domain errors for prediction operations.
var (
	ErrNotFound = errors.New("prediction not found")
)

// MapHTTPStatus maps prediction domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
