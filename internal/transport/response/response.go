package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pep299/company-news-api/internal/news"
)

// ErrorBody is the JSON shape of every failed request
type ErrorBody struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// WriteJSON writes v as JSON with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, statusCode int, detail string) error {
	return WriteJSON(w, statusCode, ErrorBody{
		Status: "error",
		Detail: detail,
	})
}

// WriteUnprocessable writes a 422 for request validation failures
func WriteUnprocessable(w http.ResponseWriter, detail string) error {
	return WriteError(w, http.StatusUnprocessableEntity, detail)
}

// WriteInternalError writes a 500 Internal Server Error
func WriteInternalError(w http.ResponseWriter, detail string) error {
	return WriteError(w, http.StatusInternalServerError, detail)
}

// WriteNewsError maps a fetch error to its response. Validation failures
// become 422, everything else 500.
func WriteNewsError(w http.ResponseWriter, err error) error {
	var validationErr *news.ValidationError
	var aggErr *news.AggregationError
	if errors.As(err, &validationErr) && !errors.As(err, &aggErr) {
		return WriteUnprocessable(w, validationErr.Error())
	}
	return WriteInternalError(w, err.Error())
}
