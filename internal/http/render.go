package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cafebonheur/pos/pkg/zerror"
)

var invalidIDErr = zerror.NewBadRequest("INVALID_ID", "id must be an integer")

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return nil
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

// decodeJSON reads the request body into a value of type T.
func decodeJSON[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, zerror.NewBadRequest("INVALID_BODY", "request body is not valid JSON").WrapParent(err)
	}
	return v, nil
}

// idParam extracts the numeric {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, invalidIDErr.WrapParent(err)
	}
	return id, nil
}
