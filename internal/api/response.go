package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/17okk-xie/portfolio/internal/catalog"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// catalogError maps a catalog error onto an HTTP status.
func catalogError(w http.ResponseWriter, err error) {
	var (
		verr *catalog.ValidationError
		nf   *catalog.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		jsonResponse(w, http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
	case errors.As(err, &nf):
		jsonError(w, http.StatusNotFound, "project not found")
	default:
		slog.Error("catalog operation failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(target)
}
