package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/burgerhub/menu-ordering/models"
	"github.com/burgerhub/menu-ordering/storage"
)

// OKResponse writes data as JSON with status 200.
func OKResponse(w http.ResponseWriter, data any) {
	JSONResponse(w, http.StatusOK, data)
}

func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, map[string]string{"error": message})
}

// ValidationResponse writes a 400 naming the offending field.
func ValidationResponse(w http.ResponseWriter, err *models.ValidationError) {
	JSONResponse(w, http.StatusBadRequest, map[string]string{
		"error": err.Message,
		"field": err.Field,
	})
}

// StorageErrorStatus maps a store failure to an HTTP status. A full store is
// a recoverable condition the client can act on.
func StorageErrorStatus(err error) int {
	if errors.Is(err, storage.ErrQuotaExceeded) {
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}

// DecodeJSON reads the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
