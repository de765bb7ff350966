package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"mediacatalog/logger"
	"mediacatalog/middleware"
	"mediacatalog/models"
)

func writeJSON(w http.ResponseWriter, status int, body models.APIResponse) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps a service error to an HTTP response. Storage failures are
// logged with detail server-side but presented generically to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *models.CatalogError
	if !errors.As(err, &ce) {
		logUnexpected(r, err)
		writeJSON(w, http.StatusInternalServerError,
			models.ErrorResponse("Something went wrong, please try again", nil))
		return
	}

	switch ce.Kind {
	case models.ErrNotFound:
		writeJSON(w, http.StatusNotFound, models.ErrorResponse(ce.Message, nil))
	case models.ErrInvalidFile, models.ErrInvalidTitle:
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse(ce.Message, nil))
	case models.ErrInvalidFileType:
		msg := fmt.Sprintf("%s (allowed: %v)", ce.Message, ce.AllowedTypes)
		writeJSON(w, http.StatusUnsupportedMediaType, models.ErrorResponse(msg, nil))
	case models.ErrFileTooLarge:
		msg := fmt.Sprintf("%s (limit: %d bytes)", ce.Message, ce.LimitBytes)
		writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse(msg, nil))
	case models.ErrDuplicateGenre, models.ErrGenreInUse:
		writeJSON(w, http.StatusConflict, models.ErrorResponse(ce.Message, nil))
	default:
		logUnexpected(r, err)
		writeJSON(w, http.StatusInternalServerError,
			models.ErrorResponse("Something went wrong, please try again", nil))
	}
}

func logUnexpected(r *http.Request, err error) {
	logger.WithFields(map[string]interface{}{
		"request_id": middleware.RequestID(r),
		"method":     r.Method,
		"path":       r.URL.Path,
		"error":      err.Error(),
	}).Error("Request failed")
}
