package handlers

import (
	"net/http"
	"strings"

	"mediacatalog/models"
	"mediacatalog/storage"
)

// MediaHandler serves stored files from the local storage backend. Requests
// carry the exp/nonce/sig parameters produced by LocalStore.SignedURL.
type MediaHandler struct {
	store *storage.LocalStore
}

// NewMediaHandler creates the media handler over a local store.
func NewMediaHandler(store *storage.LocalStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Serve godoc
// @Summary Download a stored file
// @Description Serves a locally stored file; requires a valid signed URL
// @Tags media
// @Param key path string true "Storage key"
// @Param exp query string true "Expiration timestamp"
// @Param nonce query string true "Signature nonce"
// @Param sig query string true "Request signature"
// @Success 200 {file} binary
// @Failure 404 {object} models.APIResponse
// @Router /media/{key} [get]
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/media/")

	q := r.URL.Query()
	if err := h.store.ValidateSignedRequest(key, q.Get("exp"), q.Get("nonce"), q.Get("sig")); err != nil {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, http.StatusNotFound, models.ErrorResponse("File not found or link expired", nil))
		return
	}

	path, contentType, err := h.store.Open(key)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, http.StatusNotFound, models.ErrorResponse("File not found or link expired", nil))
		return
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeFile(w, r, path)
}
