package handlers

import (
	"encoding/json"
	"net/http"

	"mediacatalog/models"
	"mediacatalog/services"
)

// GenreHandler serves the genre endpoints.
type GenreHandler struct {
	genres services.GenreService
}

// NewGenreHandler creates the genre handler.
func NewGenreHandler(genres services.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

// List godoc
// @Summary List genres
// @Description Lists all genres with the number of titles using each
// @Tags genres
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.MovieGenre}
// @Router /api/genres [get]
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.ListGenres(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Genres retrieved", genres))
}

// Create godoc
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param request body models.GenreRequest true "Genre to create"
// @Success 201 {object} models.APIResponse{data=models.MovieGenre}
// @Failure 409 {object} models.APIResponse
// @Router /api/genres [post]
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse("Invalid request body", err))
		return
	}

	genre, err := h.genres.CreateGenre(r.Context(), req.GenreName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.SuccessResponse("Genre created", genre))
}

// Rename godoc
// @Summary Rename a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param id path string true "Genre ID"
// @Param request body models.GenreRequest true "New genre name"
// @Success 200 {object} models.APIResponse{data=models.MovieGenre}
// @Failure 409 {object} models.APIResponse
// @Router /api/genres/{id} [put]
func (h *GenreHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req models.GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse("Invalid request body", err))
		return
	}

	genre, err := h.genres.RenameGenre(r.Context(), r.PathValue("id"), req.GenreName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Genre renamed", genre))
}

// Delete godoc
// @Summary Delete a genre
// @Description Deletes a genre; refused while any title still uses it
// @Tags genres
// @Produce json
// @Param id path string true "Genre ID"
// @Success 200 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /api/genres/{id} [delete]
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.genres.DeleteGenre(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Genre deleted", nil))
}
