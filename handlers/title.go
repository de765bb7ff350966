package handlers

import (
	"encoding/json"
	"net/http"

	"mediacatalog/models"
	"mediacatalog/services"
)

// TitleHandler serves the media-title endpoints.
type TitleHandler struct {
	catalog services.CatalogService
}

// NewTitleHandler creates the title handler.
func NewTitleHandler(catalog services.CatalogService) *TitleHandler {
	return &TitleHandler{catalog: catalog}
}

// List godoc
// @Summary List media titles
// @Description Lists catalog titles, optionally filtered by name search and type
// @Tags titles
// @Produce json
// @Param search query string false "Case-insensitive name filter"
// @Param type query string false "MOVIE or SERIES"
// @Success 200 {object} models.APIResponse{data=[]models.MediaTitle}
// @Router /api/titles [get]
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	titleType := models.TitleType(r.URL.Query().Get("type"))

	titles, err := h.catalog.ListTitles(r.Context(), search, titleType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Titles retrieved", titles))
}

// Create godoc
// @Summary Create a media title
// @Tags titles
// @Accept json
// @Produce json
// @Param request body models.CreateTitleRequest true "Title to create"
// @Success 201 {object} models.APIResponse{data=models.MediaTitle}
// @Failure 400 {object} models.APIResponse
// @Router /api/titles [post]
func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse("Invalid request body", err))
		return
	}

	title, err := h.catalog.CreateTitle(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.SuccessResponse("Title created", title))
}

// Get godoc
// @Summary Get a media title
// @Tags titles
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {object} models.APIResponse{data=models.MediaTitle}
// @Failure 404 {object} models.APIResponse
// @Router /api/titles/{id} [get]
func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	title, err := h.catalog.GetTitle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Title retrieved", title))
}

// Update godoc
// @Summary Update a media title
// @Tags titles
// @Accept json
// @Produce json
// @Param id path string true "Title ID"
// @Param request body models.UpdateTitleRequest true "New title data"
// @Success 200 {object} models.APIResponse{data=models.MediaTitle}
// @Failure 404 {object} models.APIResponse
// @Router /api/titles/{id} [put]
func (h *TitleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse("Invalid request body", err))
		return
	}

	title, err := h.catalog.UpdateTitle(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Title updated", title))
}

// Delete godoc
// @Summary Delete a media title
// @Description Deletes the title along with its genre links and stored files
// @Tags titles
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/titles/{id} [delete]
func (h *TitleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteTitle(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Title deleted", nil))
}
