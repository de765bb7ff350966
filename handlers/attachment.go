package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"mediacatalog/models"
	"mediacatalog/services"
	"mediacatalog/storage"
)

// uploadBodyLimit caps the whole multipart body. The per-kind limits are
// enforced by the service; this is just protection against runaway bodies.
const uploadBodyLimit = storage.MaxTechnicalSheetBytes + 1<<20

const defaultDownloadTTL = time.Hour

// AttachmentHandler serves the file-attachment endpoints.
type AttachmentHandler struct {
	attachments services.AttachmentService
}

// NewAttachmentHandler creates the attachment handler.
func NewAttachmentHandler(attachments services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

// UploadPoster godoc
// @Summary Upload a title's poster
// @Description Uploads a poster image (JPEG or PNG, max 2 MiB), replacing any existing poster
// @Tags attachments
// @Accept mpfd
// @Produce json
// @Param id path string true "Title ID"
// @Param file formData file true "Poster image"
// @Success 201 {object} models.APIResponse{data=models.Attachment}
// @Failure 413 {object} models.APIResponse
// @Failure 415 {object} models.APIResponse
// @Router /api/titles/{id}/poster [post]
func (h *AttachmentHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, models.KindPoster, "Poster uploaded")
}

// UploadTechnicalSheet godoc
// @Summary Upload a technical sheet
// @Description Uploads a PDF technical sheet (max 5 MiB); sheets accumulate per title
// @Tags attachments
// @Accept mpfd
// @Produce json
// @Param id path string true "Title ID"
// @Param file formData file true "PDF document"
// @Success 201 {object} models.APIResponse{data=models.Attachment}
// @Failure 413 {object} models.APIResponse
// @Failure 415 {object} models.APIResponse
// @Router /api/titles/{id}/sheets [post]
func (h *AttachmentHandler) UploadTechnicalSheet(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, models.KindTechnicalSheet, "Technical sheet uploaded")
}

func (h *AttachmentHandler) upload(w http.ResponseWriter, r *http.Request, kind models.AttachmentKind, okMessage string) {
	r.Body = http.MaxBytesReader(w, r.Body, uploadBodyLimit)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest,
			models.ErrorResponse("A 'file' form field is required", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse("Failed to read upload", err))
		return
	}

	att, err := h.attachments.Attach(r.Context(), r.PathValue("id"), kind,
		header.Filename, header.Header.Get("Content-Type"), data, "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.SuccessResponse(okMessage, att))
}

// GetPoster godoc
// @Summary Get a title's current poster
// @Tags attachments
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {object} models.APIResponse{data=models.Attachment}
// @Failure 404 {object} models.APIResponse
// @Router /api/titles/{id}/poster [get]
func (h *AttachmentHandler) GetPoster(w http.ResponseWriter, r *http.Request) {
	poster, err := h.attachments.GetPoster(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Poster retrieved", poster))
}

// ListSheets godoc
// @Summary List a title's technical sheets
// @Tags attachments
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {object} models.APIResponse{data=[]models.Attachment}
// @Failure 404 {object} models.APIResponse
// @Router /api/titles/{id}/sheets [get]
func (h *AttachmentHandler) ListSheets(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.attachments.ListByKind(r.Context(), r.PathValue("id"), models.KindTechnicalSheet)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Technical sheets retrieved", sheets))
}

// List godoc
// @Summary List a title's attachments
// @Tags attachments
// @Produce json
// @Param id path string true "Title ID"
// @Param kind query string false "POSTER or TECHNICAL_SHEET"
// @Success 200 {object} models.APIResponse{data=[]models.Attachment}
// @Failure 404 {object} models.APIResponse
// @Router /api/titles/{id}/attachments [get]
func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID := r.PathValue("id")

	var (
		attachments []models.Attachment
		err         error
	)
	if kind := r.URL.Query().Get("kind"); kind != "" {
		attachments, err = h.attachments.ListByKind(r.Context(), titleID, models.AttachmentKind(kind))
	} else {
		attachments, err = h.attachments.ListByTitle(r.Context(), titleID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Attachments retrieved", attachments))
}

// Delete godoc
// @Summary Delete an attachment
// @Description Removes the attachment metadata and its stored file
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attachments.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Attachment deleted", nil))
}

// DownloadURL godoc
// @Summary Get a temporary download URL
// @Description Returns a signed, time-limited URL for the attachment's file
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID"
// @Param hours query int false "Validity in hours (1-24, default 1)"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/attachments/{id}/download-url [get]
func (h *AttachmentHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	ttl := defaultDownloadTTL
	if hours := r.URL.Query().Get("hours"); hours != "" {
		n, err := strconv.Atoi(hours)
		if err != nil || n < 1 || n > 24 {
			writeJSON(w, http.StatusBadRequest,
				models.ErrorResponse("hours must be an integer between 1 and 24", nil))
			return
		}
		ttl = time.Duration(n) * time.Hour
	}

	url, err := h.attachments.DownloadURL(r.Context(), r.PathValue("id"), ttl)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Download URL generated",
		map[string]string{"download_url": url, "expires_in": ttl.String()}))
}
