package storage

import (
	"fmt"
	"strings"

	"mediacatalog/models"
)

// Size limits per attachment kind.
const (
	MaxPosterBytes         = 2 * 1024 * 1024
	MaxTechnicalSheetBytes = 5 * 1024 * 1024
)

var (
	allowedPosterTypes = []string{"image/jpeg", "image/jpg", "image/png"}
	allowedSheetTypes  = []string{"application/pdf"}
)

// AllowedContentTypes returns the accepted MIME types for a kind.
func AllowedContentTypes(kind models.AttachmentKind) []string {
	if kind == models.KindPoster {
		return allowedPosterTypes
	}
	return allowedSheetTypes
}

// SizeLimit returns the maximum accepted size in bytes for a kind.
func SizeLimit(kind models.AttachmentKind) int64 {
	if kind == models.KindPoster {
		return MaxPosterBytes
	}
	return MaxTechnicalSheetBytes
}

// ValidateUpload checks a candidate file against the rules for its kind.
// Rules run in order and fail fast: non-empty, allowed content type, size
// limit. Pure; no side effects.
func ValidateUpload(kind models.AttachmentKind, contentType string, sizeBytes int64, filename string) error {
	if sizeBytes <= 0 {
		return models.NewCatalogError(models.ErrInvalidFile,
			fmt.Sprintf("file %q is empty or invalid", filename))
	}

	allowed := AllowedContentTypes(kind)
	if !containsType(allowed, contentType) {
		return &models.CatalogError{
			Kind: models.ErrInvalidFileType,
			Message: fmt.Sprintf("content type %q is not allowed for %s; allowed: %s",
				contentType, kind, strings.Join(allowed, ", ")),
			AllowedTypes: allowed,
		}
	}

	if limit := SizeLimit(kind); sizeBytes > limit {
		return &models.CatalogError{
			Kind: models.ErrFileTooLarge,
			Message: fmt.Sprintf("file %q exceeds the %d byte limit for %s",
				filename, limit, kind),
			LimitBytes: limit,
		}
	}

	return nil
}

func containsType(types []string, contentType string) bool {
	for _, t := range types {
		if t == contentType {
			return true
		}
	}
	return false
}
