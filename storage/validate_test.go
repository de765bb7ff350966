package storage

import (
	"errors"
	"testing"

	"mediacatalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUploadRejectsEmptyFile(t *testing.T) {
	err := ValidateUpload(models.KindPoster, "image/png", 0, "empty.png")

	assert.True(t, models.IsKind(err, models.ErrInvalidFile))
}

func TestValidateUploadRejectsDisallowedContentTypes(t *testing.T) {
	cases := []struct {
		kind        models.AttachmentKind
		contentType string
	}{
		{models.KindPoster, "application/pdf"},
		{models.KindPoster, "image/gif"},
		{models.KindPoster, "text/plain"},
		{models.KindPoster, ""},
		{models.KindTechnicalSheet, "image/png"},
		{models.KindTechnicalSheet, "application/zip"},
		{models.KindTechnicalSheet, ""},
	}

	for _, tc := range cases {
		err := ValidateUpload(tc.kind, tc.contentType, 100, "file")
		require.Error(t, err, "kind=%s type=%q", tc.kind, tc.contentType)
		assert.True(t, models.IsKind(err, models.ErrInvalidFileType),
			"kind=%s type=%q", tc.kind, tc.contentType)

		var ce *models.CatalogError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, AllowedContentTypes(tc.kind), ce.AllowedTypes)
	}
}

func TestValidateUploadSizeLimits(t *testing.T) {
	// Exactly at the limit passes.
	assert.NoError(t, ValidateUpload(models.KindPoster, "image/png", MaxPosterBytes, "p.png"))
	assert.NoError(t, ValidateUpload(models.KindTechnicalSheet, "application/pdf", MaxTechnicalSheetBytes, "s.pdf"))

	// One byte over fails with the limit attached.
	err := ValidateUpload(models.KindPoster, "image/png", MaxPosterBytes+1, "p.png")
	assert.True(t, models.IsKind(err, models.ErrFileTooLarge))

	var ce *models.CatalogError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, int64(MaxPosterBytes), ce.LimitBytes)

	err = ValidateUpload(models.KindTechnicalSheet, "application/pdf", MaxTechnicalSheetBytes+1, "s.pdf")
	assert.True(t, models.IsKind(err, models.ErrFileTooLarge))
}

func TestValidateUploadAcceptsAllowedTypes(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/jpg", "image/png"} {
		assert.NoError(t, ValidateUpload(models.KindPoster, ct, 1024, "p"))
	}
	assert.NoError(t, ValidateUpload(models.KindTechnicalSheet, "application/pdf", 1024, "s"))
}
