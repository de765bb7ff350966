package storage

import (
	"fmt"
	"regexp"
	"strings"

	"mediacatalog/models"

	"time"
)

var keyUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// DeriveKey builds the deterministic storage key for an upload:
// {folder}/{sanitized title name}/{YYYYMMDD_HHMMSS}{extension}.
// The caller supplies now so tests can pin the timestamp. Keys are unique
// down to second granularity; callers serialize uploads per title, so the
// remaining collision window is accepted.
func DeriveKey(titleName string, kind models.AttachmentKind, originalFilename string, now time.Time) string {
	sanitized := keyUnsafeChars.ReplaceAllString(titleName, "_")

	folder := "fichas"
	if kind == models.KindPoster {
		folder = "posters"
	}

	timestamp := now.Format("20060102_150405")
	extension := fileExtension(originalFilename)

	return fmt.Sprintf("%s/%s/%s%s", folder, sanitized, timestamp, extension)
}

// fileExtension returns the extension including the dot, preserving case,
// or "" when the filename has none.
func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx:]
}
