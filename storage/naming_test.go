package storage

import (
	"testing"
	"time"

	"mediacatalog/models"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKeySanitizesTitleName(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	key := DeriveKey("Die Hard 3!", models.KindPoster, "x.PNG", now)

	assert.Equal(t, "posters/Die_Hard_3_/20250314_092653.PNG", key)
}

func TestDeriveKeyDeterministic(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	first := DeriveKey("Alien", models.KindTechnicalSheet, "sheet.pdf", now)
	second := DeriveKey("Alien", models.KindTechnicalSheet, "sheet.pdf", now)

	assert.Equal(t, first, second)
	assert.Equal(t, "fichas/Alien/20250314_092653.pdf", first)
}

func TestDeriveKeyDiffersPerSecond(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	first := DeriveKey("Alien", models.KindPoster, "a.png", now)
	second := DeriveKey("Alien", models.KindPoster, "a.png", now.Add(time.Second))

	assert.NotEqual(t, first, second)
}

func TestDeriveKeyWithoutExtension(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	key := DeriveKey("Alien", models.KindPoster, "noext", now)

	assert.Equal(t, "posters/Alien/20250314_092653", key)
}
