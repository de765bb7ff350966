package services

import (
	"context"
	"database/sql"
	"strings"

	"mediacatalog/logger"
	"mediacatalog/models"
	"mediacatalog/utils"
)

const (
	minGenreNameLen = 3
	maxGenreNameLen = 50
)

// GenreService manages the genre catalog.
type GenreService interface {
	ListGenres(ctx context.Context) ([]models.MovieGenre, error)
	// CreateGenre adds a genre. Names are unique case-insensitively.
	CreateGenre(ctx context.Context, name string) (models.MovieGenre, error)
	// RenameGenre changes a genre's name, with the same uniqueness rule.
	RenameGenre(ctx context.Context, id, name string) (models.MovieGenre, error)
	// DeleteGenre removes a genre; refused while any title still uses it.
	DeleteGenre(ctx context.Context, id string) error
}

type genreService struct {
	db SQLExecutor
}

// NewGenreService creates the genre service.
func NewGenreService(db SQLExecutor) GenreService {
	return &genreService{db: db}
}

func (s *genreService) ListGenres(ctx context.Context) ([]models.MovieGenre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.genre_name, COUNT(tg.media_title_id)
		FROM movie_genres g
		LEFT JOIN media_title_genres tg ON tg.movie_genre_id = g.id
		GROUP BY g.id, g.genre_name
		ORDER BY g.genre_name`)
	if err != nil {
		return nil, models.WrapStorageError("failed to list genres", err)
	}
	defer rows.Close()

	genres := make([]models.MovieGenre, 0)
	for rows.Next() {
		var g models.MovieGenre
		if err := rows.Scan(&g.ID, &g.GenreName, &g.TitleCount); err != nil {
			return nil, models.WrapStorageError("failed to scan genre", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (s *genreService) CreateGenre(ctx context.Context, name string) (models.MovieGenre, error) {
	name, err := s.checkGenreName(ctx, name, "")
	if err != nil {
		return models.MovieGenre{}, err
	}

	id, err := utils.GenerateID("genre")
	if err != nil {
		return models.MovieGenre{}, models.WrapStorageError("failed to generate genre ID", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO movie_genres (id, genre_name) VALUES (?, ?)", id, name)
	if err != nil {
		return models.MovieGenre{}, models.WrapStorageError("failed to insert genre", err)
	}

	logger.WithFields(map[string]interface{}{
		"genre_id":   id,
		"genre_name": name,
	}).Info("Genre created")

	return models.MovieGenre{ID: id, GenreName: name}, nil
}

func (s *genreService) RenameGenre(ctx context.Context, id, name string) (models.MovieGenre, error) {
	name, err := s.checkGenreName(ctx, name, id)
	if err != nil {
		return models.MovieGenre{}, err
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE movie_genres SET genre_name = ? WHERE id = ?", name, id)
	if err != nil {
		return models.MovieGenre{}, models.WrapStorageError("failed to rename genre", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return models.MovieGenre{}, models.NewCatalogError(models.ErrNotFound, "genre not found: "+id)
	}

	return models.MovieGenre{ID: id, GenreName: name}, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, id string) error {
	var inUse int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM media_title_genres WHERE movie_genre_id = ?", id).Scan(&inUse)
	if err != nil {
		return models.WrapStorageError("failed to check genre usage", err)
	}
	if inUse > 0 {
		return models.NewCatalogError(models.ErrGenreInUse,
			"genre is assigned to titles and cannot be deleted")
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM movie_genres WHERE id = ?", id)
	if err != nil {
		return models.WrapStorageError("failed to delete genre", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return models.NewCatalogError(models.ErrNotFound, "genre not found: "+id)
	}

	logger.WithFields(map[string]interface{}{"genre_id": id}).Info("Genre deleted")
	return nil
}

// checkGenreName validates and normalizes a genre name and enforces
// case-insensitive uniqueness. excludeID skips the genre being renamed.
func (s *genreService) checkGenreName(ctx context.Context, name, excludeID string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < minGenreNameLen || len(name) > maxGenreNameLen {
		return "", models.NewCatalogError(models.ErrInvalidTitle, "genre name must be 3-50 characters")
	}

	var existingID string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM movie_genres WHERE LOWER(genre_name) = LOWER(?)", name).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return "", models.WrapStorageError("failed to check genre name", err)
	}
	if err == nil && existingID != excludeID {
		return "", models.NewCatalogError(models.ErrDuplicateGenre,
			"a genre with this name already exists: "+name)
	}
	return name, nil
}
