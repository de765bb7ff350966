package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"mediacatalog/logger"
	"mediacatalog/models"
	"mediacatalog/utils"
)

const (
	minTitleNameLen = 2
	maxTitleNameLen = 150
	maxSynopsisLen  = 1000
	minReleaseYear  = 1900
)

// CatalogService manages media titles and their genre assignments.
type CatalogService interface {
	CreateTitle(ctx context.Context, req models.CreateTitleRequest) (models.MediaTitle, error)
	GetTitle(ctx context.Context, id string) (models.MediaTitle, error)
	ListTitles(ctx context.Context, search string, titleType models.TitleType) ([]models.MediaTitle, error)
	UpdateTitle(ctx context.Context, id string, req models.UpdateTitleRequest) (models.MediaTitle, error)
	// DeleteTitle removes the title, its genre links and all its attachments.
	DeleteTitle(ctx context.Context, id string) error
}

type catalogService struct {
	db          SQLExecutor
	attachments AttachmentService
}

// NewCatalogService creates the catalog service. The attachment service is
// used to clean up a title's files when the title is deleted.
func NewCatalogService(db SQLExecutor, attachments AttachmentService) CatalogService {
	return &catalogService{db: db, attachments: attachments}
}

func validateTitleInput(name string, titleType models.TitleType, releaseYear *int, synopsis string, rating *float64, genreIDs []string) error {
	name = strings.TrimSpace(name)
	if len(name) < minTitleNameLen || len(name) > maxTitleNameLen {
		return models.NewCatalogError(models.ErrInvalidTitle, "title name must be 2-150 characters")
	}
	if !titleType.Valid() {
		return models.NewCatalogError(models.ErrInvalidTitle, "title type must be MOVIE or SERIES")
	}
	if releaseYear != nil {
		year := *releaseYear
		if year < minReleaseYear || year > time.Now().UTC().Year() {
			return models.NewCatalogError(models.ErrInvalidTitle, "release year must not be in the future")
		}
	}
	if len(synopsis) > maxSynopsisLen {
		return models.NewCatalogError(models.ErrInvalidTitle, "synopsis is too long")
	}
	if rating != nil && (*rating < 0 || *rating > 10) {
		return models.NewCatalogError(models.ErrInvalidTitle, "average rating must be between 0 and 10")
	}
	if len(genreIDs) == 0 {
		return models.NewCatalogError(models.ErrInvalidTitle, "at least one genre is required")
	}
	return nil
}

func (s *catalogService) CreateTitle(ctx context.Context, req models.CreateTitleRequest) (models.MediaTitle, error) {
	if err := validateTitleInput(req.TitleName, req.TitleType, req.ReleaseYear, req.Synopsis, req.AverageRating, req.GenreIDs); err != nil {
		return models.MediaTitle{}, err
	}

	id, err := utils.GenerateID("title")
	if err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to generate title ID", err)
	}
	createdAt := utils.FormatDateTimeForDB(utils.NowUTC())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO media_titles
			(id, title_name, title_type, release_year, synopsis, average_rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, strings.TrimSpace(req.TitleName), req.TitleType,
		req.ReleaseYear, nullable(req.Synopsis), req.AverageRating, createdAt)
	if err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to insert title", err)
	}

	if err := linkGenres(ctx, tx, id, req.GenreIDs); err != nil {
		return models.MediaTitle{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to commit title", err)
	}

	logger.WithFields(map[string]interface{}{
		"title_id":   id,
		"title_name": req.TitleName,
		"title_type": string(req.TitleType),
	}).Info("Title created")

	return s.GetTitle(ctx, id)
}

func (s *catalogService) GetTitle(ctx context.Context, id string) (models.MediaTitle, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title_name, title_type, release_year, synopsis, average_rating, created_at
		FROM media_titles WHERE id = ?`, id)

	title, err := scanTitle(row.Scan)
	if err == sql.ErrNoRows {
		return models.MediaTitle{}, models.NewCatalogError(models.ErrNotFound, "title not found: "+id)
	}
	if err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to load title", err)
	}

	genres, err := s.titleGenres(ctx, id)
	if err != nil {
		return models.MediaTitle{}, err
	}
	title.Genres = genres
	return title, nil
}

func (s *catalogService) ListTitles(ctx context.Context, search string, titleType models.TitleType) ([]models.MediaTitle, error) {
	query := `SELECT id, title_name, title_type, release_year, synopsis, average_rating, created_at
		FROM media_titles`
	var conds []string
	var args []any

	if search = strings.TrimSpace(search); search != "" {
		conds = append(conds, "LOWER(title_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	if titleType != "" {
		if !titleType.Valid() {
			return nil, models.NewCatalogError(models.ErrInvalidTitle, "title type must be MOVIE or SERIES")
		}
		conds = append(conds, "title_type = ?")
		args = append(args, titleType)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, models.WrapStorageError("failed to list titles", err)
	}
	defer rows.Close()

	titles := make([]models.MediaTitle, 0)
	for rows.Next() {
		title, err := scanTitle(rows.Scan)
		if err != nil {
			return nil, models.WrapStorageError("failed to scan title", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorageError("failed to list titles", err)
	}

	for i := range titles {
		genres, err := s.titleGenres(ctx, titles[i].ID)
		if err != nil {
			return nil, err
		}
		titles[i].Genres = genres
	}
	return titles, nil
}

func (s *catalogService) UpdateTitle(ctx context.Context, id string, req models.UpdateTitleRequest) (models.MediaTitle, error) {
	if err := validateTitleInput(req.TitleName, req.TitleType, req.ReleaseYear, req.Synopsis, req.AverageRating, req.GenreIDs); err != nil {
		return models.MediaTitle{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE media_titles
		SET title_name = ?, title_type = ?, release_year = ?, synopsis = ?, average_rating = ?
		WHERE id = ?`,
		strings.TrimSpace(req.TitleName), req.TitleType,
		req.ReleaseYear, nullable(req.Synopsis), req.AverageRating, id)
	if err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to update title", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return models.MediaTitle{}, models.NewCatalogError(models.ErrNotFound, "title not found: "+id)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM media_title_genres WHERE media_title_id = ?", id); err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to clear genre links", err)
	}
	if err := linkGenres(ctx, tx, id, req.GenreIDs); err != nil {
		return models.MediaTitle{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.MediaTitle{}, models.WrapStorageError("failed to commit title update", err)
	}

	return s.GetTitle(ctx, id)
}

func (s *catalogService) DeleteTitle(ctx context.Context, id string) error {
	if _, err := s.GetTitle(ctx, id); err != nil {
		return err
	}

	// Files first: once the row is gone the attachment metadata cascades
	// away and the blobs would be unreachable until the sweep.
	if err := s.attachments.RemoveAllForTitle(ctx, id); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM media_titles WHERE id = ?", id); err != nil {
		return models.WrapStorageError("failed to delete title", err)
	}

	logger.WithFields(map[string]interface{}{"title_id": id}).Info("Title deleted")
	return nil
}

// linkGenres inserts the genre links inside tx, verifying every genre exists.
func linkGenres(ctx context.Context, tx *sql.Tx, titleID string, genreIDs []string) error {
	seen := make(map[string]bool, len(genreIDs))
	for _, genreID := range genreIDs {
		if seen[genreID] {
			continue
		}
		seen[genreID] = true

		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM movie_genres WHERE id = ?", genreID).Scan(&exists)
		if err != nil {
			return models.WrapStorageError("failed to check genre", err)
		}
		if exists == 0 {
			return models.NewCatalogError(models.ErrInvalidTitle, "unknown genre: "+genreID)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO media_title_genres (media_title_id, movie_genre_id) VALUES (?, ?)",
			titleID, genreID)
		if err != nil {
			return models.WrapStorageError("failed to link genre", err)
		}
	}
	return nil
}

func (s *catalogService) titleGenres(ctx context.Context, titleID string) ([]models.MovieGenre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.genre_name
		FROM movie_genres g
		JOIN media_title_genres tg ON tg.movie_genre_id = g.id
		WHERE tg.media_title_id = ?
		ORDER BY g.genre_name`, titleID)
	if err != nil {
		return nil, models.WrapStorageError("failed to load title genres", err)
	}
	defer rows.Close()

	genres := make([]models.MovieGenre, 0)
	for rows.Next() {
		var g models.MovieGenre
		if err := rows.Scan(&g.ID, &g.GenreName); err != nil {
			return nil, models.WrapStorageError("failed to scan genre", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func scanTitle(scan func(dest ...any) error) (models.MediaTitle, error) {
	var (
		title       models.MediaTitle
		releaseYear sql.NullInt64
		synopsis    sql.NullString
		rating      sql.NullFloat64
	)

	err := scan(&title.ID, &title.TitleName, &title.TitleType,
		&releaseYear, &synopsis, &rating, &title.CreatedAt)
	if err != nil {
		return models.MediaTitle{}, err
	}

	if releaseYear.Valid {
		year := int(releaseYear.Int64)
		title.ReleaseYear = &year
	}
	title.Synopsis = synopsis.String
	if rating.Valid {
		r := rating.Float64
		title.AverageRating = &r
	}
	return title, nil
}
