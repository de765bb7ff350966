package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mediacatalog/logger"
	"mediacatalog/models"
	"mediacatalog/storage"
	"mediacatalog/utils"
)

// DashboardService aggregates catalog and storage metrics.
type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	db    SQLExecutor
	store storage.BlobStore
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(db SQLExecutor, store storage.BlobStore) DashboardService {
	return &dashboardService{db: db, store: store}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	counts := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM media_titles", nil, &stats.TotalTitles},
		{"SELECT COUNT(*) FROM media_titles WHERE title_type = ?", []any{models.TitleTypeMovie}, &stats.MovieCount},
		{"SELECT COUNT(*) FROM media_titles WHERE title_type = ?", []any{models.TitleTypeSeries}, &stats.SeriesCount},
		{"SELECT COUNT(*) FROM movie_genres", nil, &stats.TotalGenres},
		{"SELECT COUNT(DISTINCT media_title_id) FROM attachments WHERE kind = ?", []any{models.KindPoster}, &stats.TitlesWithPoster},
		{"SELECT COUNT(*) FROM attachments", nil, &stats.TotalFiles},
		{"SELECT COUNT(*) FROM attachments WHERE kind = ?", []any{models.KindPoster}, &stats.PosterCount},
		{"SELECT COUNT(*) FROM attachments WHERE kind = ?", []any{models.KindTechnicalSheet}, &stats.TechnicalSheetCount},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return models.DashboardStats{}, models.WrapStorageError("failed to load dashboard counts", err)
		}
	}

	// Timestamps are stored as fixed-width UTC strings, so string comparison
	// orders them chronologically.
	cutoff := utils.FormatDateTimeForDB(utils.NowUTC().AddDate(0, 0, -30))
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM media_titles WHERE created_at >= ?", cutoff).Scan(&stats.TitlesLastMonth)
	if err != nil {
		return models.DashboardStats{}, models.WrapStorageError("failed to count recent titles", err)
	}

	var totalBytes sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		"SELECT SUM(size_bytes) FROM attachments").Scan(&totalBytes)
	if err != nil {
		return models.DashboardStats{}, models.WrapStorageError("failed to sum storage size", err)
	}
	stats.TotalStorageBytes = totalBytes.Int64
	stats.TotalStorageUsed = formatBytes(totalBytes.Int64)

	var recent sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT title_name FROM media_titles
		ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&recent)
	if err != nil && err != sql.ErrNoRows {
		return models.DashboardStats{}, models.WrapStorageError("failed to load recent title", err)
	}
	stats.MostRecentTitle = recent.String

	var genreLinks int64
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM media_title_genres").Scan(&genreLinks)
	if err != nil {
		return models.DashboardStats{}, models.WrapStorageError("failed to count genre links", err)
	}

	stats.PosterCoverage = "0%"
	stats.AverageGenresPerTitle = "0.0"
	if stats.TotalTitles > 0 {
		stats.PosterCoverage = fmt.Sprintf("%.0f%%",
			float64(stats.TitlesWithPoster)/float64(stats.TotalTitles)*100)
		stats.AverageGenresPerTitle = fmt.Sprintf("%.1f",
			float64(genreLinks)/float64(stats.TotalTitles))
	}

	// The blob-store count is informational; a store outage should not take
	// the dashboard down with it.
	listCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	keys, err := s.store.List(listCtx, "")
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Warn("Failed to list blob store for dashboard")
	} else {
		stats.FilesInBlobStore = int64(len(keys))
	}

	return stats, nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
