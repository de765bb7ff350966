package models

// DashboardStats aggregates catalog and storage metrics for the dashboard view.
type DashboardStats struct {
	TotalTitles          int64  `json:"total_titles"`
	MovieCount           int64  `json:"movie_count"`
	SeriesCount          int64  `json:"series_count"`
	TotalGenres          int64  `json:"total_genres"`
	TitlesWithPoster     int64  `json:"titles_with_poster"`
	TitlesLastMonth      int64  `json:"titles_last_month"`
	TotalFiles           int64  `json:"total_files"`
	PosterCount          int64  `json:"poster_count"`
	TechnicalSheetCount  int64  `json:"technical_sheet_count"`
	FilesInBlobStore     int64  `json:"files_in_blob_store"`
	TotalStorageBytes    int64  `json:"total_storage_bytes"`
	TotalStorageUsed     string `json:"total_storage_used"`
	PosterCoverage       string `json:"poster_coverage"`
	AverageGenresPerTitle string `json:"average_genres_per_title"`
	MostRecentTitle      string `json:"most_recent_title"`
}
