package models

// MovieGenre is a genre that can be assigned to media titles.
type MovieGenre struct {
	ID        string `json:"id"`
	GenreName string `json:"genre_name"`
	// TitleCount is filled on list responses so the UI can warn before deletes.
	TitleCount int `json:"title_count"`
}

// GenreRequest is the payload to create or rename a genre.
type GenreRequest struct {
	GenreName string `json:"genre_name"`
}
