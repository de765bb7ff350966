package models

// TitleType distinguishes movies from series.
type TitleType string

const (
	TitleTypeMovie  TitleType = "MOVIE"
	TitleTypeSeries TitleType = "SERIES"
)

// Valid reports whether t is a known title type.
func (t TitleType) Valid() bool {
	return t == TitleTypeMovie || t == TitleTypeSeries
}

// MediaTitle is a catalog entry for one movie or series.
type MediaTitle struct {
	ID            string       `json:"id"`
	TitleName     string       `json:"title_name"`
	TitleType     TitleType    `json:"title_type"`
	ReleaseYear   *int         `json:"release_year,omitempty"`
	Synopsis      string       `json:"synopsis,omitempty"`
	AverageRating *float64     `json:"average_rating,omitempty"`
	CreatedAt     string       `json:"created_at"`
	Genres        []MovieGenre `json:"genres"`
}

// CreateTitleRequest is the payload to register a new media title.
type CreateTitleRequest struct {
	TitleName     string    `json:"title_name"`
	TitleType     TitleType `json:"title_type"`
	ReleaseYear   *int      `json:"release_year,omitempty"`
	Synopsis      string    `json:"synopsis,omitempty"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	GenreIDs      []string  `json:"genre_ids"`
}

// UpdateTitleRequest is the payload to update an existing media title.
type UpdateTitleRequest struct {
	TitleName     string    `json:"title_name"`
	TitleType     TitleType `json:"title_type"`
	ReleaseYear   *int      `json:"release_year,omitempty"`
	Synopsis      string    `json:"synopsis,omitempty"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	GenreIDs      []string  `json:"genre_ids"`
}
