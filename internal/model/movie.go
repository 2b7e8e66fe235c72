package model

import "time"

// Genre is the genre metadata embedded in each movie row.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Director is the director metadata embedded in each movie row.
type Director struct {
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	BirthYear int    `json:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty"`
}

// Movie represents a catalog entry. Genre and director are denormalized
// into the movie row rather than joined from separate tables.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Genre       Genre     `json:"genre"`
	Director    Director  `json:"director"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"-"`
}
