package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flicklist/flicklist-go/internal/model"
)

var ErrMovieNotFound = errors.New("movie not found")

const movieColumns = `id, title, description, genre_name, genre_description,
	director_name, director_bio, director_birth_year, director_death_year,
	image_url, created_at`

// MovieRepository handles read-only catalog lookups. The catalog itself is
// loaded administratively (seed migrations); this subsystem never writes it.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// List retrieves the full movie catalog.
func (r *MovieRepository) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []model.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}

	return movies, rows.Err()
}

// GetByID retrieves a movie by its id.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	return scanMovieRow(row)
}

// FirstByGenreName retrieves the first movie whose embedded genre name
// matches. Genre data is denormalized into movie rows, so "the genre" is a
// projection of the first matching movie, not a row of its own.
func (r *MovieRepository) FirstByGenreName(ctx context.Context, name string) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE genre_name = ? ORDER BY id LIMIT 1`, name)
	return scanMovieRow(row)
}

// FirstByDirectorName retrieves the first movie whose embedded director
// name matches.
func (r *MovieRepository) FirstByDirectorName(ctx context.Context, name string) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE director_name = ? ORDER BY id LIMIT 1`, name)
	return scanMovieRow(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(s rowScanner) (*model.Movie, error) {
	movie := &model.Movie{}
	var description, genreDescription, directorBio, imageURL sql.NullString
	var birthYear sql.NullInt64

	err := s.Scan(
		&movie.ID, &movie.Title, &description,
		&movie.Genre.Name, &genreDescription,
		&movie.Director.Name, &directorBio, &birthYear, &movie.Director.DeathYear,
		&imageURL, &movie.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	movie.Description = description.String
	movie.Genre.Description = genreDescription.String
	movie.Director.Bio = directorBio.String
	movie.Director.BirthYear = int(birthYear.Int64)
	movie.ImageURL = imageURL.String

	return movie, nil
}

func scanMovieRow(row *sql.Row) (*model.Movie, error) {
	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}
