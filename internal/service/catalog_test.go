package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/flicklist/flicklist-go/internal/repository"
)

var movieColumns = []string{
	"id", "title", "description", "genre_name", "genre_description",
	"director_name", "director_bio", "director_birth_year", "director_death_year",
	"image_url", "created_at",
}

func newMockCatalogService(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCatalogService(repository.NewMovieRepository(db)), mock
}

func TestListMoviesEmptyCatalog(t *testing.T) {
	svc, mock := newMockCatalogService(t)

	mock.ExpectQuery(`SELECT .+ FROM movies ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(movieColumns))

	movies, err := svc.ListMovies(context.Background())
	if err != nil {
		t.Fatalf("ListMovies() unexpected error: %v", err)
	}
	if movies == nil {
		t.Fatal("ListMovies() returned nil, want empty slice")
	}
}

func TestGetMovieNotFound(t *testing.T) {
	svc, mock := newMockCatalogService(t)

	mock.ExpectQuery(`SELECT .+ FROM movies WHERE id = \?`).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(movieColumns))

	_, err := svc.GetMovie(context.Background(), 999)
	if !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("GetMovie() error = %v, want ErrMovieNotFound", err)
	}
}

func TestGetGenreByNameProjectsEmbeddedGenre(t *testing.T) {
	svc, mock := newMockCatalogService(t)

	// The lookup returns the embedded genre of the first matching movie,
	// not a standalone genre row.
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE genre_name = ? ORDER BY id LIMIT 1`)).
		WithArgs("Thriller").
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow(1, "The Silent Reel", nil, "Thriller", "Suspense-driven stories.",
				"Mara Ellison", nil, 1968, nil, nil, time.Now()))

	genre, err := svc.GetGenreByName(context.Background(), "Thriller")
	if err != nil {
		t.Fatalf("GetGenreByName() unexpected error: %v", err)
	}
	if genre.Name != "Thriller" {
		t.Errorf("GetGenreByName() name = %q, want %q", genre.Name, "Thriller")
	}
	if genre.Description != "Suspense-driven stories." {
		t.Errorf("GetGenreByName() description = %q", genre.Description)
	}
}

func TestGetGenreByNameNotFound(t *testing.T) {
	svc, mock := newMockCatalogService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE genre_name = ? ORDER BY id LIMIT 1`)).
		WithArgs("Nonexistent").
		WillReturnRows(sqlmock.NewRows(movieColumns))

	_, err := svc.GetGenreByName(context.Background(), "Nonexistent")
	if !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("GetGenreByName() error = %v, want ErrMovieNotFound", err)
	}
}

func TestGetDirectorByNameProjectsEmbeddedDirector(t *testing.T) {
	svc, mock := newMockCatalogService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE director_name = ? ORDER BY id LIMIT 1`)).
		WithArgs("Tomas Reyes").
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow(2, "Harbor Lights", nil, "Drama", nil,
				"Tomas Reyes", "Former documentarian.", 1955, 2021, nil, time.Now()))

	director, err := svc.GetDirectorByName(context.Background(), "Tomas Reyes")
	if err != nil {
		t.Fatalf("GetDirectorByName() unexpected error: %v", err)
	}
	if director.Name != "Tomas Reyes" {
		t.Errorf("GetDirectorByName() name = %q", director.Name)
	}
	if director.BirthYear != 1955 {
		t.Errorf("GetDirectorByName() birth year = %d, want 1955", director.BirthYear)
	}
	if director.DeathYear == nil || *director.DeathYear != 2021 {
		t.Errorf("GetDirectorByName() death year = %v, want 2021", director.DeathYear)
	}
}
