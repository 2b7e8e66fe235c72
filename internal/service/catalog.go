package service

import (
	"context"
	"errors"

	"github.com/flicklist/flicklist-go/internal/model"
	"github.com/flicklist/flicklist-go/internal/repository"
)

var ErrMovieNotFound = errors.New("movie not found")

// CatalogService provides read-only movie lookups. Genre and director are
// embedded in movie rows; their lookups return the embedded object of the
// first movie whose field matches, mirroring the denormalized schema.
type CatalogService struct {
	repo *repository.MovieRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo *repository.MovieRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListMovies retrieves the full catalog.
func (s *CatalogService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies, nil
}

// GetMovie retrieves a movie by id.
func (s *CatalogService) GetMovie(ctx context.Context, id int64) (*model.Movie, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

// GetGenreByName returns the embedded genre of the first movie in that genre.
func (s *CatalogService) GetGenreByName(ctx context.Context, name string) (*model.Genre, error) {
	movie, err := s.repo.FirstByGenreName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie.Genre, nil
}

// GetDirectorByName returns the embedded director of the first movie they directed.
func (s *CatalogService) GetDirectorByName(ctx context.Context, name string) (*model.Director, error) {
	movie, err := s.repo.FirstByDirectorName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie.Director, nil
}
