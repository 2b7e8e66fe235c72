package service

import (
	"context"
	"errors"

	"github.com/flicklist/flicklist-go/internal/model"
	"github.com/flicklist/flicklist-go/internal/repository"
)

// FavoritesService mutates a user's favorites set. Both operations are
// idempotent: repeating an add or a remove leaves the set in the same
// state and still reports success.
type FavoritesService struct {
	repo *repository.UserRepository
}

// NewFavoritesService creates a new FavoritesService.
func NewFavoritesService(repo *repository.UserRepository) *FavoritesService {
	return &FavoritesService{repo: repo}
}

// Add inserts a movie reference into the user's favorites set and returns
// the updated profile. Only the owner may mutate their favorites.
func (s *FavoritesService) Add(ctx context.Context, username, callerUsername string, movieID int64) (model.UserResponse, error) {
	if username != callerUsername {
		return model.UserResponse{}, ErrForbidden
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if err := s.repo.AddFavorite(ctx, user.ID, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return model.UserResponse{}, ErrMovieNotFound
		}
		return model.UserResponse{}, err
	}

	favorites, err := s.repo.ListFavoriteIDs(ctx, user.ID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return userResponse(user, favorites), nil
}

// Remove deletes a movie reference from the user's favorites set and
// returns the updated profile. Removing an absent reference is a no-op
// success, not an error.
func (s *FavoritesService) Remove(ctx context.Context, username, callerUsername string, movieID int64) (model.UserResponse, error) {
	if username != callerUsername {
		return model.UserResponse{}, ErrForbidden
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if err := s.repo.RemoveFavorite(ctx, user.ID, movieID); err != nil {
		return model.UserResponse{}, err
	}

	favorites, err := s.repo.ListFavoriteIDs(ctx, user.ID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return userResponse(user, favorites), nil
}
