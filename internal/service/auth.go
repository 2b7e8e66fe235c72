package service

import (
	"context"
	"errors"
	"time"

	"github.com/flicklist/flicklist-go/internal/crypto"
	"github.com/flicklist/flicklist-go/internal/model"
	"github.com/flicklist/flicklist-go/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles login and token minting.
type AuthService struct {
	repo      *repository.UserRepository
	hasher    *crypto.Hasher
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, hasher *crypto.Hasher, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Login authenticates a user by username and password and returns a bearer
// token. An unknown username and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	favorites, err := s.repo.ListFavoriteIDs(ctx, user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  userResponse(user, favorites),
	}, nil
}

// userResponse converts a stored user to its API shape. The password hash
// never leaves the service layer.
func userResponse(user *model.User, favorites []int64) model.UserResponse {
	if favorites == nil {
		favorites = []int64{}
	}
	return model.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Birthday:  user.Birthday,
		Favorites: favorites,
		CreatedAt: user.CreatedAt,
	}
}
