package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/flicklist/flicklist-go/internal/crypto"
	"github.com/flicklist/flicklist-go/internal/model"
	"github.com/flicklist/flicklist-go/internal/repository"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
	ErrForbidden     = errors.New("not allowed to modify another user's resources")
)

// FieldError describes a single violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated rule in a request so the
// client sees them all at once, not just the first.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AccountService handles registration, profile updates, and account removal.
type AccountService struct {
	repo   *repository.UserRepository
	hasher *crypto.Hasher
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo *repository.UserRepository, hasher *crypto.Hasher) *AccountService {
	return &AccountService{repo: repo, hasher: hasher}
}

// Register validates and creates a new user account. The application-level
// uniqueness check is only a fast path for a friendly error; the database
// unique key is the real guard, so the read-then-write window is closed at
// the store.
func (s *AccountService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error) {
	var fields []FieldError
	if len(req.Username) < 5 {
		fields = append(fields, FieldError{Field: "username", Message: "must be at least 5 characters"})
	}
	if !isAlphanumeric(req.Username) {
		fields = append(fields, FieldError{Field: "username", Message: "must contain only alphanumeric characters"})
	}
	if req.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "is required"})
	}
	if !isValidEmail(req.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "does not appear to be valid"})
	}
	if len(fields) > 0 {
		return model.UserResponse{}, &ValidationError{Fields: fields}
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return model.UserResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.UserResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Birthday:     req.Birthday,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.UserResponse{}, ErrUsernameTaken
		}
		return model.UserResponse{}, err
	}

	return userResponse(user, nil), nil
}

// GetUser retrieves a user profile with favorites.
func (s *AccountService) GetUser(ctx context.Context, username string) (model.UserResponse, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	favorites, err := s.repo.ListFavoriteIDs(ctx, user.ID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return userResponse(user, favorites), nil
}

// UpdateProfile updates the mutable profile fields of the caller's own
// account. Empty request fields keep their current values.
func (s *AccountService) UpdateProfile(ctx context.Context, username, callerUsername string, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if username != callerUsername {
		return model.UserResponse{}, ErrForbidden
	}

	var fields []FieldError
	if req.Username != "" && req.Username != username {
		// Renames would invalidate the caller's own token, whose subject
		// is the username.
		fields = append(fields, FieldError{Field: "username", Message: "cannot be changed"})
	}
	if req.Email != "" && !isValidEmail(req.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "does not appear to be valid"})
	}
	if len(fields) > 0 {
		return model.UserResponse{}, &ValidationError{Fields: fields}
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}
	if req.Birthday != nil {
		user.Birthday = req.Birthday
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return model.UserResponse{}, err
	}

	favorites, err := s.repo.ListFavoriteIDs(ctx, user.ID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return userResponse(user, favorites), nil
}

// DeleteUser removes the caller's own account. A missing account reports
// ErrUserNotFound distinctly from success.
func (s *AccountService) DeleteUser(ctx context.Context, username, callerUsername string) error {
	if username != callerUsername {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isDigit && !isLetter {
			return false
		}
	}
	return true
}

func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
