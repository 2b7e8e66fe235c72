package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/flicklist/flicklist-go/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository handles user and favorites persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// The unique key on username is the authoritative uniqueness guard; a
// duplicate insert maps to ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash, birthday) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Birthday)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUsername
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, birthday, created_at, updated_at
		FROM users WHERE username = ?`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Birthday, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// Update persists the mutable profile fields (email, password hash, birthday)
// of an existing user, matched by username.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET email = ?, password_hash = ?, birthday = ? WHERE username = ?`

	_, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, user.Birthday, user.Username)
	return err
}

// Delete removes a user by username. Deleting an absent user returns
// ErrUserNotFound so callers can report it distinctly from success.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// AddFavorite inserts a movie reference into the user's favorites set.
// The primary key on (user_id, movie_id) makes the add an atomic set
// operation: a duplicate-key error means the movie is already in the set
// and is treated as success. A missing movie trips the foreign key and
// maps to ErrMovieNotFound. Must stay a plain INSERT: with INSERT IGNORE,
// MySQL downgrades the foreign-key violation to a warning and the missing
// movie would go unnoticed.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, movieID int64) error {
	query := `INSERT INTO favorites (user_id, movie_id) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil
		}
		if isForeignKeyError(err) {
			return ErrMovieNotFound
		}
		return err
	}

	return nil
}

// RemoveFavorite deletes a movie reference from the user's favorites set.
// Removing an absent movie is a no-op success.
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, movieID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND movie_id = ?`, userID, movieID)
	return err
}

// ListFavoriteIDs retrieves the user's favorite movie ids in insertion order.
func (r *UserRepository) ListFavoriteIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT movie_id FROM favorites WHERE user_id = ? ORDER BY added_at, movie_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

// isForeignKeyError checks if a MySQL error is a foreign key violation (code 1452).
func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "foreign key constraint fails")
}
