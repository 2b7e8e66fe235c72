package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/flicklist/flicklist-go/internal/model"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (username, email, password_hash, birthday) VALUES (?, ?, ?, ?)`)).
		WithArgs("alice1", "a@b.com", "$argon2id$hash", nil).
		WillReturnResult(sqlmock.NewResult(7, 1))

	user := &model.User{Username: "alice1", Email: "a@b.com", PasswordHash: "$argon2id$hash"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if user.ID != 7 {
		t.Errorf("Create() user.ID = %d, want 7", user.ID)
	}

	expectationsMet(t, mock)
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New(`Error 1062 (23000): Duplicate entry 'alice1' for key 'users.uq_users_username'`))

	user := &model.User{Username: "alice1", Email: "a@b.com", PasswordHash: "h"}
	err := repo.Create(context.Background(), user)
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Errorf("Create() error = %v, want ErrDuplicateUsername", err)
	}

	expectationsMet(t, mock)
}

func TestGetByUsernameNotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password_hash, birthday, created_at, updated_at`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "birthday", "created_at", "updated_at"}))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByUsername() error = %v, want ErrUserNotFound", err)
	}

	expectationsMet(t, mock)
}

func TestDeleteNotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE username = ?`)).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Delete() error = %v, want ErrUserNotFound", err)
	}

	expectationsMet(t, mock)
}

func TestAddFavorite(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO favorites (user_id, movie_id) VALUES (?, ?)`)).
		WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.AddFavorite(context.Background(), 1, 42); err != nil {
		t.Errorf("AddFavorite() unexpected error: %v", err)
	}

	expectationsMet(t, mock)
}

func TestAddFavoriteAlreadyPresent(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	// Inserting an existing (user_id, movie_id) violates the primary key;
	// the duplicate maps to success, which is what makes the add idempotent.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO favorites (user_id, movie_id) VALUES (?, ?)`)).
		WithArgs(int64(1), int64(42)).
		WillReturnError(errors.New(`Error 1062 (23000): Duplicate entry '1-42' for key 'favorites.PRIMARY'`))

	if err := repo.AddFavorite(context.Background(), 1, 42); err != nil {
		t.Errorf("AddFavorite() unexpected error: %v", err)
	}

	expectationsMet(t, mock)
}

func TestAddFavoriteMissingMovie(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO favorites`)).
		WillReturnError(errors.New(`Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails`))

	err := repo.AddFavorite(context.Background(), 1, 999)
	if !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("AddFavorite() error = %v, want ErrMovieNotFound", err)
	}

	expectationsMet(t, mock)
}

func TestRemoveFavoriteAbsent(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM favorites WHERE user_id = ? AND movie_id = ?`)).
		WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.RemoveFavorite(context.Background(), 1, 42); err != nil {
		t.Errorf("RemoveFavorite() unexpected error: %v", err)
	}

	expectationsMet(t, mock)
}

func TestListFavoriteIDs(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT movie_id FROM favorites WHERE user_id = ? ORDER BY added_at, movie_id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"movie_id"}).AddRow(3).AddRow(1))

	ids, err := repo.ListFavoriteIDs(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListFavoriteIDs() unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Errorf("ListFavoriteIDs() = %v, want [3 1]", ids)
	}

	expectationsMet(t, mock)
}

func TestListFavoriteIDsEmpty(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT movie_id FROM favorites`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"movie_id"}))

	ids, err := repo.ListFavoriteIDs(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListFavoriteIDs() unexpected error: %v", err)
	}
	if ids == nil {
		t.Fatal("ListFavoriteIDs() returned nil, want empty slice")
	}
	if len(ids) != 0 {
		t.Errorf("ListFavoriteIDs() = %v, want empty", ids)
	}

	expectationsMet(t, mock)
}

func TestGetByUsername(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password_hash, birthday, created_at, updated_at`)).
		WithArgs("alice1").
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "username", "email", "password_hash", "birthday", "created_at", "updated_at"}).
			AddRow(1, "alice1", "a@b.com", "$argon2id$hash", nil, now, now))

	user, err := repo.GetByUsername(context.Background(), "alice1")
	if err != nil {
		t.Fatalf("GetByUsername() unexpected error: %v", err)
	}
	if user.Username != "alice1" || user.Email != "a@b.com" {
		t.Errorf("GetByUsername() = %+v, want alice1/a@b.com", user)
	}
	if user.Birthday != nil {
		t.Errorf("GetByUsername() birthday = %v, want nil", user.Birthday)
	}

	expectationsMet(t, mock)
}
