package model

import "time"

// User represents a user account in the database.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Birthday     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a profile update request. Empty fields
// are left unchanged. Username is accepted only so a rename attempt can
// be rejected with a validation error instead of silently ignored.
type UpdateProfileRequest struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// AuthResponse represents a login response with a JWT token and user info.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Favorites []int64    `json:"favorites"`
	CreatedAt time.Time  `json:"created_at"`
}
