package model

import "time"

// User represents a coaching-app member in the database. A user row is
// only ever created by profile setup, never by magic-link validation
// alone, so every row has a first and last name.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoginRequest represents a magic-link request for an email address.
type LoginRequest struct {
	Email string `json:"email"`
}

// SetupProfileRequest represents the profile-setup form submission that
// completes registration for a setup-pending session.
type SetupProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserResponse represents user data safe for API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}
