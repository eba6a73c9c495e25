package domain

import "time"

// User represents a registered identity in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile is a user's identity plus cheap activity aggregates.
type UserProfile struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ArticlesCount int64  `json:"articles_count"`
	CommentsCount int64  `json:"comments_count"`
}

// UserPatch carries the updatable profile fields. Nil fields are left
// untouched; password changes go through a separate flow.
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// TokenPair is the credential pair issued on registration and login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
