package model

import (
	"time"
)

// Roles known to the system. Admin accounts are seeded, never registered.
const (
	RoleUser         = "user"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

// User represents a user account
type User struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             string     `json:"role"`
	IsVerified       bool       `json:"is_verified"`
	Occupation       string     `json:"occupation,omitempty"`
	IdentityDocument string     `json:"identity_document,omitempty"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// UserCreate represents data needed to register a new account.
// Occupation and identity document are required for professionals only.
type UserCreate struct {
	Username         string `json:"username" binding:"required,min=3,max=50"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	Role             string `json:"role" binding:"omitempty,oneof=user professional"`
	Occupation       string `json:"occupation"`
	IdentityDocument string `json:"identity_document"`
}

// UserLogin represents data needed for user login
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents the response sent after successful authentication
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// RefreshRequest represents a request to refresh an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}
