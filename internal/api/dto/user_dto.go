package dto

import "time"

// LoginRequest is the input of loginAdmin, loginUser and registerUser.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterAdminRequest carries the caller's "<scheme> <token>" authorization.
type RegisterAdminRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Authorization string `json:"authorization"`
}

// IdentityView is the public projection of an admin or user.
type IdentityView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse standard response for auth operations.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Identity  IdentityView `json:"identity"`
}
