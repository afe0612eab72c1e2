package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=4,max=100"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	Name       string     `json:"name"`
	IsLoggedIn bool       `json:"is_logged_in"`
	LastActive *time.Time `json:"last_active,omitempty"`
}
