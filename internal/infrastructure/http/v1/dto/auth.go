package dto

import (
	"time"

	"github.com/fevxie/rma/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// RegisterRequest for user registration. Admin-only.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	CompanyID string `json:"companyId" binding:"required,uuid"`
	IsAdmin   bool   `json:"isAdmin"`
}

// --- Response DTOs ---

// TokenResponse represents the issued access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// FromToken creates response from domain token.
func FromToken(t *auth.Token) *TokenResponse {
	return &TokenResponse{
		AccessToken: t.AccessToken,
		ExpiresAt:   t.ExpiresAt,
		TokenType:   t.TokenType,
	}
}

// UserResponse represents user in API response.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName,omitempty"`
	CompanyID   string     `json:"companyId"`
	IsActive    bool       `json:"isActive"`
	IsAdmin     bool       `json:"isAdmin"`
	Roles       []string   `json:"roles,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser creates response from domain user.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		CompanyID:   u.CompanyID.String(),
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		Roles:       u.Roles,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
