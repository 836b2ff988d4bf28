// Package auth provides authentication for the RMA API.
package auth

import (
	"context"
	"time"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
)

// User represents a system user.
type User struct {
	ID           id.ID      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"fullName,omitempty"`
	CompanyID    id.ID      `db:"company_id" json:"companyId"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	IsAdmin      bool       `db:"is_admin" json:"isAdmin"`
	Roles        []string   `db:"roles" json:"roles,omitempty"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a new active user.
func NewUser(email, passwordHash string, companyID id.ID) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CompanyID:    companyID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if id.IsNil(u.CompanyID) {
		return apperror.NewValidation("company is required").WithDetail("field", "companyId")
	}
	return nil
}

// CanLogin checks if user can login.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}

// RecordSuccessfulLogin stamps the login time.
func (u *User) RecordSuccessfulLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the issued access token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}
