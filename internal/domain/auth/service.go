package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fevxie/rma/internal/core/apperror"
	appctx "github.com/fevxie/rma/internal/core/context"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/pkg/logger"
)

// Service provides authentication operations.
type Service struct {
	repo Repository
	jwt  *JWTService
	log  *logger.Logger
}

// NewService creates a new auth service.
func NewService(repo Repository, jwtService *JWTService, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		repo: repo,
		jwt:  jwtService,
		log:  log,
	}
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same answer as a wrong password, no account probing
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	user.RecordSuccessfulLogin()
	if err := s.repo.Update(ctx, user); err != nil {
		s.log.Warnw("record login failed", "user", user.ID, "error", err)
	}

	tokenString, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user", user.ID, "email", user.Email)

	return &Token{
		AccessToken: tokenString,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// Register creates a new user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, password string, companyID id.ID, isAdmin bool) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.NewDuplicate("user", "email", email)
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := NewUser(email, string(hash), companyID)
	user.IsAdmin = isAdmin
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ValidateToken resolves a bearer token to a user context.
func (s *Service) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	uc, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}
	return uc, nil
}
