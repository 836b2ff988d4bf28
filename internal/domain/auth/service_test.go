package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
)

type fakeUserRepo struct {
	users map[string]*User
}

func (r *fakeUserRepo) Create(_ context.Context, u *User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, uid id.ID) (*User, error) {
	for _, u := range r.users {
		if u.ID == uid {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", uid.String())
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *User) error {
	r.users[u.Email] = u
	return nil
}

func newAuthService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{users: map[string]*User{}}
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, jwtSvc, nil), repo
}

func TestLogin(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := NewUser("ops@example.com", string(hash), id.New())
	repo.users[user.Email] = user

	t.Run("success", func(t *testing.T) {
		tok, err := svc.Login(ctx, Credentials{Email: "Ops@Example.com ", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, tok.AccessToken)
		assert.Equal(t, "Bearer", tok.TokenType)
		assert.True(t, tok.ExpiresAt.After(time.Now()))
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, Credentials{Email: "ops@example.com", Password: "nope"})
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
	})

	t.Run("unknown user gets the same answer", func(t *testing.T) {
		_, err := svc.Login(ctx, Credentials{Email: "ghost@example.com", Password: "whatever"})
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
	})

	t.Run("disabled account", func(t *testing.T) {
		user.IsActive = false
		defer func() { user.IsActive = true }()
		_, err := svc.Login(ctx, Credentials{Email: "ops@example.com", Password: "s3cret-pass"})
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeForbidden))
	})
}

func TestTokenRoundtrip(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	companyID := id.New()
	user, err := svc.Register(ctx, "admin@example.com", "longenough", companyID, true)
	require.NoError(t, err)
	require.NotNil(t, repo.users["admin@example.com"])

	tok, err := svc.Login(ctx, Credentials{Email: "admin@example.com", Password: "longenough"})
	require.NoError(t, err)

	uc, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, companyID.String(), uc.CompanyID)
	assert.Equal(t, "admin@example.com", uc.Email)
	assert.True(t, uc.IsAdmin)
}

func TestValidateToken_BadToken(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "a@b.co", "short", id.New(), false)
		require.Error(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "dup@example.com", "longenough", id.New(), false)
		require.NoError(t, err)
		_, err = svc.Register(ctx, "dup@example.com", "longenough", id.New(), false)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeDuplicate))
	})
}
