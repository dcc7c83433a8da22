package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KushalZanzari/Echo-AI/internal/config"
	"github.com/KushalZanzari/Echo-AI/internal/domain"
	"github.com/KushalZanzari/Echo-AI/internal/repository"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
	}
	return NewAuthService(repository.NewUserRepository(db), cfg, zap.NewNop())
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, &domain.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)

	token, signedIn, err := svc.SignIn(ctx, &domain.SignInRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, signedIn.ID)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestSignUpMissingFields(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.SignUp(context.Background(), &domain.SignUpRequest{
		Name: "Alice", Email: "alice@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &domain.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, &domain.SignUpRequest{
		Name: "Alice Again", Email: "alice@example.com", Password: "other",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &domain.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, &domain.SignInRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignInUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, err := svc.SignIn(context.Background(), &domain.SignInRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestAuthService(t)
	other := newTestAuthService(t)
	other.secret = []byte("different-secret")

	_, err := svc.SignUp(context.Background(), &domain.SignUpRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	token, _, err := svc.SignIn(context.Background(), &domain.SignInRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
