package service

import (
	"context"
	"testing"
	"time"

	"gotix/internal/auth"
	apperrors "gotix/internal/errors"
	"gotix/internal/models"
	"gotix/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *auth.TokenIssuer) {
	t.Helper()
	store := repository.NewMemoryStore()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(store.Users(), issuer), issuer
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		FullName:        "Jane Doe",
		Username:        "janedoe",
		Email:           "jane@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.False(t, user.IsActive)
	assert.NotEmpty(t, user.ActivationCode)
	assert.NotEqual(t, "Secret123", user.Password)
}

func TestRegisterPasswordPolicy(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		password string
		confirm  string
	}{
		{"mismatch", "Secret123", "Secret124"},
		{"too short", "Abc12", "Abc12"},
		{"no uppercase", "secret123", "secret123"},
		{"no digit", "SecretPass", "SecretPass"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := registerRequest()
			req.Password = tc.password
			req.ConfirmPassword = tc.confirm
			_, err := svc.Register(ctx, req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	// Six characters is the minimum and must pass
	req := registerRequest()
	req.Username = "sixchars"
	req.Email = "sixchars@example.com"
	req.Password = "Abc123"
	req.ConfirmPassword = "Abc123"
	_, err := svc.Register(ctx, req)
	assert.NoError(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLogin(t *testing.T) {
	svc, issuer := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	// Not activated yet
	_, err = svc.Login(ctx, &models.LoginRequest{Identifier: "janedoe", Password: "Secret123"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Activate(ctx, user.ActivationCode)
	require.NoError(t, err)

	// By username
	token, err := svc.Login(ctx, &models.LoginRequest{Identifier: "janedoe", Password: "Secret123"})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleMember, claims.Role)

	// By email
	_, err = svc.Login(ctx, &models.LoginRequest{Identifier: "jane@example.com", Password: "Secret123"})
	assert.NoError(t, err)

	// Wrong password
	_, err = svc.Login(ctx, &models.LoginRequest{Identifier: "janedoe", Password: "Wrong123"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Unknown user
	_, err = svc.Login(ctx, &models.LoginRequest{Identifier: "nobody", Password: "Secret123"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestActivation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	activated, err := svc.Activate(ctx, user.ActivationCode)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	// Activating again is a no-op, not an error
	_, err = svc.Activate(ctx, user.ActivationCode)
	assert.NoError(t, err)

	_, err = svc.Activate(ctx, "bogus-code")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMe(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	got, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = svc.Me(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTokenIssuer(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Generate(42, models.RoleAdmin)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// Wrong secret must not verify
	other := auth.NewTokenIssuer("other-secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Expired tokens must not verify
	expired := auth.NewTokenIssuer("test-secret", -time.Minute)
	token, err = expired.Generate(42, models.RoleAdmin)
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
