package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsync/internal/config"
	"soulsync/internal/model"
)

func registerRequest(username string) *model.UserCreate {
	return &model.UserCreate{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tokens, err := env.auth.Register(ctx, registerRequest("casey"))
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, model.RoleUser, tokens.User.Role)

	login, err := env.auth.Login(ctx, &model.UserLogin{
		Email:    "casey@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, login.User.ID)

	userID, err := env.auth.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, userID)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx, registerRequest("casey"))
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, &model.UserLogin{
		Email:    "casey@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, &model.UserLogin{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx, registerRequest("casey"))
	require.NoError(t, err)

	duplicate := registerRequest("casey2")
	duplicate.Email = "Casey@Example.com" // email matching is case-insensitive
	_, err = env.auth.Register(ctx, duplicate)
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx, registerRequest("casey"))
	require.NoError(t, err)

	duplicate := registerRequest("CASEY")
	duplicate.Email = "other@example.com"
	_, err = env.auth.Register(ctx, duplicate)
	assert.ErrorIs(t, err, ErrUsernameInUse)
}

func TestRegisterProfessionalRequiresCredentials(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	request := registerRequest("drsmith")
	request.Role = model.RoleProfessional

	_, err := env.auth.Register(ctx, request)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	request.Occupation = "Therapist"
	_, err = env.auth.Register(ctx, request)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRegisterProfessionalEntersPendingQueue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	request := registerRequest("drsmith")
	request.Role = model.RoleProfessional
	request.Occupation = "Therapist"
	request.IdentityDocument = "license-4411"

	tokens, err := env.auth.Register(ctx, request)
	require.NoError(t, err)
	assert.False(t, tokens.User.IsVerified)

	pending, err := env.verification.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, tokens.User.ID, pending[0].UserID)
	assert.Equal(t, "Therapist", pending[0].Occupation)
}

func TestRegularRegistrationSkipsPendingQueue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx, registerRequest("casey"))
	require.NoError(t, err)

	pending, err := env.verification.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tokens, err := env.auth.Register(ctx, registerRequest("casey"))
	require.NoError(t, err)

	refreshed, err := env.auth.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not a refresh token
	_, err = env.auth.RefreshToken(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seed := config.SeedAdminConfig{
		Enabled:  true,
		Username: "admin",
		Email:    "admin@example.com",
		Password: "correct horse battery",
	}

	require.NoError(t, env.auth.SeedAdmin(ctx, seed))

	tokens, err := env.auth.Login(ctx, &model.UserLogin{
		Email:    "admin@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, tokens.User.Role)
	assert.True(t, tokens.User.IsVerified)

	// Seeding again (a restart) does not duplicate the account
	require.NoError(t, env.auth.SeedAdmin(ctx, seed))
	users, err := env.userRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSeedAdminRequiresCredentials(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.auth.SeedAdmin(ctx, config.SeedAdminConfig{Enabled: true, Username: "admin"})
	assert.Error(t, err)
}

func TestRegisterCannotClaimAdminEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.auth.SeedAdmin(ctx, config.SeedAdminConfig{
		Enabled:  true,
		Username: "admin",
		Email:    "admin@example.com",
		Password: "correct horse battery",
	}))

	request := registerRequest("impostor")
	request.Email = "admin@example.com"
	_, err := env.auth.Register(ctx, request)
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestValidateTokenRejectsRefreshToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tokens, err := env.auth.Register(ctx, registerRequest("casey"))
	require.NoError(t, err)

	_, err = env.auth.ValidateToken(tokens.RefreshToken)
	assert.Error(t, err)
}
