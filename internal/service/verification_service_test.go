package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsync/internal/model"
)

// registerProfessional signs up a professional account, which lands in the
// pending queue
func registerProfessional(t *testing.T, env *testEnv, username string) *model.User {
	t.Helper()

	tokens, err := env.auth.Register(context.Background(), &model.UserCreate{
		Username:         username,
		Email:            username + "@example.com",
		Password:         "correct horse battery",
		Role:             model.RoleProfessional,
		Occupation:       "Counselor",
		IdentityDocument: "license-9921",
	})
	require.NoError(t, err)
	return &tokens.User
}

func TestVerifyMarksAccountVerified(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	professional := registerProfessional(t, env, "drsmith")

	verified, err := env.verification.Verify(ctx, professional.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	// The queue entry is consumed
	pending, err := env.verification.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// The professional is told
	list, err := env.notifications.List(ctx, professional.ID, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, model.NotificationTypeVerification, list.Notifications[0].Type)

	// Verifying twice fails: the entry is gone
	_, err = env.verification.Verify(ctx, professional.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectDeletesAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	professional := registerProfessional(t, env, "drsmith")

	// Give the account a notification so the partition exists
	_, err := env.notifications.Append(ctx, professional.ID, model.NotificationTypeSystem, "welcome", "")
	require.NoError(t, err)

	require.NoError(t, env.verification.Reject(ctx, professional.ID))

	// The queue entry and the account are both gone
	pending, err := env.verification.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	user, err := env.userRepo.GetByID(ctx, professional.ID)
	require.NoError(t, err)
	assert.Nil(t, user)

	// The notification partition was cleared with the account
	count, err := env.notifications.UnreadCount(ctx, professional.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Login with the rejected account's credentials fails
	_, err = env.auth.Login(ctx, &model.UserLogin{
		Email:    "drsmith@example.com",
		Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRejectUnknownUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.verification.Reject(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectedEmailCanRegisterAgain(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	professional := registerProfessional(t, env, "drsmith")
	require.NoError(t, env.verification.Reject(ctx, professional.ID))

	// The email is free again after rejection
	_, err := env.auth.Register(ctx, &model.UserCreate{
		Username: "drsmith",
		Email:    "drsmith@example.com",
		Password: "another password",
	})
	require.NoError(t, err)
}
