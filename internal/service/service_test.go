package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"soulsync/internal/config"
	"soulsync/internal/model"
	"soulsync/internal/repository"
	"soulsync/internal/store"
)

// testEnv wires the full service stack over an in-memory store, with
// events disabled.
type testEnv struct {
	store         *store.MemoryStore
	userRepo      *repository.UserRepository
	notifications *NotificationService
	auth          *AuthService
	forum         *ForumService
	moderation    *ModerationService
	verification  *VerificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	memStore := store.NewMemoryStore()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 168 * time.Hour,
		},
	}

	userRepo := repository.NewUserRepository(memStore, logger)
	notificationRepo := repository.NewNotificationRepository(memStore, logger)
	forumRepo := repository.NewForumRepository(memStore, logger)
	reportRepo := repository.NewReportRepository(memStore, logger)
	verificationRepo := repository.NewVerificationRepository(memStore, logger)

	notifications := NewNotificationService(notificationRepo, nil, logger)
	verification := NewVerificationService(verificationRepo, userRepo, notifications, nil, logger)
	auth := NewAuthService(userRepo, verification, cfg, logger)
	forum := NewForumService(forumRepo, reportRepo, userRepo, notifications, nil, logger)
	moderation := NewModerationService(reportRepo, forum, nil, logger)

	return &testEnv{
		store:         memStore,
		userRepo:      userRepo,
		notifications: notifications,
		auth:          auth,
		forum:         forum,
		moderation:    moderation,
		verification:  verification,
	}
}

// seedUser writes an account straight into the store, bypassing
// registration. Admin accounts can only enter the system this way.
func (env *testEnv) seedUser(t *testing.T, username, role string) *model.User {
	t.Helper()

	user := &model.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
		CreatedAt: time.Now(),
	}
	require.NoError(t, env.userRepo.Create(context.Background(), user))
	return user
}

// seedCategory creates a forum category for post tests
func (env *testEnv) seedCategory(t *testing.T, name string) *model.ForumCategory {
	t.Helper()

	category, err := env.forum.CreateCategory(context.Background(), &model.CategoryCreate{
		Name:        name,
		Description: "test category",
	})
	require.NoError(t, err)
	return category
}

// seedPost creates a post by author in category
func (env *testEnv) seedPost(t *testing.T, author *model.User, categoryID string, anonymous bool) *model.ForumPost {
	t.Helper()

	post, err := env.forum.CreatePost(context.Background(), author, &model.PostCreate{
		Title:       "How do you handle bad days?",
		Content:     "Looking for coping strategies.",
		CategoryID:  categoryID,
		IsAnonymous: anonymous,
	})
	require.NoError(t, err)
	return post
}
