package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"soulsync/internal/model"
	"soulsync/internal/store"
)

// UserRepository persists the global user list
type UserRepository struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(recordStore store.RecordStore, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		store:  recordStore,
		logger: logger,
	}
}

func (r *UserRepository) load(ctx context.Context) ([]model.User, error) {
	raw, err := r.store.Get(ctx, store.KeyUsers)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var users []model.User
	if err := json.Unmarshal(raw, &users); err != nil {
		r.logger.Warn("corrupt user store, resetting to empty", zap.Error(err))
		return nil, nil
	}

	return users, nil
}

func (r *UserRepository) save(ctx context.Context, users []model.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyUsers, raw)
}

// Create appends a new user record
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	users = append(users, *user)
	return r.save(ctx, users)
}

// GetByID retrieves a user by ID, (nil, nil) when not found
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}

	return nil, nil
}

// GetByEmail retrieves a user by email, case-insensitive, (nil, nil) when not found
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}

	return nil, nil
}

// List returns all users
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return r.load(ctx)
}

// Update replaces the stored record matching user.ID. Returns false when no
// record matched.
func (r *UserRepository) Update(ctx context.Context, user *model.User) (bool, error) {
	users, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range users {
		if users[i].ID == user.ID {
			now := time.Now()
			user.UpdatedAt = &now
			users[i] = *user
			return true, r.save(ctx, users)
		}
	}

	return false, nil
}

// Delete removes the user record entirely. Returns false when no record
// matched.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	users, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range users {
		if users[i].ID == id {
			users = append(users[:i], users[i+1:]...)
			return true, r.save(ctx, users)
		}
	}

	return false, nil
}
