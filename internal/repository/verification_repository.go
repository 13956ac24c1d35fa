package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"soulsync/internal/model"
	"soulsync/internal/store"
)

// VerificationRepository persists the pending professional queue
type VerificationRepository struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(recordStore store.RecordStore, logger *zap.Logger) *VerificationRepository {
	return &VerificationRepository{
		store:  recordStore,
		logger: logger,
	}
}

func (r *VerificationRepository) load(ctx context.Context) ([]model.VerificationRequest, error) {
	raw, err := r.store.Get(ctx, store.KeyPendingProfessionals)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var requests []model.VerificationRequest
	if err := json.Unmarshal(raw, &requests); err != nil {
		r.logger.Warn("corrupt verification queue, resetting to empty", zap.Error(err))
		return nil, nil
	}

	return requests, nil
}

func (r *VerificationRepository) save(ctx context.Context, requests []model.VerificationRequest) error {
	raw, err := json.Marshal(requests)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyPendingProfessionals, raw)
}

// Create appends a pending entry
func (r *VerificationRepository) Create(ctx context.Context, request *model.VerificationRequest) error {
	requests, err := r.load(ctx)
	if err != nil {
		return err
	}

	requests = append(requests, *request)
	return r.save(ctx, requests)
}

// GetByUserID retrieves the pending entry for a user, (nil, nil) when absent
func (r *VerificationRepository) GetByUserID(ctx context.Context, userID string) (*model.VerificationRequest, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range requests {
		if requests[i].UserID == userID {
			return &requests[i], nil
		}
	}

	return nil, nil
}

// List returns the pending queue in store order
func (r *VerificationRepository) List(ctx context.Context) ([]model.VerificationRequest, error) {
	return r.load(ctx)
}

// Remove drops the pending entry for a user. Returns false when no entry
// matched.
func (r *VerificationRepository) Remove(ctx context.Context, userID string) (bool, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range requests {
		if requests[i].UserID == userID {
			requests = append(requests[:i], requests[i+1:]...)
			return true, r.save(ctx, requests)
		}
	}

	return false, nil
}
