package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"soulsync/internal/model"
	"soulsync/internal/store"
)

// NotificationRepository persists per-owner notification partitions. Every
// operation touches exactly one owner's key.
type NotificationRepository struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(recordStore store.RecordStore, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		store:  recordStore,
		logger: logger,
	}
}

// load reads one owner's partition. Corrupt data is logged and treated as
// empty; the ledger never surfaces a parse failure to callers.
func (r *NotificationRepository) load(ctx context.Context, ownerID string) ([]model.Notification, error) {
	raw, err := r.store.Get(ctx, store.NotificationKey(ownerID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var notifications []model.Notification
	if err := json.Unmarshal(raw, &notifications); err != nil {
		r.logger.Warn("corrupt notification partition, resetting to empty",
			zap.String("ownerID", ownerID),
			zap.Error(err))
		return nil, nil
	}

	return notifications, nil
}

func (r *NotificationRepository) save(ctx context.Context, ownerID string, notifications []model.Notification) error {
	raw, err := json.Marshal(notifications)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.NotificationKey(ownerID), raw)
}

// ListByOwner returns the owner's notifications newest first. Ties on the
// creation timestamp keep insertion order (stable sort).
func (r *NotificationRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Notification, error) {
	notifications, err := r.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return notifications, nil
}

// Append adds a notification to the owner's partition
func (r *NotificationRepository) Append(ctx context.Context, notification *model.Notification) error {
	notifications, err := r.load(ctx, notification.UserID)
	if err != nil {
		return err
	}

	notifications = append(notifications, *notification)
	return r.save(ctx, notification.UserID, notifications)
}

// MarkRead sets read=true on the matching notification. Returns false when
// the id is absent from the owner's partition; that is a no-op, not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, ownerID, notificationID string) (bool, error) {
	notifications, err := r.load(ctx, ownerID)
	if err != nil {
		return false, err
	}

	changed := false
	for i := range notifications {
		if notifications[i].ID == notificationID {
			if !notifications[i].Read {
				notifications[i].Read = true
				changed = true
			}
			break
		}
	}

	if !changed {
		return false, nil
	}

	return true, r.save(ctx, ownerID, notifications)
}

// MarkAllRead sets read=true on every notification for the owner and returns
// the number of records that changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, ownerID string) (int, error) {
	notifications, err := r.load(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	marked := 0
	for i := range notifications {
		if !notifications[i].Read {
			notifications[i].Read = true
			marked++
		}
	}

	if marked == 0 {
		return 0, nil
	}

	return marked, r.save(ctx, ownerID, notifications)
}

// Clear deletes the owner's entire partition
func (r *NotificationRepository) Clear(ctx context.Context, ownerID string) error {
	return r.store.Delete(ctx, store.NotificationKey(ownerID))
}

// UnreadCount recomputes the unread count from the stored partition on every
// call; it is never cached across mutations.
func (r *NotificationRepository) UnreadCount(ctx context.Context, ownerID string) (int, error) {
	notifications, err := r.load(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range notifications {
		if !notifications[i].Read {
			count++
		}
	}

	return count, nil
}

// PruneRead drops read notifications older than cutoff and returns the
// number removed
func (r *NotificationRepository) PruneRead(ctx context.Context, ownerID string, cutoff time.Time) (int, error) {
	notifications, err := r.load(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	kept := notifications[:0]
	for _, n := range notifications {
		if n.Read && n.CreatedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, n)
	}

	removed := len(notifications) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	return removed, r.save(ctx, ownerID, kept)
}
