package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"soulsync/internal/kafka"
	"soulsync/internal/model"
	"soulsync/internal/repository"
)

// NotificationService is the notification ledger: it owns every read and
// mutation of a user's notification partition.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	events           *kafka.Events
	logger           *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	events *kafka.Events,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		events:           events,
		logger:           logger,
	}
}

// Append creates an unread notification in the owner's partition and
// persists it immediately
func (s *NotificationService) Append(ctx context.Context, ownerID, notificationType, message, targetID string) (*model.Notification, error) {
	notification := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Type:      notificationType,
		Message:   message,
		TargetID:  targetID,
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := s.notificationRepo.Append(ctx, notification); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, kafka.EventNotificationCreated, notification.ID, ownerID)

	return notification, nil
}

// List returns the owner's notifications newest first, with total and unread
// counts. The unread count is recomputed from the stored partition, never
// cached.
func (s *NotificationService) List(ctx context.Context, ownerID string, unreadOnly bool) (*model.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	unread := 0
	for i := range notifications {
		if !notifications[i].Read {
			unread++
		}
	}
	total := len(notifications)

	if unreadOnly {
		filtered := make([]model.Notification, 0, unread)
		for _, n := range notifications {
			if !n.Read {
				filtered = append(filtered, n)
			}
		}
		notifications = filtered
	}

	return &model.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		Unread:        unread,
	}, nil
}

// UnreadCount returns the owner's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, ownerID string) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, ownerID)
}

// MarkRead flips read=true on one notification. Unknown ids are a no-op, so
// the operation is idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, ownerID, notificationID string) error {
	changed, err := s.notificationRepo.MarkRead(ctx, ownerID, notificationID)
	if err != nil {
		return err
	}

	if !changed {
		s.logger.Debug("mark-read matched nothing",
			zap.String("ownerID", ownerID),
			zap.String("notificationID", notificationID))
	}

	return nil
}

// MarkAllRead flips read=true on every notification for the owner and
// returns the number marked
func (s *NotificationService) MarkAllRead(ctx context.Context, ownerID string) (int, error) {
	return s.notificationRepo.MarkAllRead(ctx, ownerID)
}

// Clear deletes every notification for the owner
func (s *NotificationService) Clear(ctx context.Context, ownerID string) error {
	return s.notificationRepo.Clear(ctx, ownerID)
}

// PruneRead removes read notifications older than cutoff for one owner
func (s *NotificationService) PruneRead(ctx context.Context, ownerID string, cutoff time.Time) (int, error) {
	return s.notificationRepo.PruneRead(ctx, ownerID, cutoff)
}
