package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"soulsync/internal/kafka"
	"soulsync/internal/model"
	"soulsync/internal/repository"
)

// VerificationService manages the pending professional queue. Verify keeps
// the account and marks it verified; reject deletes the account entirely —
// destructive and deliberate, there is no appeal path.
type VerificationService struct {
	verificationRepo *repository.VerificationRepository
	userRepo         *repository.UserRepository
	notifications    *NotificationService
	events           *kafka.Events
	logger           *zap.Logger
}

// NewVerificationService creates a new verification service
func NewVerificationService(
	verificationRepo *repository.VerificationRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
	events *kafka.Events,
	logger *zap.Logger,
) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		notifications:    notifications,
		events:           events,
		logger:           logger,
	}
}

// Submit enters a professional account into the pending queue
func (s *VerificationService) Submit(ctx context.Context, user *model.User) error {
	return s.verificationRepo.Create(ctx, &model.VerificationRequest{
		UserID:           user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Occupation:       user.Occupation,
		IdentityDocument: user.IdentityDocument,
		SubmittedAt:      time.Now(),
	})
}

// Pending returns the queue in store order
func (s *VerificationService) Pending(ctx context.Context) ([]model.VerificationRequest, error) {
	return s.verificationRepo.List(ctx)
}

// Verify removes the pending entry, marks the account verified, and sends
// the user a verification notification
func (s *VerificationService) Verify(ctx context.Context, userID string) (*model.User, error) {
	request, err := s.verificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if _, err := s.verificationRepo.Remove(ctx, userID); err != nil {
		return nil, err
	}

	user.IsVerified = true
	if _, err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	message := "Your professional account has been verified"
	if _, err := s.notifications.Append(ctx, userID, model.NotificationTypeVerification, message, ""); err != nil {
		s.logger.Warn("failed to send verification notification", zap.Error(err), zap.String("userID", userID))
	}

	s.events.Emit(ctx, kafka.EventProfessionalVerified, userID, "")

	return user, nil
}

// Reject removes the pending entry and deletes the account record. The
// user's notification partition is cleared as well so no orphan partition
// remains; any later login with the account's email fails.
func (s *VerificationService) Reject(ctx context.Context, userID string) error {
	request, err := s.verificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrNotFound
	}

	if _, err := s.verificationRepo.Remove(ctx, userID); err != nil {
		return err
	}

	if _, err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := s.notifications.Clear(ctx, userID); err != nil {
		s.logger.Warn("failed to clear notifications for rejected account",
			zap.Error(err),
			zap.String("userID", userID))
	}

	s.events.Emit(ctx, kafka.EventProfessionalRejected, userID, "")

	s.logger.Info("professional application rejected, account deleted", zap.String("userID", userID))

	return nil
}
