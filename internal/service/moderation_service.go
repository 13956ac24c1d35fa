package service

import (
	"context"

	"go.uber.org/zap"

	"soulsync/internal/kafka"
	"soulsync/internal/model"
	"soulsync/internal/repository"
)

// ModerationService drives reports through their lifecycle:
// pending -> reviewed (dismiss, content kept) | resolved (remove, content
// deleted). Reviewed and resolved are terminal; acting on a terminal report
// is a no-op.
type ModerationService struct {
	reportRepo *repository.ReportRepository
	forum      *ForumService
	events     *kafka.Events
	logger     *zap.Logger
}

// NewModerationService creates a new moderation service
func NewModerationService(
	reportRepo *repository.ReportRepository,
	forum *ForumService,
	events *kafka.Events,
	logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		reportRepo: reportRepo,
		forum:      forum,
		events:     events,
		logger:     logger,
	}
}

// PendingReports returns reports awaiting review, in store order
func (s *ModerationService) PendingReports(ctx context.Context) ([]model.Report, error) {
	return s.reportRepo.ListPending(ctx)
}

// Dismiss transitions a pending report to reviewed. The reported content is
// kept.
func (s *ModerationService) Dismiss(ctx context.Context, actorID, reportID string) (*model.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	if report.IsTerminal() {
		return report, nil
	}

	if _, err := s.reportRepo.UpdateStatus(ctx, reportID, model.ReportStatusReviewed); err != nil {
		return nil, err
	}
	report.Status = model.ReportStatusReviewed

	s.events.Emit(ctx, kafka.EventReportDismissed, report.ID, actorID)

	return report, nil
}

// Remove transitions a pending report to resolved and deletes the reported
// content. Content that is already gone still resolves the report.
func (s *ModerationService) Remove(ctx context.Context, actorID, reportID string) (*model.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	if report.IsTerminal() {
		return report, nil
	}

	deleted, err := s.forum.DeleteContent(ctx, report.ContentType, report.ContentID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		s.logger.Info("reported content already gone",
			zap.String("reportID", report.ID),
			zap.String("contentID", report.ContentID))
	}

	if _, err := s.reportRepo.UpdateStatus(ctx, reportID, model.ReportStatusResolved); err != nil {
		return nil, err
	}
	report.Status = model.ReportStatusResolved

	s.events.Emit(ctx, kafka.EventReportResolved, report.ID, actorID)

	return report, nil
}
