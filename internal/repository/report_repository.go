package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"soulsync/internal/model"
	"soulsync/internal/store"
)

// ReportRepository persists the global report queue
type ReportRepository struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(recordStore store.RecordStore, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		store:  recordStore,
		logger: logger,
	}
}

func (r *ReportRepository) load(ctx context.Context) ([]model.Report, error) {
	raw, err := r.store.Get(ctx, store.KeyReportedContent)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var reports []model.Report
	if err := json.Unmarshal(raw, &reports); err != nil {
		r.logger.Warn("corrupt report store, resetting to empty", zap.Error(err))
		return nil, nil
	}

	return reports, nil
}

func (r *ReportRepository) save(ctx context.Context, reports []model.Report) error {
	raw, err := json.Marshal(reports)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyReportedContent, raw)
}

// Create appends a new report
func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	reports, err := r.load(ctx)
	if err != nil {
		return err
	}

	reports = append(reports, *report)
	return r.save(ctx, reports)
}

// GetByID retrieves a report by ID, (nil, nil) when not found
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*model.Report, error) {
	reports, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range reports {
		if reports[i].ID == id {
			return &reports[i], nil
		}
	}

	return nil, nil
}

// List returns every report in store order
func (r *ReportRepository) List(ctx context.Context) ([]model.Report, error) {
	return r.load(ctx)
}

// ListPending returns reports with status=pending in store order
func (r *ReportRepository) ListPending(ctx context.Context) ([]model.Report, error) {
	reports, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]model.Report, 0, len(reports))
	for _, report := range reports {
		if report.Status == model.ReportStatusPending {
			pending = append(pending, report)
		}
	}

	return pending, nil
}

// UpdateStatus sets the status on the matching report. Returns false when no
// record matched.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	reports, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range reports {
		if reports[i].ID == id {
			reports[i].Status = status
			return true, r.save(ctx, reports)
		}
	}

	return false, nil
}
