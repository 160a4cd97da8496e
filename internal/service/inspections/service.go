// Package inspections implements the save, list, fetch and export operations
// on Final Inspection records. The evaluator runs as a pre-save hook.
package inspections

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/finalqc/internal/config"
	"github.com/mamadbah2/finalqc/internal/domain/models"
	"github.com/mamadbah2/finalqc/internal/repository"
	"github.com/mamadbah2/finalqc/internal/service/evaluation"
)

// Ledger mirrors saved inspections into an external sheet.
type Ledger interface {
	AppendInspection(ctx context.Context, rec *models.Inspection) error
}

// Notifier alerts QA staff about failed inspections.
type Notifier interface {
	NotifyFailedInspection(ctx context.Context, rec *models.Inspection) error
}

// Service coordinates the record store, the evaluator and the side channels.
type Service struct {
	repo      repository.InspectionRepository
	ledger    Ledger
	notifier  Notifier
	listLimit int
	now       func() time.Time
	newID     func() string
	logger    *zap.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithLedger mirrors every successful save into ledger.
func WithLedger(ledger Ledger) Option {
	return func(s *Service) { s.ledger = ledger }
}

// WithNotifier sends an alert whenever a save turns a record into a failure.
func WithNotifier(notifier Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

// WithListLimit overrides the maximum number of records List returns.
func WithListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 && limit <= config.MaxListLimit {
			s.listLimit = limit
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires a new inspection service.
func NewService(repo repository.InspectionRepository, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := &Service{
		repo:      repo,
		listLimit: config.MaxListLimit,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logger.Named("inspections"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Save creates a record when id is empty and updates the stored record
// otherwise. The payload is applied, the evaluator runs, and only then is the
// record persisted: a validation failure leaves the store untouched.
func (s *Service) Save(ctx context.Context, id string, req models.SaveInspectionRequest) (*models.Inspection, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	creating := id == ""

	var rec *models.Inspection
	previous := models.StatusUnset
	if creating {
		rec = &models.Inspection{ID: s.newID(), CreatedAt: now}
	} else {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("load inspection %s: %w", id, err)
		}
		rec = existing
		previous = existing.Status
	}

	if err := applyRequest(rec, req); err != nil {
		return nil, err
	}
	if err := evaluation.Evaluate(rec); err != nil {
		return nil, err
	}
	if rec.MajorDefects > 0 && rec.SampleSize == 0 {
		s.logger.Warn("major defects recorded without a sample size, AQL rule skipped",
			zap.String("id", rec.ID),
			zap.Int("major", rec.MajorDefects))
	}
	rec.UpdatedAt = now

	var err error
	if creating {
		err = s.repo.Create(ctx, rec)
	} else {
		err = s.repo.Update(ctx, rec)
	}
	if err != nil {
		s.logger.Error("error saving inspection", zap.String("id", rec.ID), zap.Error(err))
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error saving inspection: %w", err)
	}

	s.logger.Info("inspection saved",
		zap.String("id", rec.ID),
		zap.Bool("created", creating),
		zap.String("status", rec.Status.String()),
		zap.Int("critical", rec.CriticalDefects),
		zap.Int("major", rec.MajorDefects),
		zap.Int("minor", rec.MinorDefects))

	s.afterSave(ctx, rec, previous)
	return rec, nil
}

func (s *Service) afterSave(ctx context.Context, rec *models.Inspection, previous models.Status) {
	if s.ledger != nil {
		if err := s.ledger.AppendInspection(ctx, rec); err != nil {
			s.logger.Warn("failed to mirror inspection to sheet", zap.String("id", rec.ID), zap.Error(err))
		}
	}

	if s.notifier != nil && rec.Status == models.StatusFail && previous != models.StatusFail {
		if err := s.notifier.NotifyFailedInspection(ctx, rec); err != nil {
			s.logger.Warn("failed to send failure alert", zap.String("id", rec.ID), zap.Error(err))
		}
	}
}

// List returns the summary projection of the most recent inspections.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]models.InspectionSummary, error) {
	recs, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]models.InspectionSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Summary())
	}
	return out, nil
}

func (s *Service) list(ctx context.Context, filter models.ListFilter) ([]*models.Inspection, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 || filter.Limit > s.listLimit {
		filter.Limit = s.listLimit
	}

	recs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	return recs, nil
}

// Get returns the full projection of one inspection.
func (s *Service) Get(ctx context.Context, id string) (*models.InspectionView, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := rec.View()
	return &view, nil
}

// Report builds the sampling plan, checklist verdicts and findings of a stored inspection.
func (s *Service) Report(ctx context.Context, id string) (*evaluation.Report, error) {
	rec, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	report := evaluation.BuildReport(rec)
	return &report, nil
}

func (s *Service) find(ctx context.Context, id string) (*models.Inspection, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load inspection %s: %w", id, err)
	}
	return rec, nil
}
