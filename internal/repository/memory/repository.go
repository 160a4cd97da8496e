// Package memory provides an in-process record store used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mamadbah2/finalqc/internal/domain/models"
	"github.com/mamadbah2/finalqc/internal/repository"
)

// Repository keeps inspections in a map guarded by a RWMutex. Records are
// copied on the way in and out.
type Repository struct {
	mu      sync.RWMutex
	records map[string]*models.Inspection
}

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{records: make(map[string]*models.Inspection)}
}

var _ repository.InspectionRepository = (*Repository)(nil)

// Create stores a new record. The id must be unique.
func (r *Repository) Create(_ context.Context, rec *models.Inspection) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("create inspection: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.ID]; exists {
		return fmt.Errorf("create inspection: id %s already exists", rec.ID)
	}
	r.records[rec.ID] = rec.Clone()
	return nil
}

// Update replaces an existing record.
func (r *Repository) Update(_ context.Context, rec *models.Inspection) error {
	if rec == nil {
		return fmt.Errorf("update inspection: record is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.ID]; !exists {
		return repository.ErrNotFound
	}
	r.records[rec.ID] = rec.Clone()
	return nil
}

// FindByID returns a copy of the stored record.
func (r *Repository) FindByID(_ context.Context, id string) (*models.Inspection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec.Clone(), nil
}

// List returns the records matching filter.
func (r *Repository) List(_ context.Context, filter models.ListFilter) ([]*models.Inspection, error) {
	r.mu.RLock()
	out := make([]*models.Inspection, 0, len(r.records))
	for _, rec := range r.records {
		if matches(rec, filter) {
			out = append(out, rec.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].InspectionDate != out[j].InspectionDate {
			return out[i].InspectionDate > out[j].InspectionDate
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matches(rec *models.Inspection, filter models.ListFilter) bool {
	if filter.Status.IsSet() && rec.Status != filter.Status {
		return false
	}
	if filter.From != "" && rec.InspectionDate < filter.From {
		return false
	}
	if filter.To != "" && rec.InspectionDate > filter.To {
		return false
	}
	if filter.Search == "" {
		return true
	}

	needle := strings.ToLower(filter.Search)
	for _, field := range []string{rec.PONumber, rec.StyleNo, rec.BrandBuyer, rec.FactoryName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
