// Package repository declares the storage contract shared by the record store
// implementations.
package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/finalqc/internal/domain/models"
)

// ErrNotFound is returned when no inspection matches the requested id.
var ErrNotFound = errors.New("inspection not found")

// InspectionRepository persists inspection records together with their child rows.
//
// List returns records ordered by inspection date then creation time, most
// recent first. A filter limit of zero or less returns every match.
type InspectionRepository interface {
	Create(ctx context.Context, rec *models.Inspection) error
	Update(ctx context.Context, rec *models.Inspection) error
	FindByID(ctx context.Context, id string) (*models.Inspection, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Inspection, error)
}
