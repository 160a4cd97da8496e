package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/finalqc/internal/domain/models"
	"github.com/mamadbah2/finalqc/internal/repository"
)

func seed(t *testing.T, repo *Repository, id, date, po string, status models.Status, created time.Time) {
	t.Helper()
	rec := &models.Inspection{
		ID:             id,
		InspectionDate: date,
		PONumber:       po,
		BrandBuyer:     "Northwind",
		Status:         status,
		CreatedAt:      created,
	}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestCreateAndFindByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	rec := &models.Inspection{
		ID:                 "a",
		InspectionDate:     "2026-03-01",
		SizeWiseQuantities: []models.SizeQuantity{{Size: "M", ShipQty: 10}},
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec.SizeWiseQuantities[0].ShipQty = 999

	got, err := repo.FindByID(ctx, "a")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.SizeWiseQuantities[0].ShipQty != 10 {
		t.Fatalf("stored record shares memory with the caller")
	}

	if err := repo.Create(ctx, rec); err == nil {
		t.Fatalf("expected duplicate create to fail")
	}
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewRepository()
	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	seed(t, repo, "a", "2026-03-01", "PO-1", models.StatusUnset, time.Now())

	if err := repo.Update(ctx, &models.Inspection{ID: "a", PONumber: "PO-2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.FindByID(ctx, "a")
	if got.PONumber != "PO-2" {
		t.Fatalf("expected PO-2, got %s", got.PONumber)
	}

	if err := repo.Update(ctx, &models.Inspection{ID: "b"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrderingAndFilters(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seed(t, repo, "old", "2026-02-10", "PO-100", models.StatusPass, base)
	seed(t, repo, "new-early", "2026-03-05", "PO-200", models.StatusFail, base)
	seed(t, repo, "new-late", "2026-03-05", "PO-300", models.StatusPass, base.Add(time.Hour))
	seed(t, repo, "mid", "2026-02-20", "XK-400", models.StatusUnset, base)

	all, err := repo.List(ctx, models.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	order := []string{"new-late", "new-early", "mid", "old"}
	if len(all) != len(order) {
		t.Fatalf("expected %d records, got %d", len(order), len(all))
	}
	for i, id := range order {
		if all[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, all[i].ID)
		}
	}

	cases := []struct {
		name     string
		filter   models.ListFilter
		expected []string
	}{
		{"limit", models.ListFilter{Limit: 2}, []string{"new-late", "new-early"}},
		{"status", models.ListFilter{Status: models.StatusPass}, []string{"new-late", "old"}},
		{"search is case insensitive", models.ListFilter{Search: "xk"}, []string{"mid"}},
		{"date range inclusive", models.ListFilter{From: "2026-02-20", To: "2026-03-04"}, []string{"mid"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, tc.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %v, got %d records", tc.expected, len(got))
			}
			for i, id := range tc.expected {
				if got[i].ID != id {
					t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}
