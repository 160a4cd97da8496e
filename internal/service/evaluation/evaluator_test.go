package evaluation

import (
	"errors"
	"math"
	"testing"

	"github.com/mamadbah2/finalqc/internal/domain/models"
)

func defect(sev models.Severity, qty int) models.DefectDetail {
	return models.DefectDetail{Category: "Stitching", Description: "open seam", Severity: sev, Quantity: qty}
}

func TestEvaluateSumsShipQty(t *testing.T) {
	rec := &models.Inspection{
		PackagingCompliance: true,
		SizeWiseQuantities: []models.SizeQuantity{
			{Size: "S", OrderQty: 100, ShipQty: 98, Cartons: 4},
			{Size: "M", OrderQty: 200, ShipQty: 205, Cartons: 8},
			{Size: "L", OrderQty: 50, ShipQty: 0, Cartons: 0},
		},
	}
	if err := Evaluate(rec); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if rec.TotalShipQty != 303 {
		t.Fatalf("expected total ship qty 303, got %d", rec.TotalShipQty)
	}
}

func TestEvaluateEmptySizesKeepsPreviousTotal(t *testing.T) {
	rec := &models.Inspection{TotalShipQty: 420, PackagingCompliance: true}
	if err := Evaluate(rec); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if rec.TotalShipQty != 420 {
		t.Fatalf("expected stale total 420 to be kept, got %d", rec.TotalShipQty)
	}
}

func TestEvaluateAggregatesDefectsBySeverity(t *testing.T) {
	rec := &models.Inspection{
		CriticalDefects: 9,
		MajorDefects:    9,
		MinorDefects:    9,
		Status:          models.StatusPass,
		DefectsDetail: []models.DefectDetail{
			defect(models.SeverityMajor, 2),
			defect(models.SeverityMinor, 1),
			defect(models.SeverityMajor, 3),
			defect(models.SeverityMinor, 0),
		},
	}
	if err := Evaluate(rec); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if rec.CriticalDefects != 0 {
		t.Fatalf("expected critical reset to 0, got %d", rec.CriticalDefects)
	}
	if rec.MajorDefects != 5 {
		t.Fatalf("expected 5 major, got %d", rec.MajorDefects)
	}
	if rec.MinorDefects != 1 {
		t.Fatalf("expected 1 minor, got %d", rec.MinorDefects)
	}
}

func TestEvaluateEmptyDefectsKeepsStaleCounts(t *testing.T) {
	rec := &models.Inspection{CriticalDefects: 2, MajorDefects: 1, MinorDefects: 4, PackagingCompliance: true}
	if err := Evaluate(rec); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if rec.CriticalDefects != 2 || rec.MajorDefects != 1 || rec.MinorDefects != 4 {
		t.Fatalf("expected stale counts 2/1/4, got %d/%d/%d", rec.CriticalDefects, rec.MajorDefects, rec.MinorDefects)
	}
	if rec.Status != models.StatusFail {
		t.Fatalf("expected stale critical count to fail the record, got %q", rec.Status)
	}
}

func TestEvaluateVerdict(t *testing.T) {
	cases := []struct {
		name     string
		rec      models.Inspection
		defects  []models.DefectDetail
		expected models.Status
	}{
		{
			name:     "critical dominates compliant packaging and generous aql",
			rec:      models.Inspection{SampleSize: 200, AQLMajor: 10, PackagingCompliance: true},
			defects:  []models.DefectDetail{defect(models.SeverityCritical, 1)},
			expected: models.StatusFail,
		},
		{
			name:     "critical dominates zero sample size",
			rec:      models.Inspection{PackagingCompliance: true},
			defects:  []models.DefectDetail{defect(models.SeverityCritical, 1), defect(models.SeverityMinor, 3)},
			expected: models.StatusFail,
		},
		{
			name:     "major at acceptance number passes",
			rec:      models.Inspection{SampleSize: 100, AQLMajor: 2.5, PackagingCompliance: true},
			defects:  []models.DefectDetail{defect(models.SeverityMajor, 2)},
			expected: models.StatusPass,
		},
		{
			name:     "major above acceptance number fails",
			rec:      models.Inspection{SampleSize: 100, AQLMajor: 2.5, PackagingCompliance: true},
			defects:  []models.DefectDetail{defect(models.SeverityMajor, 2), defect(models.SeverityMajor, 1)},
			expected: models.StatusFail,
		},
		{
			name:     "major within aql passes even without packaging compliance",
			rec:      models.Inspection{SampleSize: 100, AQLMajor: 2.5},
			defects:  []models.DefectDetail{defect(models.SeverityMajor, 1)},
			expected: models.StatusPass,
		},
		{
			name:     "missing aql major fails on any major defect",
			rec:      models.Inspection{SampleSize: 315, PackagingCompliance: true},
			defects:  []models.DefectDetail{defect(models.SeverityMajor, 1)},
			expected: models.StatusFail,
		},
		{
			name:     "zero sample size skips the aql rule",
			rec:      models.Inspection{SampleSize: 0, PackagingCompliance: true},
			defects:  []models.DefectDetail{defect(models.SeverityMajor, 5)},
			expected: models.StatusPass,
		},
		{
			name:     "zero sample size still fails on packaging",
			rec:      models.Inspection{SampleSize: 0},
			defects:  []models.DefectDetail{defect(models.SeverityMajor, 5)},
			expected: models.StatusFail,
		},
		{
			name:     "packaging non compliance fails a clean lot",
			rec:      models.Inspection{SampleSize: 80, AQLMajor: 2.5},
			expected: models.StatusFail,
		},
		{
			name:     "minor defects never fail on their own",
			rec:      models.Inspection{SampleSize: 80, AQLMajor: 2.5, AQLMinor: 0, PackagingCompliance: true},
			defects:  []models.DefectDetail{defect(models.SeverityMinor, 40)},
			expected: models.StatusPass,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.rec
			rec.DefectsDetail = tc.defects
			if err := Evaluate(&rec); err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if rec.Status != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, rec.Status)
			}
		})
	}
}

func TestEvaluateKeepsExplicitStatus(t *testing.T) {
	rec := &models.Inspection{
		Status:        models.StatusPass,
		DefectsDetail: []models.DefectDetail{defect(models.SeverityCritical, 3)},
	}
	if err := Evaluate(rec); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if rec.Status != models.StatusPass {
		t.Fatalf("expected explicit Pass to survive, got %q", rec.Status)
	}
	if rec.CriticalDefects != 3 {
		t.Fatalf("expected counters to be recomputed, got %d critical", rec.CriticalDefects)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	rec := &models.Inspection{
		SampleSize:          125,
		AQLMajor:            2.5,
		PackagingCompliance: true,
		SizeWiseQuantities:  []models.SizeQuantity{{Size: "M", ShipQty: 1500, Cartons: 30}},
		DefectsDetail: []models.DefectDetail{
			defect(models.SeverityMajor, 4),
			defect(models.SeverityMinor, 7),
		},
	}
	if err := Evaluate(rec); err != nil {
		t.Fatalf("first Evaluate returned error: %v", err)
	}
	first := *rec

	if err := Evaluate(rec); err != nil {
		t.Fatalf("second Evaluate returned error: %v", err)
	}
	if rec.Status != first.Status ||
		rec.TotalShipQty != first.TotalShipQty ||
		rec.CriticalDefects != first.CriticalDefects ||
		rec.MajorDefects != first.MajorDefects ||
		rec.MinorDefects != first.MinorDefects {
		t.Fatalf("second evaluation changed the record: before %+v after %+v", first, *rec)
	}
	if rec.Status != models.StatusFail {
		t.Fatalf("expected 4 major over Ac 3 to fail, got %q", rec.Status)
	}
}

func TestEvaluateRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		rec   models.Inspection
		field string
	}{
		{"negative sample size", models.Inspection{SampleSize: -1}, "sample_size"},
		{"negative order qty", models.Inspection{TotalOrderQty: -5}, "total_order_qty"},
		{"negative aql", models.Inspection{AQLMajor: -2.5}, "aql_major"},
		{"nan aql", models.Inspection{AQLMinor: math.NaN()}, "aql_minor"},
		{
			"negative ship qty",
			models.Inspection{SizeWiseQuantities: []models.SizeQuantity{{Size: "S", ShipQty: 4}, {Size: "M", ShipQty: -1}}},
			"size_wise_quantities[1].ship_qty",
		},
		{
			"unknown severity",
			models.Inspection{DefectsDetail: []models.DefectDetail{{Severity: "Cosmetic", Quantity: 1}}},
			"defects_detail[0].severity",
		},
		{
			"negative defect quantity",
			models.Inspection{DefectsDetail: []models.DefectDetail{defect(models.SeverityMinor, -2)}},
			"defects_detail[0].quantity",
		},
		{
			"unknown checklist status",
			models.Inspection{Checklist: models.Checklist{
				models.SectionPackaging: {"barcode_verification": {Status: "MAYBE"}},
			}},
			"checklist.packaging.barcode_verification",
		},
		{
			"unknown checklist section",
			models.Inspection{Checklist: models.Checklist{"lighting": {}}},
			"checklist",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.rec
			rec.TotalShipQty = 77
			err := Evaluate(&rec)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
			if rec.Status.IsSet() || rec.TotalShipQty != 77 {
				t.Fatalf("record was modified on validation failure: %+v", rec)
			}
		})
	}
}

func TestEvaluateNilRecord(t *testing.T) {
	if err := Evaluate(nil); !errors.Is(err, ErrNilInspection) {
		t.Fatalf("expected ErrNilInspection, got %v", err)
	}
}
