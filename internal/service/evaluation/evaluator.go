// Package evaluation turns the raw measurements of a final inspection into
// aggregate counters and a Pass/Fail verdict.
package evaluation

import (
	"errors"
	"fmt"
	"math"

	"github.com/mamadbah2/finalqc/internal/domain/models"
)

// ErrNilInspection is returned when Evaluate is called without a record.
var ErrNilInspection = errors.New("inspection is nil")

// ValidationError reports a malformed input field. Saves that hit it must be aborted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Evaluate recomputes the derived counters of rec and, when no status has been
// recorded, decides the verdict. It runs as a pre-save hook: on error rec is
// left exactly as it was passed in.
//
// Empty child collections leave the matching counters untouched rather than
// resetting them to zero.
func Evaluate(rec *models.Inspection) error {
	if rec == nil {
		return ErrNilInspection
	}
	if err := Validate(rec); err != nil {
		return err
	}

	if len(rec.SizeWiseQuantities) > 0 {
		total := 0
		for _, row := range rec.SizeWiseQuantities {
			total += row.ShipQty
		}
		rec.TotalShipQty = total
	}

	if len(rec.DefectsDetail) > 0 {
		counts := CountDefects(rec.DefectsDetail)
		rec.CriticalDefects = counts[models.SeverityCritical]
		rec.MajorDefects = counts[models.SeverityMajor]
		rec.MinorDefects = counts[models.SeverityMinor]
	}

	if !rec.Status.IsSet() {
		rec.Status = Verdict(rec)
	}

	return nil
}

// Verdict applies the severity-escalation policy to the record's current
// counters. The first matching rule wins:
//
//	critical > 0                          -> Fail
//	major > 0 and sample size > 0         -> Fail if major > Ac(major) else Pass
//	packaging not compliant               -> Fail
//	otherwise                             -> Pass
//
// A record with major defects and a zero sample size skips the AQL rule and
// falls through to the packaging check.
func Verdict(rec *models.Inspection) models.Status {
	switch {
	case rec.CriticalDefects > 0:
		return models.StatusFail
	case rec.MajorDefects > 0 && rec.SampleSize > 0:
		if rec.MajorDefects > AcceptanceNumber(rec.SampleSize, rec.AQLMajor) {
			return models.StatusFail
		}
		return models.StatusPass
	case !rec.PackagingCompliance:
		return models.StatusFail
	default:
		return models.StatusPass
	}
}

// CountDefects sums defect quantities per severity. Every severity is present
// in the result, zero when no row carries it.
func CountDefects(rows []models.DefectDetail) map[models.Severity]int {
	counts := map[models.Severity]int{
		models.SeverityCritical: 0,
		models.SeverityMajor:    0,
		models.SeverityMinor:    0,
	}
	for _, row := range rows {
		counts[row.Severity] += row.Quantity
	}
	return counts
}

// Validate checks the fields the evaluator reads and returns the first problem found.
func Validate(rec *models.Inspection) error {
	if rec.SampleSize < 0 {
		return invalid("sample_size", "must not be negative")
	}
	if rec.TotalOrderQty < 0 {
		return invalid("total_order_qty", "must not be negative")
	}
	if err := validatePercentage("aql_major", rec.AQLMajor); err != nil {
		return err
	}
	if err := validatePercentage("aql_minor", rec.AQLMinor); err != nil {
		return err
	}

	for i, row := range rec.SizeWiseQuantities {
		field := fmt.Sprintf("size_wise_quantities[%d]", i)
		switch {
		case row.OrderQty < 0:
			return invalid(field+".order_qty", "must not be negative")
		case row.ShipQty < 0:
			return invalid(field+".ship_qty", "must not be negative")
		case row.Cartons < 0:
			return invalid(field+".cartons", "must not be negative")
		}
	}

	for i, row := range rec.DefectsDetail {
		field := fmt.Sprintf("defects_detail[%d]", i)
		if !row.Severity.Valid() {
			return invalid(field+".severity", fmt.Sprintf("unrecognised severity %q", row.Severity))
		}
		if row.Quantity < 0 {
			return invalid(field+".quantity", "must not be negative")
		}
	}

	return validateChecklist(rec.Checklist)
}

func validatePercentage(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return invalid(field, "must be a finite number")
	}
	if value < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func validateChecklist(checklist models.Checklist) error {
	for section, items := range checklist {
		if !knownSection(section) {
			return invalid("checklist", fmt.Sprintf("unknown section %q", section))
		}
		for key, item := range items {
			switch item.Status {
			case "", models.ChecklistNA, models.ChecklistOK, models.ChecklistNotOK:
			default:
				return invalid(fmt.Sprintf("checklist.%s.%s", section, key), fmt.Sprintf("unrecognised status %q", item.Status))
			}
		}
	}
	return nil
}

func knownSection(section string) bool {
	for _, s := range models.ChecklistSections {
		if s == section {
			return true
		}
	}
	return false
}
