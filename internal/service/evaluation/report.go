package evaluation

import (
	"fmt"

	"github.com/mamadbah2/finalqc/internal/domain/models"
)

// Section verdicts.
const (
	SectionPass = "PASS"
	SectionFail = "FAIL"
	SectionNA   = "N/A"
)

// SectionResult summarises one checklist section.
type SectionResult struct {
	Section string `json:"section"`
	Pass    int    `json:"pass"`
	Fail    int    `json:"fail"`
	Result  string `json:"result"`
}

// Report is the printable outcome of an inspection.
type Report struct {
	InspectionID    string          `json:"inspection_id"`
	Status          models.Status   `json:"status"`
	CriticalDefects int             `json:"critical_defects"`
	MajorDefects    int             `json:"major_defects"`
	MinorDefects    int             `json:"minor_defects"`
	Plan            SamplingPlan    `json:"plan"`
	SizeGuide       []SizeSample    `json:"size_guide"`
	Checklist       []SectionResult `json:"checklist"`
	Instructions    []string        `json:"instructions"`
	Findings        []string        `json:"findings"`
	Recommendations []string        `json:"recommendations"`
}

// BuildReport derives the sampling plan, checklist verdicts, findings and
// recommendations for a record. Records without a verdict are judged with
// Verdict without being modified.
func BuildReport(rec *models.Inspection) Report {
	status := rec.Status
	if !status.IsSet() {
		status = Verdict(rec)
	}

	plan := Plan(rec.TotalShipQty, rec.InspectionLevel, rec.AQLMajor, rec.AQLMinor)

	return Report{
		InspectionID:    rec.ID,
		Status:          status,
		CriticalDefects: rec.CriticalDefects,
		MajorDefects:    rec.MajorDefects,
		MinorDefects:    rec.MinorDefects,
		Plan:            plan,
		SizeGuide:       SizeGuide(rec.SizeWiseQuantities, plan.SampleSize, rec.MeasurementLevel),
		Checklist:       SummarizeChecklist(rec.Checklist),
		Instructions:    instructions(plan),
		Findings:        findings(rec.CriticalDefects, rec.MajorDefects, rec.MinorDefects),
		Recommendations: recommendations(status, rec.CriticalDefects, rec.MajorDefects, rec.MinorDefects),
	}
}

// SummarizeChecklist counts OK and NOT OK answers per section. A section fails
// on any NOT OK, passes on at least one OK, and is N/A otherwise.
func SummarizeChecklist(checklist models.Checklist) []SectionResult {
	results := make([]SectionResult, 0, len(models.ChecklistSections))
	for _, section := range models.ChecklistSections {
		res := SectionResult{Section: section, Result: SectionNA}
		for _, item := range checklist[section] {
			switch item.Status {
			case models.ChecklistOK:
				res.Pass++
			case models.ChecklistNotOK:
				res.Fail++
			}
		}
		switch {
		case res.Fail > 0:
			res.Result = SectionFail
		case res.Pass > 0:
			res.Result = SectionPass
		}
		results = append(results, res)
	}
	return results
}

func instructions(plan SamplingPlan) []string {
	return []string{
		fmt.Sprintf("This is a single lot inspection based on total shipment quantity of %d pieces", plan.LotSize),
		fmt.Sprintf("Randomly select and inspect %d pieces from the entire shipment (all sizes)", plan.SampleSize),
		"Ensure representative sampling across all sizes in the shipment",
		"Record defects found against acceptance (AC) and rejection (RE) numbers",
		fmt.Sprintf("If Major defects exceed %d OR Minor defects exceed %d, the lot fails", plan.AcMajor, plan.AcMinor),
	}
}

func findings(critical, major, minor int) []string {
	out := []string{}
	if major > 0 {
		out = append(out, fmt.Sprintf("Major defects found: %d", major))
	}
	if minor > 0 {
		out = append(out, fmt.Sprintf("Minor defects found: %d", minor))
	}
	if critical > 0 {
		out = append(out, fmt.Sprintf("Critical defects found: %d", critical))
	}
	return out
}

func recommendations(status models.Status, critical, major, minor int) []string {
	if status != models.StatusFail {
		return []string{"Inspection passed. Proceed with shipment."}
	}
	out := []string{}
	if major > 0 {
		out = append(out, "Sort and rework major defects before shipment")
	}
	if minor > 0 {
		out = append(out, "Review production process to reduce minor defects in future lots")
	}
	if critical > 0 {
		out = append(out, "CRITICAL: Immediate action required. Do not ship until critical defects are resolved.")
	}
	return out
}
