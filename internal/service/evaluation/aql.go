package evaluation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/finalqc/internal/domain/models"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// lotBrackets is a simplified ISO 2859-1 general inspection table: the base
// sample size for lots up to maxLot pieces. Larger lots use the last base.
var lotBrackets = []struct {
	maxLot int
	base   int64
}{
	{50, 8},
	{90, 13},
	{150, 20},
	{280, 32},
	{500, 50},
	{1200, 80},
	{3200, 125},
	{10000, 200},
}

const largestLotBase = 315

var levelMultipliers = map[string]decimal.Decimal{
	"S-1": decimal.RequireFromString("0.5"),
	"S-2": decimal.RequireFromString("0.7"),
	"S-3": decimal.RequireFromString("1.0"),
	"S-4": decimal.RequireFromString("1.5"),
	"I":   decimal.RequireFromString("1.0"),
	"II":  decimal.RequireFromString("1.5"),
	"III": decimal.RequireFromString("2.0"),
}

// SampleSize returns how many pieces to draw from a lot at the given
// inspection level. Unknown levels use a multiplier of 1. The result never
// exceeds the lot.
func SampleSize(lotSize int, level string) int {
	if lotSize <= 0 {
		return 0
	}

	base := int64(largestLotBase)
	for _, bracket := range lotBrackets {
		if lotSize <= bracket.maxLot {
			base = bracket.base
			break
		}
	}

	multiplier, ok := levelMultipliers[level]
	if !ok {
		multiplier = one
	}

	size := int(decimal.NewFromInt(base).Mul(multiplier).Ceil().IntPart())
	if size > lotSize {
		size = lotSize
	}
	return size
}

// AcceptanceNumber is the largest defect count that still accepts the lot:
// floor(sampleSize * aql / 100). It is 0 when either input is not positive.
func AcceptanceNumber(sampleSize int, aql float64) int {
	if sampleSize <= 0 || aql <= 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(sampleSize)).
		Mul(decimal.NewFromFloat(aql)).
		Div(hundred).
		Floor().
		IntPart())
}

// SamplingPlan describes how a lot should be sampled and judged.
type SamplingPlan struct {
	LotSize         int     `json:"lot_size"`
	InspectionLevel string  `json:"inspection_level"`
	SampleSize      int     `json:"sample_size"`
	SamplePercent   float64 `json:"sample_percent"`
	SampleCode      string  `json:"sample_code"`
	AQLMajor        float64 `json:"aql_major"`
	AQLMinor        float64 `json:"aql_minor"`
	AcMajor         int     `json:"ac_major"`
	ReMajor         int     `json:"re_major"`
	AcMinor         int     `json:"ac_minor"`
	ReMinor         int     `json:"re_minor"`
}

// Plan builds the sampling plan for a lot.
func Plan(lotSize int, level string, aqlMajor, aqlMinor float64) SamplingPlan {
	sample := SampleSize(lotSize, level)
	acMajor := AcceptanceNumber(sample, aqlMajor)
	acMinor := AcceptanceNumber(sample, aqlMinor)

	plan := SamplingPlan{
		LotSize:         lotSize,
		InspectionLevel: level,
		SampleSize:      sample,
		SampleCode:      "-",
		AQLMajor:        aqlMajor,
		AQLMinor:        aqlMinor,
		AcMajor:         acMajor,
		ReMajor:         acMajor + 1,
		AcMinor:         acMinor,
		ReMinor:         acMinor + 1,
	}
	if sample > 0 {
		plan.SamplePercent = percent(sample, lotSize)
		plan.SampleCode = fmt.Sprintf("%s-%d", level, sample)
	}
	return plan
}

// SizeSample is one row of the size-wise sample picking guide.
type SizeSample struct {
	Size              string  `json:"size"`
	ShipQty           int     `json:"ship_qty"`
	PercentOfTotal    float64 `json:"percent_of_total"`
	WorkmanshipSample int     `json:"workmanship_sample"`
	MeasurementSample int     `json:"measurement_sample"`
	Cartons           int     `json:"cartons"`
	CartonsToPick     int     `json:"cartons_to_pick"`
}

// SizeGuide spreads the workmanship sample over sizes in proportion to their
// shipped quantity and sizes a separate measurement sample per size. Cartons
// to open follow the square-root rule over all cartons in the shipment.
func SizeGuide(rows []models.SizeQuantity, sampleSize int, measurementLevel string) []SizeSample {
	totalShip := 0
	totalCartons := 0
	for _, row := range rows {
		totalShip += row.ShipQty
		totalCartons += row.Cartons
	}

	// Grand total, not a running one: every row sees all cartons in the shipment.
	sqrtCartons := decimal.NewFromFloat(math.Sqrt(float64(totalCartons)))
	cartonBase := totalCartons
	if cartonBase < 1 {
		cartonBase = 1
	}

	guide := make([]SizeSample, 0, len(rows))
	for _, row := range rows {
		entry := SizeSample{
			Size:              row.Size,
			ShipQty:           row.ShipQty,
			Cartons:           row.Cartons,
			MeasurementSample: SampleSize(row.ShipQty, measurementLevel),
		}
		if totalShip > 0 {
			entry.PercentOfTotal = decimal.NewFromInt(int64(row.ShipQty)).
				Mul(hundred).
				Div(decimal.NewFromInt(int64(totalShip))).
				Round(1).
				InexactFloat64()
			entry.WorkmanshipSample = int(decimal.NewFromInt(int64(row.ShipQty)).
				Mul(decimal.NewFromInt(int64(sampleSize))).
				Div(decimal.NewFromInt(int64(totalShip))).
				Round(0).
				IntPart())
		}
		entry.CartonsToPick = int(sqrtCartons.
			Mul(decimal.NewFromInt(int64(row.Cartons))).
			Div(decimal.NewFromInt(int64(cartonBase))).
			Ceil().
			IntPart())
		guide = append(guide, entry)
	}
	return guide
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole))).
		Round(2).
		InexactFloat64()
}
