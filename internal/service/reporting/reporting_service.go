// Package reporting builds the periodic QA digest from stored inspections.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/finalqc/internal/domain/models"
	"github.com/mamadbah2/finalqc/internal/repository"
)

const (
	dateLayout     = "2006-01-02"
	digestDays     = 7
	maxFailedLines = 5
)

// Digest aggregates the inspections of a period.
type Digest struct {
	From            string   `json:"from"`
	To              string   `json:"to"`
	Inspections     int      `json:"inspections"`
	Passed          int      `json:"passed"`
	Failed          int      `json:"failed"`
	Pending         int      `json:"pending"`
	PassRate        float64  `json:"pass_rate"`
	ShippedQty      int      `json:"shipped_qty"`
	SampledQty      int      `json:"sampled_qty"`
	CriticalDefects int      `json:"critical_defects"`
	MajorDefects    int      `json:"major_defects"`
	MinorDefects    int      `json:"minor_defects"`
	FailedPOs       []string `json:"failed_pos"`
}

// Service exposes QA analytics for WhatsApp summaries and the API.
type Service struct {
	repo   repository.InspectionRepository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repo repository.InspectionRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger.Named("reporting")}
}

// WeeklyDigest aggregates the seven calendar days ending on now's date.
func (s *Service) WeeklyDigest(ctx context.Context, now time.Time) (*Digest, error) {
	end := now.Format(dateLayout)
	start := now.AddDate(0, 0, -(digestDays - 1)).Format(dateLayout)
	return s.Summarize(ctx, start, end)
}

// Summarize aggregates every inspection dated between from and to inclusive.
func (s *Service) Summarize(ctx context.Context, from, to string) (*Digest, error) {
	recs, err := s.repo.List(ctx, models.ListFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("load inspections %s..%s: %w", from, to, err)
	}

	digest := &Digest{From: from, To: to, Inspections: len(recs), FailedPOs: []string{}}
	for _, rec := range recs {
		switch rec.Status {
		case models.StatusPass:
			digest.Passed++
		case models.StatusFail:
			digest.Failed++
			if len(digest.FailedPOs) < maxFailedLines {
				digest.FailedPOs = append(digest.FailedPOs, failedLine(rec))
			}
		default:
			digest.Pending++
		}
		digest.ShippedQty += rec.TotalShipQty
		digest.SampledQty += rec.SampleSize
		digest.CriticalDefects += rec.CriticalDefects
		digest.MajorDefects += rec.MajorDefects
		digest.MinorDefects += rec.MinorDefects
	}

	if decided := digest.Passed + digest.Failed; decided > 0 {
		digest.PassRate = decimal.NewFromInt(int64(digest.Passed)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(decided))).
			Round(1).
			InexactFloat64()
	}

	s.logger.Debug("digest computed",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("inspections", digest.Inspections))
	return digest, nil
}

// GenerateWeeklyReport renders the weekly digest as a WhatsApp message.
func (s *Service) GenerateWeeklyReport(ctx context.Context, now time.Time) (string, error) {
	digest, err := s.WeeklyDigest(ctx, now)
	if err != nil {
		return "", err
	}
	return Format(digest), nil
}

// Format renders a digest as plain text.
func Format(d *Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Final inspection digest (%s to %s)\n", d.From, d.To)
	if d.Inspections == 0 {
		b.WriteString("No inspections recorded.")
		return b.String()
	}

	fmt.Fprintf(&b, "Inspections: %d (pass %d, fail %d, pending %d)\n", d.Inspections, d.Passed, d.Failed, d.Pending)
	fmt.Fprintf(&b, "Pass rate: %.1f%%\n", d.PassRate)
	fmt.Fprintf(&b, "Shipped qty: %d, sampled: %d\n", d.ShippedQty, d.SampledQty)
	fmt.Fprintf(&b, "Defects: critical %d, major %d, minor %d", d.CriticalDefects, d.MajorDefects, d.MinorDefects)
	if len(d.FailedPOs) > 0 {
		b.WriteString("\nFailed:")
		for _, line := range d.FailedPOs {
			b.WriteString("\n- ")
			b.WriteString(line)
		}
	}
	return b.String()
}

func failedLine(rec *models.Inspection) string {
	po := rec.PONumber
	if po == "" {
		po = rec.ID
	}
	return fmt.Sprintf("%s %s (%s)", rec.InspectionDate, po, rec.BrandBuyer)
}
