// Package sheets mirrors saved inspections into a Google Sheet so QA staff can
// follow them without access to the service.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/finalqc/internal/config"
	"github.com/mamadbah2/finalqc/internal/domain/models"
)

// LedgerRange is the sheet range inspection rows are appended to.
const LedgerRange = "Inspections!A:L"

// Ledger records inspection summaries outside the record store.
type Ledger interface {
	AppendInspection(ctx context.Context, rec *models.Inspection) error
}

// GoogleSheetLedger implements Ledger using the official Google Sheets API.
type GoogleSheetLedger struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetLedger builds a ledger authenticated with the configured credentials file.
func NewGoogleSheetLedger(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetLedger, error) {
	return NewGoogleSheetLedgerWithOptions(ctx, cfg.SpreadsheetID, logger,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
}

// NewGoogleSheetLedgerWithOptions builds a ledger from explicit client options.
func NewGoogleSheetLedgerWithOptions(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetLedger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id must not be empty")
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetLedger{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger.Named("sheets"),
	}, nil
}

// AppendInspection appends one summary row for rec.
func (l *GoogleSheetLedger) AppendInspection(ctx context.Context, rec *models.Inspection) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{Row(rec)}}

	call := l.service.Spreadsheets.Values.Append(l.spreadsheetID, LedgerRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", LedgerRange, err)
	}

	l.logger.Debug("inspection appended to sheet", zap.String("id", rec.ID))
	return nil
}

// Row lays out the ledger columns: id, date, PO, style, buyer, order qty,
// ship qty, sample size, critical, major, minor, status.
func Row(rec *models.Inspection) []interface{} {
	return []interface{}{
		rec.ID,
		rec.InspectionDate,
		rec.PONumber,
		rec.StyleNo,
		rec.BrandBuyer,
		rec.TotalOrderQty,
		rec.TotalShipQty,
		rec.SampleSize,
		rec.CriticalDefects,
		rec.MajorDefects,
		rec.MinorDefects,
		rec.Status.String(),
	}
}
