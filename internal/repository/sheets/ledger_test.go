package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/finalqc/internal/domain/models"
)

func sampleInspection() *models.Inspection {
	return &models.Inspection{
		ID:              "insp-1",
		InspectionDate:  "2026-03-04",
		PONumber:        "PO-1",
		StyleNo:         "ST-1",
		BrandBuyer:      "Northwind",
		TotalOrderQty:   1200,
		TotalShipQty:    1180,
		SampleSize:      125,
		CriticalDefects: 0,
		MajorDefects:    2,
		MinorDefects:    5,
		Status:          models.StatusPass,
	}
}

func TestRow(t *testing.T) {
	row := Row(sampleInspection())
	if len(row) != 12 {
		t.Fatalf("expected 12 columns for %s, got %d", LedgerRange, len(row))
	}
	if row[0] != "insp-1" || row[6] != 1180 || row[11] != "Pass" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestAppendInspection(t *testing.T) {
	var body sheetsapi.ValueRange
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":append") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if !strings.Contains(r.URL.Path, "/spreadsheets/sheet-123/") {
			t.Errorf("unexpected spreadsheet in path %s", r.URL.Path)
		}
		query = r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-123"}`))
	}))
	defer server.Close()

	ledger, err := NewGoogleSheetLedgerWithOptions(context.Background(), "sheet-123", nil,
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewGoogleSheetLedgerWithOptions: %v", err)
	}

	if err := ledger.AppendInspection(context.Background(), sampleInspection()); err != nil {
		t.Fatalf("AppendInspection: %v", err)
	}

	if !strings.Contains(query, "valueInputOption=USER_ENTERED") {
		t.Errorf("missing value input option in %q", query)
	}
	if len(body.Values) != 1 || len(body.Values[0]) != 12 {
		t.Fatalf("unexpected appended values: %v", body.Values)
	}
	if body.Values[0][2] != "PO-1" {
		t.Fatalf("expected PO-1 in column C, got %v", body.Values[0][2])
	}
}

func TestAppendInspectionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
	}))
	defer server.Close()

	ledger, err := NewGoogleSheetLedgerWithOptions(context.Background(), "sheet-123", nil,
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewGoogleSheetLedgerWithOptions: %v", err)
	}

	err = ledger.AppendInspection(context.Background(), sampleInspection())
	if err == nil || !strings.Contains(err.Error(), LedgerRange) {
		t.Fatalf("expected wrapped append error, got %v", err)
	}
}

func TestNewLedgerRequiresSpreadsheet(t *testing.T) {
	if _, err := NewGoogleSheetLedgerWithOptions(context.Background(), "", nil, option.WithoutAuthentication()); err == nil {
		t.Fatalf("expected error for empty spreadsheet id")
	}
}
