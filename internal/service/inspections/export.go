package inspections

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/finalqc/internal/domain/models"
)

const exportSheet = "Inspections"

// ExportHeaders are the column titles shared by the CSV and XLSX exports.
var ExportHeaders = []string{
	"Inspection Date", "PO Number", "Style No", "Buyer", "Order Qty", "Ship Qty",
	"Sample Size", "Critical", "Major", "Minor", "Status",
}

// ExportCSV writes the list projection matching filter as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, filter models.ListFilter) error {
	rows, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.InspectionDate,
			row.PONumber,
			row.StyleNo,
			row.BrandBuyer,
			strconv.Itoa(row.TotalOrderQty),
			strconv.Itoa(row.TotalShipQty),
			strconv.Itoa(row.SampleSize),
			strconv.Itoa(row.CriticalDefects),
			strconv.Itoa(row.MajorDefects),
			strconv.Itoa(row.MinorDefects),
			row.Status.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportXLSX builds a workbook with the list projection matching filter.
func (s *Service) ExportXLSX(ctx context.Context, filter models.ListFilter) (*excelize.File, error) {
	rows, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	failStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#C00000"},
	})
	if err != nil {
		return nil, fmt.Errorf("fail style: %w", err)
	}

	for i, h := range ExportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header %s: %w", h, err)
		}
		if err := f.SetCellStyle(exportSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %s: %w", h, err)
		}
	}

	for i, row := range rows {
		line := i + 2
		values := []interface{}{
			row.InspectionDate,
			row.PONumber,
			row.StyleNo,
			row.BrandBuyer,
			row.TotalOrderQty,
			row.TotalShipQty,
			row.SampleSize,
			row.CriticalDefects,
			row.MajorDefects,
			row.MinorDefects,
			row.Status.String(),
		}
		start, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, start, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", line, err)
		}
		if row.Status == models.StatusFail {
			cell, err := excelize.CoordinatesToCellName(len(ExportHeaders), line)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(exportSheet, cell, cell, failStyle); err != nil {
				return nil, fmt.Errorf("style row %d: %w", line, err)
			}
		}
	}

	widths := []float64{15, 15, 14, 18, 10, 10, 12, 9, 9, 9, 9}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("column width %s: %w", col, err)
		}
	}

	return f, nil
}
