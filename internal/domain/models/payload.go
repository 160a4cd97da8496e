package models

import "time"

// SizeWiseEntry is the external shape of a size-wise quantity row.
type SizeWiseEntry struct {
	Size     string `json:"size" validate:"required"`
	OrderQty int    `json:"orderQty" validate:"gte=0"`
	ShipQty  int    `json:"shipQty" validate:"gte=0"`
	Cartons  int    `json:"cartons" validate:"gte=0"`
}

// DefectEntry is the external shape of a defect row. A missing quantity
// counts as one defect.
type DefectEntry struct {
	Category      string `json:"category"`
	Description   string `json:"description"`
	Severity      string `json:"severity" validate:"required,oneof=Critical Major Minor"`
	Quantity      *int   `json:"quantity" validate:"omitempty,gte=0"`
	PanelLocation string `json:"panelLocation"`
	SampleNo      string `json:"sampleNo"`
}

// SaveInspectionRequest is the typed payload accepted by the save endpoint.
// Derived counters are not part of it. A nil collection keeps the stored rows;
// an empty one replaces them with nothing.
type SaveInspectionRequest struct {
	InspectionDate      string          `json:"inspection_date" validate:"required,datetime=2006-01-02"`
	InspectionType      string          `json:"inspection_type" validate:"required"`
	InspectorName       string          `json:"inspector_name" validate:"required"`
	FactoryName         string          `json:"factory_name"`
	FactoryAddress      string          `json:"factory_address"`
	ProductionLine      string          `json:"production_line"`
	FactoryContact      string          `json:"factory_contact"`
	BrandBuyer          string          `json:"brand_buyer"`
	Department          string          `json:"department"`
	ProductCategory     string          `json:"product_category"`
	StyleNo             string          `json:"style_no"`
	ArticleModelNo      string          `json:"article_model_no"`
	Season              string          `json:"season"`
	SizeRange           string          `json:"size_range"`
	Colorways           string          `json:"colorways"`
	PONumber            string          `json:"po_number"`
	TotalOrderQty       int             `json:"total_order_qty" validate:"gte=0"`
	ShipmentDate        string          `json:"shipment_date" validate:"omitempty,datetime=2006-01-02"`
	PackagingType       string          `json:"packaging_type"`
	PackagingCompliance bool            `json:"packaging_compliance"`
	InspectionLevel     string          `json:"inspection_level"`
	MeasurementLevel    string          `json:"measurement_level"`
	AQLMajor            *float64        `json:"aql_major" validate:"omitempty,gte=0,lte=100"`
	AQLMinor            *float64        `json:"aql_minor" validate:"omitempty,gte=0,lte=100"`
	SampleSize          *int            `json:"sample_size" validate:"omitempty,gte=0"`
	Status              *string         `json:"status" validate:"omitempty,oneof=Pass Fail"`
	SizeWiseData        []SizeWiseEntry `json:"size_wise_data" validate:"omitempty,dive"`
	Defects             []DefectEntry   `json:"defects" validate:"omitempty,dive"`
	ChecklistData       Checklist       `json:"checklist_data"`
}

// InspectionSummary is the list projection.
type InspectionSummary struct {
	ID              string `json:"id"`
	InspectionDate  string `json:"inspection_date"`
	PONumber        string `json:"po_number"`
	StyleNo         string `json:"style_no"`
	BrandBuyer      string `json:"brand_buyer"`
	TotalOrderQty   int    `json:"total_order_qty"`
	TotalShipQty    int    `json:"total_ship_qty"`
	SampleSize      int    `json:"sample_size"`
	CriticalDefects int    `json:"critical_defects"`
	MajorDefects    int    `json:"major_defects"`
	MinorDefects    int    `json:"minor_defects"`
	Status          Status `json:"status"`
}

// InspectionView is the full projection returned by the fetch endpoint.
type InspectionView struct {
	ID                  string          `json:"id"`
	InspectionDate      string          `json:"inspection_date"`
	InspectionType      string          `json:"inspection_type"`
	InspectorName       string          `json:"inspector_name"`
	FactoryName         string          `json:"factory_name"`
	FactoryAddress      string          `json:"factory_address"`
	ProductionLine      string          `json:"production_line"`
	FactoryContact      string          `json:"factory_contact"`
	BrandBuyer          string          `json:"brand_buyer"`
	Department          string          `json:"department"`
	ProductCategory     string          `json:"product_category"`
	StyleNo             string          `json:"style_no"`
	ArticleModelNo      string          `json:"article_model_no"`
	Season              string          `json:"season"`
	SizeRange           string          `json:"size_range"`
	Colorways           string          `json:"colorways"`
	PONumber            string          `json:"po_number"`
	TotalOrderQty       int             `json:"total_order_qty"`
	TotalShipQty        int             `json:"total_ship_qty"`
	ShipmentDate        string          `json:"shipment_date"`
	PackagingType       string          `json:"packaging_type"`
	PackagingCompliance bool            `json:"packaging_compliance"`
	InspectionLevel     string          `json:"inspection_level"`
	AQLMajor            float64         `json:"aql_major"`
	AQLMinor            float64         `json:"aql_minor"`
	MeasurementLevel    string          `json:"measurement_level"`
	Status              Status          `json:"status"`
	CriticalDefects     int             `json:"critical_defects"`
	MajorDefects        int             `json:"major_defects"`
	MinorDefects        int             `json:"minor_defects"`
	SampleSize          int             `json:"sample_size"`
	SizeWiseData        []SizeWiseEntry `json:"size_wise_data"`
	Defects             []DefectEntry   `json:"defects"`
	ChecklistData       Checklist       `json:"checklist_data"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Summary projects the record onto the list shape.
func (i *Inspection) Summary() InspectionSummary {
	return InspectionSummary{
		ID:              i.ID,
		InspectionDate:  i.InspectionDate,
		PONumber:        i.PONumber,
		StyleNo:         i.StyleNo,
		BrandBuyer:      i.BrandBuyer,
		TotalOrderQty:   i.TotalOrderQty,
		TotalShipQty:    i.TotalShipQty,
		SampleSize:      i.SampleSize,
		CriticalDefects: i.CriticalDefects,
		MajorDefects:    i.MajorDefects,
		MinorDefects:    i.MinorDefects,
		Status:          i.Status,
	}
}

// View projects the record onto the full external shape, renaming the child
// row fields to the caller's naming.
func (i *Inspection) View() InspectionView {
	sizes := make([]SizeWiseEntry, 0, len(i.SizeWiseQuantities))
	for _, row := range i.SizeWiseQuantities {
		sizes = append(sizes, SizeWiseEntry{
			Size:     row.Size,
			OrderQty: row.OrderQty,
			ShipQty:  row.ShipQty,
			Cartons:  row.Cartons,
		})
	}

	defects := make([]DefectEntry, 0, len(i.DefectsDetail))
	for _, row := range i.DefectsDetail {
		qty := row.Quantity
		defects = append(defects, DefectEntry{
			Category:      row.Category,
			Description:   row.Description,
			Severity:      string(row.Severity),
			Quantity:      &qty,
			PanelLocation: row.PanelLocation,
			SampleNo:      row.SampleNo,
		})
	}

	checklist := i.Checklist
	if checklist == nil {
		checklist = Checklist{}
	}

	return InspectionView{
		ID:                  i.ID,
		InspectionDate:      i.InspectionDate,
		InspectionType:      i.InspectionType,
		InspectorName:       i.InspectorName,
		FactoryName:         i.FactoryName,
		FactoryAddress:      i.FactoryAddress,
		ProductionLine:      i.ProductionLine,
		FactoryContact:      i.FactoryContact,
		BrandBuyer:          i.BrandBuyer,
		Department:          i.Department,
		ProductCategory:     i.ProductCategory,
		StyleNo:             i.StyleNo,
		ArticleModelNo:      i.ArticleModelNo,
		Season:              i.Season,
		SizeRange:           i.SizeRange,
		Colorways:           i.Colorways,
		PONumber:            i.PONumber,
		TotalOrderQty:       i.TotalOrderQty,
		TotalShipQty:        i.TotalShipQty,
		ShipmentDate:        i.ShipmentDate,
		PackagingType:       i.PackagingType,
		PackagingCompliance: i.PackagingCompliance,
		InspectionLevel:     i.InspectionLevel,
		AQLMajor:            i.AQLMajor,
		AQLMinor:            i.AQLMinor,
		MeasurementLevel:    i.MeasurementLevel,
		Status:              i.Status,
		CriticalDefects:     i.CriticalDefects,
		MajorDefects:        i.MajorDefects,
		MinorDefects:        i.MinorDefects,
		SampleSize:          i.SampleSize,
		SizeWiseData:        sizes,
		Defects:             defects,
		ChecklistData:       checklist.Clone(),
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           i.UpdatedAt,
	}
}
