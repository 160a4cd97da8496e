package inspections

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mamadbah2/finalqc/internal/domain/models"
	"github.com/mamadbah2/finalqc/internal/service/evaluation"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs the struct tag rules and reports the first failure as a
// ValidationError named after the JSON field.
func validateRequest(req models.SaveInspectionRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &evaluation.ValidationError{Field: "payload", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	return &evaluation.ValidationError{Field: fieldPath(fe.Namespace()), Reason: describe(fe)}
}

func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("failed the %s rule", fe.Tag())
	}
}

func validateFilter(filter models.ListFilter) error {
	for field, value := range map[string]string{"from": filter.From, "to": filter.To} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, value); err != nil {
			return &evaluation.ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD format"}
		}
	}
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return &evaluation.ValidationError{Field: "from", Reason: "must not be after to"}
	}
	return nil
}

// applyRequest copies the payload onto rec. Optional numbers and nil child
// collections keep the stored values; an explicit status replaces the stored one.
func applyRequest(rec *models.Inspection, req models.SaveInspectionRequest) error {
	rec.InspectionDate = req.InspectionDate
	rec.InspectionType = req.InspectionType
	rec.InspectorName = req.InspectorName
	rec.FactoryName = req.FactoryName
	rec.FactoryAddress = req.FactoryAddress
	rec.ProductionLine = req.ProductionLine
	rec.FactoryContact = req.FactoryContact
	rec.BrandBuyer = req.BrandBuyer
	rec.Department = req.Department
	rec.ProductCategory = req.ProductCategory
	rec.StyleNo = req.StyleNo
	rec.ArticleModelNo = req.ArticleModelNo
	rec.Season = req.Season
	rec.SizeRange = req.SizeRange
	rec.Colorways = req.Colorways
	rec.PONumber = req.PONumber
	rec.TotalOrderQty = req.TotalOrderQty
	rec.ShipmentDate = req.ShipmentDate
	rec.PackagingType = req.PackagingType
	rec.PackagingCompliance = req.PackagingCompliance
	rec.InspectionLevel = req.InspectionLevel
	rec.MeasurementLevel = req.MeasurementLevel

	if req.AQLMajor != nil {
		rec.AQLMajor = *req.AQLMajor
	}
	if req.AQLMinor != nil {
		rec.AQLMinor = *req.AQLMinor
	}
	if req.SampleSize != nil {
		rec.SampleSize = *req.SampleSize
	}
	if req.Status != nil {
		status, err := models.ParseStatus(*req.Status)
		if err != nil {
			return &evaluation.ValidationError{Field: "status", Reason: err.Error()}
		}
		rec.Status = status
	}

	// An empty collection keeps the stored rows so the aggregates stay in step with them.
	if len(req.SizeWiseData) > 0 {
		rows := make([]models.SizeQuantity, 0, len(req.SizeWiseData))
		for _, entry := range req.SizeWiseData {
			rows = append(rows, models.SizeQuantity{
				Size:     entry.Size,
				OrderQty: entry.OrderQty,
				ShipQty:  entry.ShipQty,
				Cartons:  entry.Cartons,
			})
		}
		rec.SizeWiseQuantities = rows
	}

	if len(req.Defects) > 0 {
		rows := make([]models.DefectDetail, 0, len(req.Defects))
		for _, entry := range req.Defects {
			qty := 1
			if entry.Quantity != nil {
				qty = *entry.Quantity
			}
			rows = append(rows, models.DefectDetail{
				Category:      entry.Category,
				Description:   entry.Description,
				Severity:      models.Severity(entry.Severity),
				Quantity:      qty,
				PanelLocation: entry.PanelLocation,
				SampleNo:      entry.SampleNo,
			})
		}
		rec.DefectsDetail = rows
	}

	if req.ChecklistData != nil {
		rec.Checklist = req.ChecklistData.Clone()
	}

	return nil
}
