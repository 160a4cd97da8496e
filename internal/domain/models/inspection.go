package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Severity classifies a defect instance.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityMajor    Severity = "Major"
	SeverityMinor    Severity = "Minor"
)

// Valid reports whether s is one of the recognised severity labels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityMajor, SeverityMinor:
		return true
	default:
		return false
	}
}

// Status is the inspection verdict. The zero value means no verdict has been
// recorded yet.
type Status uint8

const (
	StatusUnset Status = iota
	StatusPass
	StatusFail
)

// ParseStatus converts the external label into a Status. The empty string
// maps to StatusUnset.
func ParseStatus(label string) (Status, error) {
	switch label {
	case "":
		return StatusUnset, nil
	case "Pass":
		return StatusPass, nil
	case "Fail":
		return StatusFail, nil
	default:
		return StatusUnset, fmt.Errorf("unknown status %q", label)
	}
}

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "Pass"
	case StatusFail:
		return "Fail"
	default:
		return ""
	}
}

// IsSet reports whether a verdict has been recorded.
func (s Status) IsSet() bool {
	return s != StatusUnset
}

// MarshalJSON encodes the status as its label.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status label; null is treated as unset.
func (s *Status) UnmarshalJSON(data []byte) error {
	var label *string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	if label == nil {
		*s = StatusUnset
		return nil
	}
	parsed, err := ParseStatus(*label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalBSONValue stores the status as its label.
func (s Status) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(s.String())
}

// UnmarshalBSONValue reads a status label written by MarshalBSONValue.
func (s *Status) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeNull || t == bson.TypeUndefined {
		*s = StatusUnset
		return nil
	}
	label, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("status: unexpected bson type %s", t)
	}
	parsed, err := ParseStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SizeQuantity is the per-size breakdown of ordered and shipped units.
type SizeQuantity struct {
	Size     string `bson:"size" json:"size"`
	OrderQty int    `bson:"order_qty" json:"order_qty"`
	ShipQty  int    `bson:"ship_qty" json:"ship_qty"`
	Cartons  int    `bson:"cartons" json:"cartons"`
}

// DefectDetail is one observed defect instance.
type DefectDetail struct {
	Category      string   `bson:"category" json:"category"`
	Description   string   `bson:"defect_description" json:"description"`
	Severity      Severity `bson:"severity" json:"severity"`
	Quantity      int      `bson:"quantity" json:"quantity"`
	PanelLocation string   `bson:"panel_location" json:"panel_location"`
	SampleNo      string   `bson:"sample_no" json:"sample_no"`
}

// Checklist item statuses.
const (
	ChecklistNA    = "N/A"
	ChecklistOK    = "OK"
	ChecklistNotOK = "NOT OK"
)

// Checklist section keys.
const (
	SectionGeneralRequirements = "generalRequirements"
	SectionFabricReadiness     = "fabricReadiness"
	SectionCompliance          = "compliance"
	SectionWorkmanship         = "workmanship"
	SectionPackaging           = "packaging"
	SectionColorAppearance     = "colorAppearance"
)

// ChecklistSections lists the sections in display order.
var ChecklistSections = []string{
	SectionGeneralRequirements,
	SectionFabricReadiness,
	SectionCompliance,
	SectionWorkmanship,
	SectionPackaging,
	SectionColorAppearance,
}

// ChecklistItem is a single checklist answer.
type ChecklistItem struct {
	Status  string `bson:"status" json:"status"`
	Remarks string `bson:"remarks" json:"remarks"`
}

// Checklist maps section -> item key -> answer.
type Checklist map[string]map[string]ChecklistItem

// Inspection is a Final Inspection record.
type Inspection struct {
	ID string `bson:"_id" json:"id"`

	InspectionDate   string `bson:"inspection_date" json:"inspection_date"`
	InspectionType   string `bson:"inspection_type" json:"inspection_type"`
	InspectorName    string `bson:"inspector_name" json:"inspector_name"`
	FactoryName      string `bson:"factory_name" json:"factory_name"`
	FactoryAddress   string `bson:"factory_address" json:"factory_address"`
	ProductionLine   string `bson:"production_line" json:"production_line"`
	FactoryContact   string `bson:"factory_contact" json:"factory_contact"`
	BrandBuyer       string `bson:"brand_buyer" json:"brand_buyer"`
	Department       string `bson:"department" json:"department"`
	ProductCategory  string `bson:"product_category" json:"product_category"`
	StyleNo          string `bson:"style_no" json:"style_no"`
	ArticleModelNo   string `bson:"article_model_no" json:"article_model_no"`
	Season           string `bson:"season" json:"season"`
	SizeRange        string `bson:"size_range" json:"size_range"`
	Colorways        string `bson:"colorways" json:"colorways"`
	PONumber         string `bson:"po_number" json:"po_number"`
	TotalOrderQty    int    `bson:"total_order_qty" json:"total_order_qty"`
	ShipmentDate     string `bson:"shipment_date" json:"shipment_date"`
	PackagingType    string `bson:"packaging_type" json:"packaging_type"`
	InspectionLevel  string `bson:"inspection_level" json:"inspection_level"`
	MeasurementLevel string `bson:"measurement_level" json:"measurement_level"`

	SampleSize          int     `bson:"sample_size" json:"sample_size"`
	AQLMajor            float64 `bson:"aql_major" json:"aql_major"`
	AQLMinor            float64 `bson:"aql_minor" json:"aql_minor"`
	PackagingCompliance bool    `bson:"packaging_compliance" json:"packaging_compliance"`
	Status              Status  `bson:"status" json:"status"`

	// Derived by the evaluator.
	TotalShipQty    int `bson:"total_ship_qty" json:"total_ship_qty"`
	CriticalDefects int `bson:"critical_defects" json:"critical_defects"`
	MajorDefects    int `bson:"major_defects" json:"major_defects"`
	MinorDefects    int `bson:"minor_defects" json:"minor_defects"`

	SizeWiseQuantities []SizeQuantity `bson:"size_wise_quantities" json:"size_wise_quantities"`
	DefectsDetail      []DefectDetail `bson:"defects_detail" json:"defects_detail"`
	Checklist          Checklist      `bson:"checklist,omitempty" json:"checklist,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate it without touching the
// original's child rows.
func (i *Inspection) Clone() *Inspection {
	if i == nil {
		return nil
	}
	out := *i
	if i.SizeWiseQuantities != nil {
		out.SizeWiseQuantities = append([]SizeQuantity(nil), i.SizeWiseQuantities...)
	}
	if i.DefectsDetail != nil {
		out.DefectsDetail = append([]DefectDetail(nil), i.DefectsDetail...)
	}
	out.Checklist = i.Checklist.Clone()
	return &out
}

// Clone deep-copies the checklist. A nil checklist stays nil.
func (c Checklist) Clone() Checklist {
	if c == nil {
		return nil
	}
	out := make(Checklist, len(c))
	for section, items := range c {
		copied := make(map[string]ChecklistItem, len(items))
		for key, item := range items {
			copied[key] = item
		}
		out[section] = copied
	}
	return out
}
